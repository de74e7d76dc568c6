package auth

import "github.com/spec-kit/complaint-service/internal/domain"

// ComplaintAction enumerates the operations gated per complaint.
type ComplaintAction string

const (
	ActionRead    ComplaintAction = "read"
	ActionUpdate  ComplaintAction = "update"
	ActionComment ComplaintAction = "comment"
	ActionDelete  ComplaintAction = "delete"
)

// CanAccessComplaint is the role x ownership decision function for a single
// complaint. Citizens act only on complaints they created. Agency staff and
// agency admins act on complaints routed to their own agency; the match is
// keyed off the actor's assigned agency, never their identity, so the whole
// roster of an agency shares access. Admins may read, update and comment on
// any complaint. Deletion is reserved for the citizen creator; the
// PENDING-only constraint on deletion is enforced by the lifecycle engine.
func CanAccessComplaint(role domain.UserRole, actorID string, actorAgencyID *string, ownerID, complaintAgencyID string, action ComplaintAction) bool {
	switch role {
	case domain.RoleCitizen:
		return actorID == ownerID
	case domain.RoleAgencyStaff, domain.RoleAgencyAdmin:
		if action == ActionDelete {
			return false
		}
		return actorAgencyID != nil && *actorAgencyID == complaintAgencyID
	case domain.RoleAdmin:
		return action != ActionDelete
	}
	return false
}
