package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCanAccessComplaint_Citizen(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		ownerID string
		action  ComplaintAction
		want    bool
	}{
		{"creator reads own complaint", "u1", "u1", ActionRead, true},
		{"creator updates own complaint", "u1", "u1", ActionUpdate, true},
		{"creator comments on own complaint", "u1", "u1", ActionComment, true},
		{"creator deletes own complaint", "u1", "u1", ActionDelete, true},
		{"stranger reads someone else's complaint", "u2", "u1", ActionRead, false},
		{"stranger deletes someone else's complaint", "u2", "u1", ActionDelete, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccessComplaint(domain.RoleCitizen, tt.actorID, nil, tt.ownerID, "ag1", tt.action)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanAccessComplaint_AgencyRoles(t *testing.T) {
	tests := []struct {
		name          string
		role          domain.UserRole
		actorAgencyID *string
		action        ComplaintAction
		want          bool
	}{
		{"staff reads same-agency complaint", domain.RoleAgencyStaff, strPtr("ag1"), ActionRead, true},
		{"staff updates same-agency complaint", domain.RoleAgencyStaff, strPtr("ag1"), ActionUpdate, true},
		{"staff comments on same-agency complaint", domain.RoleAgencyStaff, strPtr("ag1"), ActionComment, true},
		{"staff cannot delete even in own agency", domain.RoleAgencyStaff, strPtr("ag1"), ActionDelete, false},
		{"staff denied cross-agency", domain.RoleAgencyStaff, strPtr("ag2"), ActionRead, false},
		{"staff without agency assignment denied", domain.RoleAgencyStaff, nil, ActionRead, false},
		{"agency admin reads same-agency complaint", domain.RoleAgencyAdmin, strPtr("ag1"), ActionRead, true},
		{"agency admin denied cross-agency", domain.RoleAgencyAdmin, strPtr("ag2"), ActionUpdate, false},
		{"agency admin cannot delete", domain.RoleAgencyAdmin, strPtr("ag1"), ActionDelete, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccessComplaint(tt.role, "staff-1", tt.actorAgencyID, "owner-1", "ag1", tt.action)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The agency match must key off the actor's assigned agency, not their user
// id. A staffer whose own id happens to equal the complaint's agency id must
// still be denied when assigned elsewhere.
func TestCanAccessComplaint_StaffMatchUsesAgencyNotIdentity(t *testing.T) {
	got := CanAccessComplaint(domain.RoleAgencyStaff, "ag1", strPtr("ag2"), "owner-1", "ag1", ActionRead)
	assert.False(t, got)

	got = CanAccessComplaint(domain.RoleAgencyStaff, "whatever", strPtr("ag1"), "owner-1", "ag1", ActionRead)
	assert.True(t, got)
}

func TestCanAccessComplaint_Admin(t *testing.T) {
	assert.True(t, CanAccessComplaint(domain.RoleAdmin, "adm", nil, "owner-1", "ag1", ActionRead))
	assert.True(t, CanAccessComplaint(domain.RoleAdmin, "adm", nil, "owner-1", "ag1", ActionUpdate))
	assert.True(t, CanAccessComplaint(domain.RoleAdmin, "adm", nil, "owner-1", "ag1", ActionComment))
	assert.False(t, CanAccessComplaint(domain.RoleAdmin, "adm", nil, "owner-1", "ag1", ActionDelete))
}

func TestCanAccessComplaint_UnknownRole(t *testing.T) {
	assert.False(t, CanAccessComplaint(domain.UserRole("AUDITOR"), "u1", nil, "u1", "ag1", ActionRead))
}
