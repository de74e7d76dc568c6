package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/mail"
	"github.com/spec-kit/complaint-service/internal/repository"
)

// NotificationService reacts to domain events: it logs them and emails the
// complaint creator when the status changes.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	mailer     mail.Sender
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, users repository.UserRepository, mailer mail.Sender, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		users:      users,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleComplaintCreated)
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventComplaintCommentAdded, n.handleCommentAdded)
}

func (n *NotificationService) handleComplaintCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ComplaintCreated", zap.String("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ComplaintStatusChanged", zap.String("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.ComplaintStatusChangedPayload)
	if !ok || n.mailer == nil {
		return nil
	}
	creator, err := n.users.GetByID(ctx, payload.CreatorID)
	if err != nil {
		n.logger.Warn("status notification skipped", zap.Error(err))
		return nil
	}
	if err := n.mailer.SendStatusUpdate(creator.Email, payload.Title, string(payload.NewStatus)); err != nil {
		n.logger.Warn("status notification email failed", zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleCommentAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("ComplaintCommentAdded", zap.String("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))
	return nil
}
