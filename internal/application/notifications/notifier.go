// Package notifications implements the portal notification engine: the
// per-event dispatch path, the admin broadcast path, and the per-project
// digest.
package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"go.uber.org/zap"
)

// EmailSender delivers transactional email. Implementations live in
// infrastructure; failures must map to shared.ErrExternalFailure.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Event describes one portal happening to dispatch to one recipient
type Event struct {
	Recipient uuid.UUID
	Actor     uuid.UUID
	ProjectID uuid.UUID
	Kind      notification.Kind
	Title     string
	Message   string
}

// NotifierConfig controls notification dispatch behavior
type NotifierConfig struct {
	// AutoEmail gates all event emails at the dispatch boundary. The
	// notification row is written regardless.
	AutoEmail bool

	// PortalURL is linked from outgoing emails
	PortalURL string
}

// Notifier writes notification rows and sends the accompanying email.
// The row is the source of truth; email is best-effort on top of it.
type Notifier struct {
	notificationRepo notification.Repository
	userRepo         identity.UserRepository
	profileRepo      identity.ProfileRepository
	sender           EmailSender
	config           NotifierConfig
	logger           *zap.Logger
}

// NewNotifier creates a notifier
func NewNotifier(
	notificationRepo notification.Repository,
	userRepo identity.UserRepository,
	profileRepo identity.ProfileRepository,
	sender EmailSender,
	config NotifierConfig,
	logger *zap.Logger,
) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		sender:           sender,
		config:           config,
		logger:           logger,
	}
}

// NotifyEvent writes the notification row, then sends the email. The email
// is skipped when the actor is the recipient (the row is still written,
// emailSent stays false) and when auto-email is disabled. Email failure is
// logged and swallowed: the row already exists and the triggering mutation
// must not be affected.
func (n *Notifier) NotifyEvent(ctx context.Context, ev Event) error {
	rec, err := notification.New(ev.Recipient, ev.ProjectID, ev.Kind, ev.Title, ev.Message)
	if err != nil {
		return err
	}
	if err := n.notificationRepo.Create(ctx, rec); err != nil {
		return err
	}

	if !n.config.AutoEmail || ev.Actor == ev.Recipient {
		return nil
	}

	user, err := n.userRepo.FindByID(ctx, ev.Recipient)
	if err != nil {
		n.logger.Warn("Notification email skipped, recipient lookup failed",
			zap.String("recipient_id", ev.Recipient.String()),
			zap.Error(err))
		return nil
	}

	if err := n.sender.Send(ctx, user.Email, ev.Title, n.renderEventEmail(ev)); err != nil {
		n.logger.Warn("Notification email failed",
			zap.String("recipient_id", ev.Recipient.String()),
			zap.String("kind", string(ev.Kind)),
			zap.Error(err))
		return nil
	}

	rec.MarkEmailSent()
	if err := n.notificationRepo.Update(ctx, rec); err != nil {
		n.logger.Warn("Failed to mark notification email sent",
			zap.String("notification_id", rec.ID.String()),
			zap.Error(err))
	}
	return nil
}

// BroadcastToAdmins dispatches the event to every current admin. Delivery
// is per-recipient best-effort: one failing recipient never blocks the
// others, and the caller's mutation has already been applied.
func (n *Notifier) BroadcastToAdmins(ctx context.Context, ev Event) {
	adminIDs, err := n.profileRepo.FindUserIDsByRole(ctx, identity.RoleAdmin)
	if err != nil {
		n.logger.Warn("Admin broadcast skipped, recipient enumeration failed",
			zap.String("kind", string(ev.Kind)),
			zap.Error(err))
		return
	}

	for _, adminID := range adminIDs {
		perRecipient := ev
		perRecipient.Recipient = adminID
		if err := n.NotifyEvent(ctx, perRecipient); err != nil {
			n.logger.Warn("Admin broadcast recipient failed",
				zap.String("recipient_id", adminID.String()),
				zap.String("kind", string(ev.Kind)),
				zap.Error(err))
		}
	}
}

func (n *Notifier) renderEventEmail(ev Event) string {
	body := fmt.Sprintf("<h2>%s</h2><p>%s</p>", ev.Title, ev.Message)
	if n.config.PortalURL != "" {
		body += fmt.Sprintf(`<p><a href="%s/projects/%s">View in portal</a></p>`,
			n.config.PortalURL, ev.ProjectID)
	}
	return body
}
