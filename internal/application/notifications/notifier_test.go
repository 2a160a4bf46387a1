package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/notification"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestNotifier(
	notificationRepo *MockNotificationRepository,
	userRepo *MockUserRepository,
	profileRepo *MockProfileRepository,
	sender *MockEmailSender,
	autoEmail bool,
) *Notifier {
	return NewNotifier(notificationRepo, userRepo, profileRepo, sender, NotifierConfig{
		AutoEmail: autoEmail,
		PortalURL: "https://portal.example.com",
	}, zap.NewNop())
}

func TestNotifier_NotifyEvent(t *testing.T) {
	recipient := uuid.New()
	actor := uuid.New()
	projectID := uuid.New()

	event := Event{
		Recipient: recipient,
		Actor:     actor,
		ProjectID: projectID,
		Kind:      notification.KindNoteAdded,
		Title:     "New Project Update",
		Message:   "A new update has been added to your project.",
	}

	t.Run("writes row and sends email", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, true)

		user, _ := identity.NewUser("client@example.com", "password123")

		notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("FindByID", mock.Anything, recipient).Return(user, nil)
		sender.On("Send", mock.Anything, "client@example.com", event.Title, mock.Anything).Return(nil)
		notificationRepo.On("Update", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.EmailSent
		})).Return(nil)

		err := notifier.NotifyEvent(context.Background(), event)

		assert.NoError(t, err)
		notificationRepo.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("self notification writes row without email", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, true)

		selfEvent := event
		selfEvent.Actor = recipient

		notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID == recipient && !n.EmailSent
		})).Return(nil)

		err := notifier.NotifyEvent(context.Background(), selfEvent)

		assert.NoError(t, err)
		notificationRepo.AssertExpectations(t)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("auto email disabled writes row only", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, false)

		notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		err := notifier.NotifyEvent(context.Background(), event)

		assert.NoError(t, err)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("email failure is swallowed and row stays unsent", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, true)

		user, _ := identity.NewUser("client@example.com", "password123")

		notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("FindByID", mock.Anything, recipient).Return(user, nil)
		sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(shared.ErrExternalFailure)

		err := notifier.NotifyEvent(context.Background(), event)

		assert.NoError(t, err)
		notificationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("row creation failure propagates", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, true)

		notificationRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := notifier.NotifyEvent(context.Background(), event)

		assert.Error(t, err)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid kind is rejected", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, true)

		bad := event
		bad.Kind = "mystery_event"

		err := notifier.NotifyEvent(context.Background(), bad)

		assert.Error(t, err)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNotifier_BroadcastToAdmins(t *testing.T) {
	actor := uuid.New()
	projectID := uuid.New()
	adminOne := uuid.New()
	adminTwo := uuid.New()

	event := Event{
		Actor:     actor,
		ProjectID: projectID,
		Kind:      notification.KindApprovalCompleted,
		Title:     "Document approved",
		Message:   `Document "Quote Q-1" has been approved by the client.`,
	}

	t.Run("every admin receives a row", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, false)

		profileRepo.On("FindUserIDsByRole", mock.Anything, identity.RoleAdmin).
			Return([]uuid.UUID{adminOne, adminTwo}, nil)
		notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID == adminOne
		})).Return(nil).Once()
		notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID == adminTwo
		})).Return(nil).Once()

		notifier.BroadcastToAdmins(context.Background(), event)

		notificationRepo.AssertExpectations(t)
	})

	t.Run("one failing recipient does not block the rest", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, false)

		profileRepo.On("FindUserIDsByRole", mock.Anything, identity.RoleAdmin).
			Return([]uuid.UUID{adminOne, adminTwo}, nil)
		notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID == adminOne
		})).Return(errors.New("db hiccup")).Once()
		notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID == adminTwo
		})).Return(nil).Once()

		notifier.BroadcastToAdmins(context.Background(), event)

		notificationRepo.AssertExpectations(t)
	})

	t.Run("enumeration failure aborts quietly", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		userRepo := new(MockUserRepository)
		profileRepo := new(MockProfileRepository)
		sender := new(MockEmailSender)
		notifier := newTestNotifier(notificationRepo, userRepo, profileRepo, sender, false)

		profileRepo.On("FindUserIDsByRole", mock.Anything, identity.RoleAdmin).
			Return(nil, errors.New("db down"))

		notifier.BroadcastToAdmins(context.Background(), event)

		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
