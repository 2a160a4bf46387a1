// Package projects implements the application services for projects and
// every artifact hanging off them: documents, photos, notes, milestones,
// additional work, and change requests.
package projects

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/application/notifications"
)

// ObjectStorageService abstracts presigned-URL generation and object
// lifecycle. The portal backend never proxies file bytes; clients talk to
// storage directly with the URLs produced here.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// EventNotifier dispatches portal notifications arising from project
// activity. Implemented by notifications.Notifier.
type EventNotifier interface {
	NotifyEvent(ctx context.Context, ev notifications.Event) error
	BroadcastToAdmins(ctx context.Context, ev notifications.Event)
}

// AuditRecorder appends to the project audit trail. Implemented by the
// application audit recorder; failures never propagate.
type AuditRecorder interface {
	Record(ctx context.Context, projectID, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, details string)
}
