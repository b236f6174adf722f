package repository

import (
	"context"
	"time"

	"reservas-admin/internal/infra"
	"reservas-admin/internal/infra/docstore"
)

const notificationJobsCollection = "notification_jobs"

// NotificationRepository enqueues outbound notification jobs (booking
// confirmation mails) as documents. A separate worker owns delivery.
type NotificationRepository struct {
	store docstore.Store
}

func NewNotificationRepository(store docstore.Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.store.Insert(ctx, notificationJobsCollection, docstore.Fields{
		"kind":     kind,
		"topic":    topic,
		"payload":  string(payload),
		"runAt":    runAt.UTC(),
		"status":   "pending",
		"attempts": int64(0),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
