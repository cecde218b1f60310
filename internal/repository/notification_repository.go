package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"project-catalog/internal/domain"
)

// NotificationRepository is the durable notification store. Every lookup and
// mutation except Create is scoped by recipient, so a caller can never read or
// change another user's notification.
type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	Delete(ctx context.Context, id, recipientID uuid.UUID) error
	DeleteAll(ctx context.Context, recipientID uuid.UUID) error
	Count(ctx context.Context, recipientID uuid.UUID) (domain.NotificationCount, error)
}

const notificationColumns = `id, recipient_user_id, message, notification_type, project_id, comment_id,
	project_title, comment_text, commenter_name, approver_name, rejection_reason, is_read, created_at`

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	if notif.ID == uuid.Nil {
		notif.ID = uuid.New()
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now().UTC()
	}
	notif.IsRead = false

	query := r.db.Rebind(`
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		notif.ID, notif.RecipientUserID, notif.Message, notif.NotificationType, notif.ProjectID, notif.CommentID,
		notif.ProjectTitle, notif.CommentText, notif.CommenterName, notif.ApproverName, notif.RejectionReason,
		notif.IsRead, notif.CreatedAt,
	)
	return err
}

func (r *notificationRepository) GetByID(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := r.db.Rebind(`SELECT ` + notificationColumns + ` FROM notifications WHERE id = ? AND recipient_user_id = ?`)
	if err := r.db.GetContext(ctx, &notif, query, id, recipientID); err != nil {
		return nil, notFound(err, "notification")
	}
	return &notif, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error) {
	notifications := []domain.Notification{}
	query := r.db.Rebind(`
		SELECT ` + notificationColumns + ` FROM notifications
		WHERE recipient_user_id = ?
		ORDER BY created_at DESC`)
	err := r.db.SelectContext(ctx, &notifications, query, recipientID)
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error {
	query := r.db.Rebind(`UPDATE notifications SET is_read = ? WHERE id = ? AND recipient_user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, true, id, recipientID)
	if err != nil {
		return err
	}
	return expectAffected(res, "notification")
}

// MarkAllAsRead flips only rows that are unread at statement time; a row
// inserted concurrently stays unread.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	query := r.db.Rebind(`UPDATE notifications SET is_read = ? WHERE recipient_user_id = ? AND is_read = ?`)
	_, err := r.db.ExecContext(ctx, query, true, recipientID, false)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM notifications WHERE id = ? AND recipient_user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	return expectAffected(res, "notification")
}

func (r *notificationRepository) DeleteAll(ctx context.Context, recipientID uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM notifications WHERE recipient_user_id = ?`)
	_, err := r.db.ExecContext(ctx, query, recipientID)
	return err
}

func (r *notificationRepository) Count(ctx context.Context, recipientID uuid.UUID) (domain.NotificationCount, error) {
	var count domain.NotificationCount
	query := r.db.Rebind(`
		SELECT COUNT(*) AS total_count,
		       COALESCE(SUM(CASE WHEN is_read THEN 0 ELSE 1 END), 0) AS unread_count
		FROM notifications
		WHERE recipient_user_id = ?`)
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}
