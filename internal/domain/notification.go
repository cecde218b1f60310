package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the durable record materialized from a DomainEvent. The
// same struct is persisted, returned by the read API and pushed live.
type Notification struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	RecipientUserID  uuid.UUID        `json:"recipientUserId" db:"recipient_user_id"`
	Message          string           `json:"message" db:"message"`
	NotificationType NotificationType `json:"notificationType" db:"notification_type"`
	ProjectID        uuid.UUID        `json:"projectId" db:"project_id"`
	CommentID        *uuid.UUID       `json:"commentId,omitempty" db:"comment_id"`
	ProjectTitle     *string          `json:"projectTitle,omitempty" db:"project_title"`
	CommentText      *string          `json:"commentText,omitempty" db:"comment_text"`
	CommenterName    *string          `json:"commenterName,omitempty" db:"commenter_name"`
	ApproverName     *string          `json:"approverName,omitempty" db:"approver_name"`
	RejectionReason  *string          `json:"rejectionReason,omitempty" db:"rejection_reason"`
	IsRead           bool             `json:"isRead" db:"is_read"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
}

type NotificationType string

const (
	NotifComment   NotificationType = "COMMENT"
	NotifApproval  NotificationType = "APPROVAL"
	NotifRejection NotificationType = "REJECTION"
	NotifReaction  NotificationType = "REACTION"
	NotifSubmit    NotificationType = "SUBMIT"
)

type NotificationCount struct {
	UnreadCount int64 `json:"unreadCount" db:"unread_count"`
	TotalCount  int64 `json:"totalCount" db:"total_count"`
}
