package domain

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	OwnerID         uuid.UUID      `json:"ownerId" db:"owner_id"`
	SupervisorID    *uuid.UUID     `json:"supervisorId,omitempty" db:"supervisor_id"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus" db:"approval_status"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty" db:"approved_at"`
	ApprovedBy      *uuid.UUID     `json:"approvedBy,omitempty" db:"approved_by"`
	RejectionReason *string        `json:"rejectionReason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsSupervisedBy reports whether userID is the project's assigned supervisor.
func (p *Project) IsSupervisedBy(userID uuid.UUID) bool {
	return p.SupervisorID != nil && *p.SupervisorID == userID
}

const (
	MaxTitleLength           = 200
	MaxRejectionReasonLength = 1000
)

type SubmitProjectInput struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Description  string     `json:"description"`
	SupervisorID *uuid.UUID `json:"supervisorId,omitempty"`
}

type RejectProjectInput struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

type AssignSupervisorInput struct {
	SupervisorID uuid.UUID `json:"supervisorId" validate:"required"`
}
