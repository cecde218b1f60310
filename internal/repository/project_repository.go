package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"project-catalog/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	// Update persists the workflow columns: supervisor, status and the
	// approval audit fields.
	Update(ctx context.Context, project *domain.Project) error
	ListPendingBySupervisor(ctx context.Context, supervisorID uuid.UUID) ([]domain.Project, error)
	ListPendingWithoutSupervisor(ctx context.Context) ([]domain.Project, error)
}

const projectColumns = `id, title, description, owner_id, supervisor_id, approval_status,
	approved_at, approved_by, rejection_reason, created_at, updated_at`

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	now := time.Now().UTC()
	project.CreatedAt, project.UpdatedAt = now, now

	query := r.db.Rebind(`
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Title, project.Description, project.OwnerID, project.SupervisorID,
		project.ApprovalStatus, project.ApprovedAt, project.ApprovedBy, project.RejectionReason,
		project.CreatedAt, project.UpdatedAt,
	)
	return err
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	query := r.db.Rebind(`SELECT ` + projectColumns + ` FROM projects WHERE id = ?`)
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		return nil, notFound(err, "project")
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	project.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE projects
		SET supervisor_id = ?, approval_status = ?, approved_at = ?, approved_by = ?,
		    rejection_reason = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		project.SupervisorID, project.ApprovalStatus, project.ApprovedAt, project.ApprovedBy,
		project.RejectionReason, project.UpdatedAt, project.ID,
	)
	if err != nil {
		return err
	}
	return expectAffected(res, "project")
}

func (r *projectRepository) ListPendingBySupervisor(ctx context.Context, supervisorID uuid.UUID) ([]domain.Project, error) {
	projects := []domain.Project{}
	query := r.db.Rebind(`
		SELECT ` + projectColumns + ` FROM projects
		WHERE supervisor_id = ? AND approval_status = ?
		ORDER BY created_at DESC`)
	err := r.db.SelectContext(ctx, &projects, query, supervisorID, domain.StatusPending)
	return projects, err
}

func (r *projectRepository) ListPendingWithoutSupervisor(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	query := r.db.Rebind(`
		SELECT ` + projectColumns + ` FROM projects
		WHERE supervisor_id IS NULL AND approval_status = ?
		ORDER BY created_at DESC`)
	err := r.db.SelectContext(ctx, &projects, query, domain.StatusPending)
	return projects, err
}
