// Package testutil provides a migrated in-memory database and fixtures for
// package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"project-catalog/internal/config"
	"project-catalog/internal/domain"
	"project-catalog/internal/repository"
)

// NewDB returns a private, migrated in-memory SQLite database closed when the
// test ends.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := config.NewSQLiteDB("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.Migrate(context.Background(), db))
	return db
}

// CreateUser inserts an active user with the given role.
func CreateUser(t *testing.T, repos *repository.Repositories, name string, role domain.UserRole) *domain.User {
	t.Helper()

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     uuid.NewString() + "@example.com",
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repos.User.Create(context.Background(), user))
	return user
}

// CreateProject inserts a project owned by ownerID in the given status.
func CreateProject(t *testing.T, repos *repository.Repositories, ownerID uuid.UUID, supervisorID *uuid.UUID, status domain.ApprovalStatus) *domain.Project {
	t.Helper()

	now := time.Now().UTC()
	project := &domain.Project{
		ID:             uuid.New(),
		Title:          "Distributed Ledger Study",
		Description:    "Final year project",
		OwnerID:        ownerID,
		SupervisorID:   supervisorID,
		ApprovalStatus: status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, repos.Project.Create(context.Background(), project))
	return project
}
