package approval_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"project-catalog/internal/domain"
	"project-catalog/internal/mocks"
	"project-catalog/internal/service/approval"
)

type fixture struct {
	projects  *mocks.ProjectRepository
	users     *mocks.UserRepository
	publisher *mocks.Publisher
	svc       approval.Service
}

func newFixture() *fixture {
	f := &fixture{
		projects:  new(mocks.ProjectRepository),
		users:     new(mocks.UserRepository),
		publisher: &mocks.Publisher{},
	}
	f.svc = approval.NewService(f.projects, f.users, f.publisher)
	return f
}

func user(name string, role domain.UserRole) *domain.User {
	return &domain.User{ID: uuid.New(), Name: name, Role: role, IsActive: true}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Non-admin with supervisor is pending", func(t *testing.T) {
		f := newFixture()
		owner := user("Ana", domain.RoleUser)
		supervisor := user("Ben", domain.RoleSupervisor)
		f.users.On("GetByID", ctx, owner.ID).Return(owner, nil)
		f.users.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil)
		f.projects.On("Create", ctx, mock.AnythingOfType("*domain.Project")).Return(nil).Once()

		project, err := f.svc.Submit(ctx, owner.ID, domain.SubmitProjectInput{Title: "Compilers", SupervisorID: &supervisor.ID})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, project.ApprovalStatus)
		assert.Nil(t, project.ApprovedBy)
		assert.Nil(t, project.ApprovedAt)

		events := f.publisher.Events()
		require.Len(t, events, 1)
		submitted, ok := events[0].(domain.ProjectSubmitted)
		require.True(t, ok)
		assert.Equal(t, supervisor.ID, submitted.Recipient())
		assert.Equal(t, "Ana", submitted.OwnerName)
		assert.False(t, submitted.SelfApproved)
		f.projects.AssertExpectations(t)
	})

	t.Run("Admin is approved immediately", func(t *testing.T) {
		f := newFixture()
		admin := user("Root", domain.RoleAdmin)
		f.users.On("GetByID", ctx, admin.ID).Return(admin, nil)
		f.projects.On("Create", ctx, mock.AnythingOfType("*domain.Project")).Return(nil).Once()

		project, err := f.svc.Submit(ctx, admin.ID, domain.SubmitProjectInput{Title: "Kernel"})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, project.ApprovalStatus)
		require.NotNil(t, project.ApprovedBy)
		assert.Equal(t, admin.ID, *project.ApprovedBy)
		assert.NotNil(t, project.ApprovedAt)

		events := f.publisher.Events()
		require.Len(t, events, 1)
		assert.Equal(t, admin.ID, events[0].Recipient())
		assert.True(t, events[0].(domain.ProjectSubmitted).SelfApproved)
	})

	t.Run("Missing supervisor", func(t *testing.T) {
		f := newFixture()
		owner := user("Ana", domain.RoleUser)
		f.users.On("GetByID", ctx, owner.ID).Return(owner, nil)

		_, err := f.svc.Submit(ctx, owner.ID, domain.SubmitProjectInput{Title: "Compilers"})

		assert.ErrorIs(t, err, domain.ErrMissingSupervisor)
		assert.Empty(t, f.publisher.Events())
		f.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Supervisor without review role", func(t *testing.T) {
		f := newFixture()
		owner := user("Ana", domain.RoleUser)
		peer := user("Cal", domain.RoleUser)
		f.users.On("GetByID", ctx, owner.ID).Return(owner, nil)
		f.users.On("GetByID", ctx, peer.ID).Return(peer, nil)

		_, err := f.svc.Submit(ctx, owner.ID, domain.SubmitProjectInput{Title: "Compilers", SupervisorID: &peer.ID})

		assert.ErrorIs(t, err, domain.ErrInvalidSupervisor)
		assert.Empty(t, f.publisher.Events())
	})

	t.Run("Unknown supervisor", func(t *testing.T) {
		f := newFixture()
		owner := user("Ana", domain.RoleUser)
		ghost := uuid.New()
		f.users.On("GetByID", ctx, owner.ID).Return(owner, nil)
		f.users.On("GetByID", ctx, ghost).Return(nil, fmt.Errorf("user: %w", domain.ErrNotFound))

		_, err := f.svc.Submit(ctx, owner.ID, domain.SubmitProjectInput{Title: "Compilers", SupervisorID: &ghost})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Blank title", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Submit(ctx, uuid.New(), domain.SubmitProjectInput{Title: "   "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Title too long", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Submit(ctx, uuid.New(), domain.SubmitProjectInput{Title: strings.Repeat("a", domain.MaxTitleLength+1)})
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Create failure publishes nothing", func(t *testing.T) {
		f := newFixture()
		admin := user("Root", domain.RoleAdmin)
		f.users.On("GetByID", ctx, admin.ID).Return(admin, nil)
		f.projects.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		_, err := f.svc.Submit(ctx, admin.ID, domain.SubmitProjectInput{Title: "Kernel"})

		assert.Error(t, err)
		assert.Empty(t, f.publisher.Events())
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()

	pendingProject := func(ownerID, supervisorID uuid.UUID) *domain.Project {
		return &domain.Project{
			ID: uuid.New(), Title: "Compilers", OwnerID: ownerID,
			SupervisorID: &supervisorID, ApprovalStatus: domain.StatusPending,
		}
	}

	t.Run("Assigned supervisor approves", func(t *testing.T) {
		f := newFixture()
		owner := user("Ana", domain.RoleUser)
		supervisor := user("Ben", domain.RoleSupervisor)
		project := pendingProject(owner.ID, supervisor.ID)
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil)
		f.projects.On("Update", ctx, mock.MatchedBy(func(p *domain.Project) bool {
			return p.ApprovalStatus == domain.StatusApproved && *p.ApprovedBy == supervisor.ID
		})).Return(nil).Once()

		updated, err := f.svc.Approve(ctx, project.ID, supervisor.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, updated.ApprovalStatus)
		assert.NotNil(t, updated.ApprovedAt)

		events := f.publisher.Events()
		require.Len(t, events, 1)
		approved := events[0].(domain.ProjectApproved)
		assert.Equal(t, owner.ID, approved.Recipient())
		assert.Equal(t, "Ben", approved.ApproverName)
	})

	t.Run("Unrelated user is refused", func(t *testing.T) {
		f := newFixture()
		owner := user("Ana", domain.RoleUser)
		outsider := user("Cal", domain.RoleUser)
		project := pendingProject(owner.ID, uuid.New())
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, outsider.ID).Return(outsider, nil)

		_, err := f.svc.Approve(ctx, project.ID, outsider.ID)

		assert.ErrorIs(t, err, domain.ErrUnauthorizedTransition)
		assert.Equal(t, domain.StatusPending, project.ApprovalStatus)
		assert.Empty(t, f.publisher.Events())
		f.projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Admin approves unassigned project", func(t *testing.T) {
		f := newFixture()
		admin := user("Root", domain.RoleAdmin)
		project := &domain.Project{ID: uuid.New(), OwnerID: uuid.New(), ApprovalStatus: domain.StatusPending}
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, admin.ID).Return(admin, nil)
		f.projects.On("Update", ctx, mock.Anything).Return(nil).Once()

		_, err := f.svc.Approve(ctx, project.ID, admin.ID)

		require.NoError(t, err)
		assert.Len(t, f.publisher.Events(), 1)
	})

	t.Run("Already approved is a no-op", func(t *testing.T) {
		f := newFixture()
		supervisor := user("Ben", domain.RoleSupervisor)
		project := pendingProject(uuid.New(), supervisor.ID)
		project.ApprovalStatus = domain.StatusApproved
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil)

		updated, err := f.svc.Approve(ctx, project.ID, supervisor.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, updated.ApprovalStatus)
		assert.Empty(t, f.publisher.Events())
		f.projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Save failure leaves state and publishes nothing", func(t *testing.T) {
		f := newFixture()
		supervisor := user("Ben", domain.RoleSupervisor)
		project := pendingProject(uuid.New(), supervisor.ID)
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil)
		f.projects.On("Update", ctx, mock.Anything).Return(errors.New("db down")).Once()

		_, err := f.svc.Approve(ctx, project.ID, supervisor.ID)

		assert.Error(t, err)
		assert.Equal(t, domain.StatusPending, project.ApprovalStatus)
		assert.Nil(t, project.ApprovedBy)
		assert.Empty(t, f.publisher.Events())
	})
}

func TestService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores reason and stamps reviewer", func(t *testing.T) {
		f := newFixture()
		owner := user("Ana", domain.RoleUser)
		supervisor := user("Ben", domain.RoleSupervisor)
		project := &domain.Project{ID: uuid.New(), Title: "Compilers", OwnerID: owner.ID, SupervisorID: &supervisor.ID, ApprovalStatus: domain.StatusApproved}
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil)
		f.projects.On("Update", ctx, mock.Anything).Return(nil).Once()

		updated, err := f.svc.Reject(ctx, project.ID, supervisor.ID, " Scope too wide ")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, updated.ApprovalStatus)
		require.NotNil(t, updated.RejectionReason)
		assert.Equal(t, "Scope too wide", *updated.RejectionReason)
		assert.Equal(t, supervisor.ID, *updated.ApprovedBy)

		events := f.publisher.Events()
		require.Len(t, events, 1)
		rejected := events[0].(domain.ProjectRejected)
		assert.Equal(t, owner.ID, rejected.Recipient())
		assert.Equal(t, "Scope too wide", rejected.Reason)
	})

	t.Run("Unrelated user is refused", func(t *testing.T) {
		f := newFixture()
		outsider := user("Cal", domain.RoleUser)
		project := &domain.Project{ID: uuid.New(), OwnerID: uuid.New(), ApprovalStatus: domain.StatusPending}
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, outsider.ID).Return(outsider, nil)

		_, err := f.svc.Reject(ctx, project.ID, outsider.ID, "no")

		assert.ErrorIs(t, err, domain.ErrUnauthorizedTransition)
		assert.Empty(t, f.publisher.Events())
	})

	t.Run("Reason too long", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Reject(ctx, uuid.New(), uuid.New(), strings.Repeat("r", domain.MaxRejectionReasonLength+1))

		assert.ErrorIs(t, err, domain.ErrValidation)
		f.projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.Events())
	})

	t.Run("Already rejected is a no-op", func(t *testing.T) {
		f := newFixture()
		admin := user("Root", domain.RoleAdmin)
		project := &domain.Project{ID: uuid.New(), OwnerID: uuid.New(), ApprovalStatus: domain.StatusRejected}
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, admin.ID).Return(admin, nil)

		_, err := f.svc.Reject(ctx, project.ID, admin.ID, "again")

		require.NoError(t, err)
		assert.Empty(t, f.publisher.Events())
	})
}

func TestService_Resubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner resubmits rejected project", func(t *testing.T) {
		f := newFixture()
		owner := user("Ana", domain.RoleUser)
		supervisor := user("Ben", domain.RoleSupervisor)
		reason := "Scope"
		project := &domain.Project{ID: uuid.New(), Title: "Compilers", OwnerID: owner.ID, SupervisorID: &supervisor.ID,
			ApprovalStatus: domain.StatusRejected, ApprovedBy: &supervisor.ID, RejectionReason: &reason}
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, owner.ID).Return(owner, nil)
		f.users.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil)
		f.projects.On("Update", ctx, mock.Anything).Return(nil).Once()

		updated, err := f.svc.Resubmit(ctx, project.ID, owner.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, updated.ApprovalStatus)
		assert.Nil(t, updated.ApprovedBy)
		assert.Nil(t, updated.RejectionReason)
		require.Len(t, f.publisher.Events(), 1)
		assert.Equal(t, supervisor.ID, f.publisher.Events()[0].Recipient())
	})

	t.Run("Stranger is forbidden", func(t *testing.T) {
		f := newFixture()
		stranger := user("Cal", domain.RoleSupervisor)
		project := &domain.Project{ID: uuid.New(), OwnerID: uuid.New(), ApprovalStatus: domain.StatusRejected}
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.users.On("GetByID", ctx, stranger.ID).Return(stranger, nil)

		_, err := f.svc.Resubmit(ctx, project.ID, stranger.ID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestService_AssignSupervisor(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin assigns", func(t *testing.T) {
		f := newFixture()
		admin := user("Root", domain.RoleAdmin)
		supervisor := user("Ben", domain.RoleSupervisor)
		project := &domain.Project{ID: uuid.New(), OwnerID: uuid.New(), ApprovalStatus: domain.StatusPending}
		f.users.On("GetByID", ctx, admin.ID).Return(admin, nil)
		f.users.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil)
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)
		f.projects.On("Update", ctx, mock.MatchedBy(func(p *domain.Project) bool {
			return p.IsSupervisedBy(supervisor.ID) && p.ApprovalStatus == domain.StatusPending
		})).Return(nil).Once()

		updated, err := f.svc.AssignSupervisor(ctx, project.ID, admin.ID, supervisor.ID)

		require.NoError(t, err)
		assert.True(t, updated.IsSupervisedBy(supervisor.ID))
		assert.Empty(t, f.publisher.Events())
	})

	t.Run("Non-admin forbidden", func(t *testing.T) {
		f := newFixture()
		supervisor := user("Ben", domain.RoleSupervisor)
		f.users.On("GetByID", ctx, supervisor.ID).Return(supervisor, nil)

		_, err := f.svc.AssignSupervisor(ctx, uuid.New(), supervisor.ID, supervisor.ID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Invalid supervisor role", func(t *testing.T) {
		f := newFixture()
		admin := user("Root", domain.RoleAdmin)
		peer := user("Cal", domain.RoleUser)
		project := &domain.Project{ID: uuid.New(), OwnerID: uuid.New(), ApprovalStatus: domain.StatusPending}
		f.users.On("GetByID", ctx, admin.ID).Return(admin, nil)
		f.users.On("GetByID", ctx, peer.ID).Return(peer, nil)
		f.projects.On("GetByID", ctx, project.ID).Return(project, nil)

		_, err := f.svc.AssignSupervisor(ctx, project.ID, admin.ID, peer.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidSupervisor)
	})
}
