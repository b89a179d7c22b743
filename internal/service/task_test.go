package service

import (
	"testing"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/matter"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type TaskServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    TaskService
	testMatter *matter.Matter
}

func TestTaskService(t *testing.T) {
	suite.Run(t, new(TaskServiceSuite))
}

func (s *TaskServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *TaskServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewTaskService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		DB:         s.GetDB(),
		RBAC:       s.GetRBAC(),
		Limiter:    s.GetLimiter(),
		MatterRepo: stores.MatterRepo,
		TaskRepo:   stores.TaskRepo,
	})
}

func (s *TaskServiceSuite) setupTestData() {
	s.testMatter = matter.NewMatter(s.GetContext(), "Dossier Test", "client_1")
	s.NoError(s.GetStores().MatterRepo.Create(s.GetContext(), s.testMatter))
}

func (s *TaskServiceSuite) TestCreateTask() {
	resp, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{
		MatterID: s.testMatter.ID,
		Title:    "Rediger les conclusions",
		DueDate:  lo.ToPtr(time.Now().UTC().Add(7 * 24 * time.Hour)),
	})
	s.NoError(err)
	s.Equal(types.TaskStatusPending, resp.TaskStatus)
	// Unspecified priority lands in the middle of the queue
	s.Equal(types.TaskPriorityMedium, resp.Priority)
	s.Nil(resp.CompletedAt)
}

func (s *TaskServiceSuite) TestCreateTaskWithoutMatter() {
	// Firm chores are not tied to a case file
	resp, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{
		Title:    "Renouveler l'abonnement au greffe",
		Priority: lo.ToPtr(types.TaskPriorityLow),
	})
	s.NoError(err)
	s.Empty(resp.MatterID)
	s.Equal(types.TaskPriorityLow, resp.Priority)
}

func (s *TaskServiceSuite) TestCreateTaskUnknownMatter() {
	_, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{
		MatterID: "matter_missing",
		Title:    "Classer les pieces",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TaskServiceSuite) TestCreateTaskValidation() {
	testCases := []struct {
		name string
		req  *dto.CreateTaskRequest
	}{
		{
			name: "missing_title",
			req:  &dto.CreateTaskRequest{MatterID: "m"},
		},
		{
			name: "unknown_priority",
			req: &dto.CreateTaskRequest{
				Title:    "x",
				Priority: lo.ToPtr(types.TaskPriority("critical")),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateTask(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *TaskServiceSuite) TestCompleteTask() {
	created, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{
		Title: "Notifier le client",
	})
	s.NoError(err)

	done, err := s.service.UpdateTask(s.GetContext(), created.ID, &dto.UpdateTaskRequest{
		TaskStatus: lo.ToPtr(types.TaskStatusDone),
	})
	s.NoError(err)
	s.Equal(types.TaskStatusDone, done.TaskStatus)
	s.NotNil(done.CompletedAt)

	// Reopening clears the completion timestamp
	reopened, err := s.service.UpdateTask(s.GetContext(), created.ID, &dto.UpdateTaskRequest{
		TaskStatus: lo.ToPtr(types.TaskStatusPending),
	})
	s.NoError(err)
	s.Equal(types.TaskStatusPending, reopened.TaskStatus)
	s.Nil(reopened.CompletedAt)
}

func (s *TaskServiceSuite) TestUpdateTaskFields() {
	created, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{
		Title: "Preparer l'audience",
	})
	s.NoError(err)

	dueDate := time.Now().UTC().Add(48 * time.Hour)
	updated, err := s.service.UpdateTask(s.GetContext(), created.ID, &dto.UpdateTaskRequest{
		AssignedTo: lo.ToPtr("user_clerk"),
		Priority:   lo.ToPtr(types.TaskPriorityUrgent),
		DueDate:    lo.ToPtr(dueDate),
	})
	s.NoError(err)
	s.Equal("user_clerk", updated.AssignedTo)
	s.Equal(types.TaskPriorityUrgent, updated.Priority)
	s.Equal(dueDate, *updated.DueDate)
	s.Equal("Preparer l'audience", updated.Title)
}

func (s *TaskServiceSuite) TestListTasksByStatusAndAssignee() {
	_, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{
		Title:      "Tache A",
		AssignedTo: "user_a",
	})
	s.NoError(err)
	createdB, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{
		Title:      "Tache B",
		AssignedTo: "user_b",
	})
	s.NoError(err)
	_, err = s.service.UpdateTask(s.GetContext(), createdB.ID, &dto.UpdateTaskRequest{
		TaskStatus: lo.ToPtr(types.TaskStatusDone),
	})
	s.NoError(err)

	pending := types.NewTaskFilter()
	pending.TaskStatus = types.TaskStatusPending
	resp, err := s.service.ListTasks(s.GetContext(), pending)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("Tache A", resp.Items[0].Title)

	assigned := types.NewTaskFilter()
	assigned.AssignedTo = "user_b"
	resp, err = s.service.ListTasks(s.GetContext(), assigned)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("Tache B", resp.Items[0].Title)
}

func (s *TaskServiceSuite) TestListTasksTenantScoped() {
	_, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{Title: "Tache locale"})
	s.NoError(err)

	otherCtx := types.SetTenantID(s.GetContext(), "tenant_other")
	resp, err := s.service.ListTasks(otherCtx, types.NewTaskFilter())
	s.NoError(err)
	s.Len(resp.Items, 0)
}

func (s *TaskServiceSuite) TestDeleteTaskPermissions() {
	created, err := s.service.CreateTask(s.GetContext(), &dto.CreateTaskRequest{Title: "A supprimer"})
	s.NoError(err)

	associateCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierAssociate)
	err = s.service.DeleteTask(associateCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	s.NoError(s.service.DeleteTask(s.GetContext(), created.ID))
	_, err = s.service.GetTask(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
