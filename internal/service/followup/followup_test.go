package followup

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm-service/internal/domain/followup"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	actorID  = "a0000000-0000-4000-8000-000000000001"
	otherID  = "a0000000-0000-4000-8000-000000000002"
	clientID = "c0000000-0000-4000-8000-000000000001"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, f *followup.FollowUp) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*followup.FollowUp, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*followup.FollowUp)
	return f, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filters *followup.FollowUpListFilters) ([]followup.FollowUp, error) {
	args := m.Called(ctx, filters)
	f, _ := args.Get(0).([]followup.FollowUp)
	return f, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id string, req *followup.UpdateFollowUpRequest) (*followup.FollowUp, error) {
	args := m.Called(ctx, id, req)
	f, _ := args.Get(0).(*followup.FollowUp)
	return f, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var fixedNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func newService(repo *mockRepo) *FollowUpService {
	s := NewFollowUpService(repo, zap.NewNop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func newRequest(status string) *followup.CreateFollowUpRequest {
	return &followup.CreateFollowUpRequest{
		ClientID:      clientID,
		FollowUpType:  "call",
		Title:         "Check in after deep clean",
		ScheduledDate: &types.Date{Time: fixedNow.AddDate(0, 0, 7)},
		Status:        status,
	}
}

func TestCreateFollowUp_DefaultsToActor(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*followup.FollowUp")).Return(nil)

	f, err := newService(repo).CreateFollowUp(context.Background(), actorID, newRequest(""))
	require.NoError(t, err)

	assert.Equal(t, followup.StatusPending, f.Status)
	require.NotNil(t, f.CreatedBy)
	require.NotNil(t, f.AssignedTo)
	assert.Equal(t, actorID, *f.CreatedBy)
	assert.Equal(t, actorID, *f.AssignedTo)
	assert.Nil(t, f.CompletedAt)
	assert.Nil(t, f.CompletedBy)
}

func TestCreateFollowUp_KeepsExplicitAssignee(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := newRequest("")
	other := otherID
	req.AssignedTo = &other

	f, err := newService(repo).CreateFollowUp(context.Background(), actorID, req)
	require.NoError(t, err)
	assert.Equal(t, otherID, *f.AssignedTo)
	assert.Equal(t, actorID, *f.CreatedBy)
}

func TestCreateFollowUp_CompletedStampsCompletion(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	f, err := newService(repo).CreateFollowUp(context.Background(), actorID, newRequest(followup.StatusCompleted))
	require.NoError(t, err)

	require.NotNil(t, f.CompletedAt)
	assert.Equal(t, fixedNow, *f.CompletedAt)
	assert.Equal(t, actorID, *f.CompletedBy)
}

func TestCreateFollowUp_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	fk := xerrors.Validation("Invalid follow-up data", xerrors.FieldError{Field: "clientId", Message: "Client does not exist"})
	repo.On("Create", mock.Anything, mock.Anything).Return(fk)

	_, err := newService(repo).CreateFollowUp(context.Background(), actorID, newRequest(""))
	assert.Equal(t, xerrors.KindValidation, xerrors.KindOf(err))
}

func TestUpdateFollowUp_PassesActor(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Update", mock.Anything, "f1", mock.MatchedBy(func(r *followup.UpdateFollowUpRequest) bool {
		return r.ActorID == actorID
	})).Return(&followup.FollowUp{ID: "f1"}, nil)

	status := followup.StatusCompleted
	_, err := newService(repo).UpdateFollowUp(context.Background(), actorID, "f1", &followup.UpdateFollowUpRequest{Status: &status})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestFollowUp_NotFound(t *testing.T) {
	repo := &mockRepo{}
	repo.On("FindByID", mock.Anything, "missing").Return(nil, xerrors.ErrNotFound)
	repo.On("Delete", mock.Anything, "missing").Return(xerrors.ErrNotFound)
	svc := newService(repo)

	_, err := svc.GetFollowUp(context.Background(), "missing")
	appErr, ok := xerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, xerrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Follow-up not found", appErr.Message)

	err = svc.DeleteFollowUp(context.Background(), "missing")
	assert.Equal(t, xerrors.KindNotFound, xerrors.KindOf(err))
}

func TestDeleteFollowUp_StoreFailureIsInternal(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Delete", mock.Anything, "f1").Return(errors.New("connection reset"))

	err := newService(repo).DeleteFollowUp(context.Background(), "f1")
	assert.Equal(t, xerrors.KindInternal, xerrors.KindOf(err))
}
