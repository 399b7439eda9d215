package lead

import (
	"context"
	"testing"

	"crm-service/internal/domain/client"
	"crm-service/internal/domain/lead"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct{ tx *fakeTx }

func (d *fakeDB) BeginTx(context.Context) (pgx.Tx, error) {
	return d.tx, nil
}

type mockLeadRepo struct{ mock.Mock }

func (m *mockLeadRepo) Create(ctx context.Context, l *lead.Lead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, id string) (*lead.Lead, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*lead.Lead)
	return l, args.Error(1)
}

func (m *mockLeadRepo) List(ctx context.Context, f *lead.LeadListFilters) ([]lead.Lead, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]lead.Lead)
	return l, args.Error(1)
}

func (m *mockLeadRepo) Update(ctx context.Context, id string, req *lead.UpdateLeadRequest) (*lead.Lead, error) {
	args := m.Called(ctx, id, req)
	l, _ := args.Get(0).(*lead.Lead)
	return l, args.Error(1)
}

func (m *mockLeadRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLeadRepo) FindByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, id string) (*lead.Lead, error) {
	args := m.Called(ctx, tx, id)
	l, _ := args.Get(0).(*lead.Lead)
	return l, args.Error(1)
}

func (m *mockLeadRepo) MarkConvertedWithTx(ctx context.Context, tx pgx.Tx, id, clientID string) (*lead.Lead, error) {
	args := m.Called(ctx, tx, id, clientID)
	l, _ := args.Get(0).(*lead.Lead)
	return l, args.Error(1)
}

type mockClientWriter struct{ mock.Mock }

func (m *mockClientWriter) CreateWithTx(ctx context.Context, tx pgx.Tx, c *client.Client) error {
	args := m.Called(ctx, tx, c)
	if args.Error(0) == nil {
		c.ID = "c-1"
	}
	return args.Error(0)
}

func newService() (*LeadService, *fakeTx, *mockLeadRepo, *mockClientWriter) {
	tx := &fakeTx{}
	leads := &mockLeadRepo{}
	clients := &mockClientWriter{}
	return NewLeadService(&fakeDB{tx: tx}, leads, clients, zap.NewNop()), tx, leads, clients
}

func TestConvertLead_CopiesContactAndMarksWon(t *testing.T) {
	svc, tx, leads, clients := newService()
	ctx := context.Background()

	address := "12 Elm St"
	l := &lead.Lead{
		ID: "l-1", Name: "Ann", Email: "ann@example.com", Phone: "555-0100",
		Address: &address, Notes: "wants weekly", Status: lead.StatusContacted, Value: types.Money(250),
	}
	leads.On("FindByIDForUpdateWithTx", ctx, tx, "l-1").Return(l, nil)

	var created *client.Client
	clients.On("CreateWithTx", ctx, tx, mock.AnythingOfType("*client.Client")).
		Run(func(args mock.Arguments) { created = args.Get(2).(*client.Client) }).
		Return(nil)

	clientID := "c-1"
	won := *l
	won.Status = lead.StatusWon
	won.ClientID = &clientID
	leads.On("MarkConvertedWithTx", ctx, tx, "l-1", "c-1").Return(&won, nil)

	result, err := svc.ConvertLead(ctx, "l-1")
	require.NoError(t, err)

	assert.True(t, tx.committed)
	assert.Equal(t, lead.StatusWon, result.Lead.Status)
	assert.Equal(t, "c-1", *result.Lead.ClientID)

	require.NotNil(t, created)
	assert.Equal(t, "Ann", created.Name)
	assert.Equal(t, "ann@example.com", created.Email)
	assert.Equal(t, "555-0100", created.Phone)
	assert.Equal(t, "12 Elm St", created.Address)
	assert.Equal(t, "wants weekly", created.Notes)
	assert.Equal(t, client.StatusActive, created.Status)
	assert.Empty(t, created.Tags)
}

func TestConvertLead_NotFoundCreatesNothing(t *testing.T) {
	svc, tx, leads, clients := newService()
	ctx := context.Background()
	leads.On("FindByIDForUpdateWithTx", ctx, tx, "missing").Return(nil, xerrors.ErrNotFound)

	_, err := svc.ConvertLead(ctx, "missing")

	appErr, ok := xerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, xerrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Lead not found", appErr.Message)
	assert.True(t, tx.rolledBack)
	clients.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertLead_AlreadyConverted(t *testing.T) {
	svc, tx, leads, clients := newService()
	ctx := context.Background()

	existing := "c-9"
	leads.On("FindByIDForUpdateWithTx", ctx, tx, "l-2").Return(&lead.Lead{ID: "l-2", ClientID: &existing}, nil)

	_, err := svc.ConvertLead(ctx, "l-2")

	appErr, ok := xerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, xerrors.KindValidation, appErr.Kind)
	assert.Equal(t, "Lead has already been converted", appErr.Message)
	assert.False(t, tx.committed)
	clients.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertLead_ClientFailureRollsBack(t *testing.T) {
	svc, tx, leads, clients := newService()
	ctx := context.Background()

	leads.On("FindByIDForUpdateWithTx", ctx, tx, "l-3").Return(&lead.Lead{ID: "l-3", Name: "Bo"}, nil)
	clients.On("CreateWithTx", ctx, tx, mock.Anything).Return(assert.AnError)

	_, err := svc.ConvertLead(ctx, "l-3")

	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, tx.rolledBack)
	leads.AssertNotCalled(t, "MarkConvertedWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateLead_DefaultsStatusNew(t *testing.T) {
	svc, _, leads, _ := newService()
	ctx := context.Background()
	leads.On("Create", ctx, mock.AnythingOfType("*lead.Lead")).Return(nil)

	value := types.Money(100)
	l, err := svc.CreateLead(ctx, &lead.CreateLeadRequest{
		Name: "Cy", Email: "cy@example.com", Phone: "1", Service: "Deep clean", Source: "web", Value: &value,
	})
	require.NoError(t, err)
	assert.Equal(t, lead.StatusNew, l.Status)
	assert.Nil(t, l.ClientID)
}

func TestDeleteLead_NotFound(t *testing.T) {
	svc, _, leads, _ := newService()
	ctx := context.Background()
	leads.On("Delete", ctx, "nope").Return(xerrors.ErrNotFound)

	err := svc.DeleteLead(ctx, "nope")
	assert.Equal(t, xerrors.KindNotFound, xerrors.KindOf(err))
}
