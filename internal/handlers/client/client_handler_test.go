package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crm-service/internal/domain/client"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/validate"
	service "crm-service/internal/service/client"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const clientID = "6f1c2b9e-3d4a-4e5f-8a7b-9c0d1e2f3a4b"

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	c.ID = clientID
	return args.Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*client.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filters *client.ClientListFilters) ([]client.Client, error) {
	args := m.Called(ctx, filters)
	list, _ := args.Get(0).([]client.Client)
	return list, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id string, req *client.UpdateClientRequest) (*client.Client, error) {
	args := m.Called(ctx, id, req)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func setup() (*gin.Engine, *mockRepo) {
	gin.SetMode(gin.TestMode)
	validate.Setup()

	repo := &mockRepo{}
	h := NewClientHandler(service.NewClientService(repo, zap.NewNop()))

	r := gin.New()
	r.GET("/api/clients", h.ListClients)
	r.POST("/api/clients", h.CreateClient)
	r.GET("/api/clients/:id", h.GetClient)
	r.PATCH("/api/clients/:id", h.UpdateClient)
	r.DELETE("/api/clients/:id", h.DeleteClient)
	return r, repo
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateClient_AppliesDefaults(t *testing.T) {
	r, repo := setup()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *client.Client) bool {
		return c.Status == client.StatusActive && c.Tags != nil && c.Notes == ""
	})).Return(nil)

	w := do(r, http.MethodPost, "/api/clients",
		`{"name":"Acme","email":"ops@acme.test","phone":"555-0100","address":"1 Main St"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"`+clientID+`"`)
	assert.Contains(t, w.Body.String(), `"status":"active"`)
	repo.AssertExpectations(t)
}

func TestCreateClient_MissingFields(t *testing.T) {
	r, repo := setup()

	w := do(r, http.MethodPost, "/api/clients", `{"name":"Acme"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Invalid client data"`)
	assert.Contains(t, w.Body.String(), `"field":"email"`)
	assert.Contains(t, w.Body.String(), `"field":"address"`)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetClient_MalformedIDIsNotFound(t *testing.T) {
	r, repo := setup()

	w := do(r, http.MethodGet, "/api/clients/not-a-uuid", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Client not found"}`, w.Body.String())
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetClient_Missing(t *testing.T) {
	r, repo := setup()
	repo.On("FindByID", mock.Anything, clientID).Return(nil, xerrors.ErrNotFound)

	w := do(r, http.MethodGet, "/api/clients/"+clientID, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Client not found"}`, w.Body.String())
}

func TestUpdateClient_RejectsBadStatus(t *testing.T) {
	r, repo := setup()

	w := do(r, http.MethodPatch, "/api/clients/"+clientID, `{"status":"archived"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Invalid update data"`)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteClient(t *testing.T) {
	r, repo := setup()
	repo.On("Delete", mock.Anything, clientID).Return(nil).Once()

	w := do(r, http.MethodDelete, "/api/clients/"+clientID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	repo.On("Delete", mock.Anything, clientID).Return(xerrors.ErrNotFound).Once()
	w = do(r, http.MethodDelete, "/api/clients/"+clientID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListClients_PassesSearch(t *testing.T) {
	r, repo := setup()
	repo.On("List", mock.Anything, &client.ClientListFilters{Search: "acme"}).
		Return([]client.Client{{ID: clientID, Name: "Acme"}}, nil)

	w := do(r, http.MethodGet, "/api/clients?search=acme", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Acme"`)
}
