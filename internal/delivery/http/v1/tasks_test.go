package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choretracker/internal/clock"
	"choretracker/internal/models"
	"choretracker/internal/services"
)

type fakeTaskService struct {
	byOwner  map[int64][]models.Task
	added    []models.Task
	addErr   error
	matchErr error
}

func newFakeTaskService() *fakeTaskService {
	return &fakeTaskService{byOwner: make(map[int64][]models.Task)}
}

func (f *fakeTaskService) ListAllTasks(context.Context) ([]models.Task, error) {
	var all []models.Task
	for _, tasks := range f.byOwner {
		all = append(all, tasks...)
	}
	return all, nil
}

func (f *fakeTaskService) ListTasksByOwner(_ context.Context, ownerID int64) ([]models.Task, error) {
	return f.byOwner[ownerID], nil
}

func (f *fakeTaskService) FindTasksByNamePrefix(_ context.Context, ownerID int64, prefix string) ([]models.Task, error) {
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	var matches []models.Task
	for _, task := range f.byOwner[ownerID] {
		if strings.HasPrefix(task.Name, prefix) {
			matches = append(matches, task)
		}
	}
	return matches, nil
}

func (f *fakeTaskService) AddTask(_ context.Context, task models.Task) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, task)
	return nil
}

func (f *fakeTaskService) DeleteTask(_ context.Context, ownerID int64, name string) error {
	for i, task := range f.byOwner[ownerID] {
		if task.Name == name {
			f.byOwner[ownerID] = append(f.byOwner[ownerID][:i], f.byOwner[ownerID][i+1:]...)
			return nil
		}
	}
	return services.ErrTaskNotFound
}

func (f *fakeTaskService) CompleteTask(_ context.Context, ownerID int64, name string) error {
	for _, task := range f.byOwner[ownerID] {
		if task.Name == name {
			return nil
		}
	}
	return services.ErrTaskNotFound
}

type fakeAlertService struct {
	passes int
	err    error
}

func (f *fakeAlertService) Run(context.Context) {}

func (f *fakeAlertService) RunAlertPassNow(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.passes++
	return nil
}

type fakeSessionService struct {
	session *models.Session
}

func (f *fakeSessionService) CreateSession(context.Context, services.Identity) (*services.SessionResult, error) {
	return nil, nil
}

func (f *fakeSessionService) GetSessionByID(context.Context, string) (*models.Session, error) {
	if f.session == nil {
		return nil, services.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeSessionService) DeleteSessionsByOwner(context.Context, int64) error { return nil }

type fakeAuthService struct{}

func (fakeAuthService) AuthorizeURL(string) string { return "https://example.com/authorize" }

func (fakeAuthService) ExchangeCode(context.Context, string) (*services.Identity, error) {
	return nil, nil
}

func (fakeAuthService) ParseJWTToken(string) (*jwt.RegisteredClaims, error) {
	return nil, jwt.ErrTokenMalformed
}

const testOwnerID int64 = 42

func newTestRouter(tasks services.TaskService, alerts services.AlertService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := New(
		zerolog.Nop(),
		fakeAuthService{},
		&fakeSessionService{},
		tasks,
		alerts,
		clock.New(time.UTC),
	)

	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(ownerIDCtxKey, testOwnerID)
		c.Set(sessionCtxKey, &models.Session{
			ID:       "test-session",
			OwnerID:  testOwnerID,
			Username: "tester",
		})
	})
	api.GET("/user", handler.HandleGetUser)
	api.GET("/chores", handler.HandleListChores)
	api.GET("/chores/search", handler.HandleFindChores)
	api.POST("/chores", handler.HandleAddChore)
	api.PUT("/chores/:name/complete", handler.HandleCompleteChore)
	api.DELETE("/chores/:name", handler.HandleDeleteChore)
	api.POST("/alerts/run", handler.HandleRunAlerts)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleListChores(t *testing.T) {
	today := clock.New(time.UTC).Today()
	store := newFakeTaskService()
	store.byOwner[testOwnerID] = []models.Task{
		{OwnerID: testOwnerID, Name: "dishes", Type: models.TaskRegular, FrequencyDays: 3, LastCompleted: today.AddDays(-9)},
		{OwnerID: testOwnerID, Name: "passport", Type: models.TaskOnceOff, LastCompleted: today.AddDays(-9)},
	}
	router := newTestRouter(store, &fakeAlertService{})

	rec := doRequest(router, http.MethodGet, "/api/chores", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listChoresResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Chores, 2)

	dishes := resp.Chores[0]
	assert.Equal(t, "dishes", dishes.Name)
	assert.Equal(t, "regular", dishes.Type)
	assert.Equal(t, 9, dishes.DaysSince)
	assert.Equal(t, "overdue", dishes.State)
	assert.Equal(t, 6, dishes.DaysLate)

	passport := resp.Chores[1]
	assert.Equal(t, "once_off", passport.Type)
	assert.Equal(t, "always_due", passport.State)
}

func TestHandleFindChores(t *testing.T) {
	today := clock.New(time.UTC).Today()
	store := newFakeTaskService()
	store.byOwner[testOwnerID] = []models.Task{
		{OwnerID: testOwnerID, Name: "dishes", Type: models.TaskRegular, FrequencyDays: 3, LastCompleted: today},
		{OwnerID: testOwnerID, Name: "bins", Type: models.TaskRegular, FrequencyDays: 7, LastCompleted: today},
	}
	router := newTestRouter(store, &fakeAlertService{})

	rec := doRequest(router, http.MethodGet, "/api/chores/search?q=di", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listChoresResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Chores, 1)
	assert.Equal(t, "dishes", resp.Chores[0].Name)
}

func TestHandleAddChore(t *testing.T) {
	store := newFakeTaskService()
	router := newTestRouter(store, &fakeAlertService{})

	rec := doRequest(router, http.MethodPost, "/api/chores",
		`{"chore_name":"dishes","chore_frequency":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, store.added, 1)
	assert.Equal(t, testOwnerID, store.added[0].OwnerID)
	assert.Equal(t, models.TaskRegular, store.added[0].Type)
	assert.Equal(t, 3, store.added[0].FrequencyDays)
}

func TestHandleAddChoreConflict(t *testing.T) {
	store := newFakeTaskService()
	store.addErr = services.ErrTaskAlreadyExists
	router := newTestRouter(store, &fakeAlertService{})

	rec := doRequest(router, http.MethodPost, "/api/chores",
		`{"chore_name":"dishes","chore_frequency":3}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleAddChoreValidation(t *testing.T) {
	store := newFakeTaskService()
	router := newTestRouter(store, &fakeAlertService{})

	// Missing name.
	rec := doRequest(router, http.MethodPost, "/api/chores", `{"chore_frequency":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Regular chores need a positive frequency.
	rec = doRequest(router, http.MethodPost, "/api/chores", `{"chore_name":"dishes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown type names are rejected.
	rec = doRequest(router, http.MethodPost, "/api/chores",
		`{"chore_name":"dishes","chore_type":"weekly"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// One-offs need no frequency.
	rec = doRequest(router, http.MethodPost, "/api/chores",
		`{"chore_name":"passport","chore_type":"once_off"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandleCompleteChore(t *testing.T) {
	today := clock.New(time.UTC).Today()
	store := newFakeTaskService()
	store.byOwner[testOwnerID] = []models.Task{
		{OwnerID: testOwnerID, Name: "dishes", Type: models.TaskRegular, FrequencyDays: 3, LastCompleted: today},
	}
	router := newTestRouter(store, &fakeAlertService{})

	rec := doRequest(router, http.MethodPut, "/api/chores/dishes/complete", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPut, "/api/chores/mopping/complete", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDeleteChore(t *testing.T) {
	today := clock.New(time.UTC).Today()
	store := newFakeTaskService()
	store.byOwner[testOwnerID] = []models.Task{
		{OwnerID: testOwnerID, Name: "dishes", Type: models.TaskRegular, FrequencyDays: 3, LastCompleted: today},
	}
	router := newTestRouter(store, &fakeAlertService{})

	rec := doRequest(router, http.MethodDelete, "/api/chores/dishes", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.byOwner[testOwnerID])

	rec = doRequest(router, http.MethodDelete, "/api/chores/dishes", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRunAlerts(t *testing.T) {
	alerts := &fakeAlertService{}
	router := newTestRouter(newFakeTaskService(), alerts)

	rec := doRequest(router, http.MethodPost, "/api/alerts/run", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, alerts.passes)
}

func TestHandleGetUser(t *testing.T) {
	router := newTestRouter(newFakeTaskService(), &fakeAlertService{})

	rec := doRequest(router, http.MethodGet, "/api/user", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp getUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testOwnerID, resp.ID)
	assert.Equal(t, "tester", resp.Username)
	assert.NotContains(t, rec.Body.String(), "refresh_token")
}
