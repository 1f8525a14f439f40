package task

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modulink/modulink/internal/event_bus"
)

func newTestRouter(service Service) *mux.Router {
	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/task", handler.GetTasks).Methods(http.MethodGet)
	router.HandleFunc("/api/task", handler.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/api/task/{taskUid}", handler.UpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/api/task/{taskUid}", handler.DeleteTask).Methods(http.MethodDelete)
	return router
}

func TestHandler_CreateTask(t *testing.T) {
	router := newTestRouter(NewService(NewRepositoryStub(), event_bus.NewEventBus()))
	body := `{"name":"prepare release","start":"2024-01-02T09:00:00Z","due":"2024-01-05T09:00:00Z"}`
	request := httptest.NewRequest(http.MethodPost, "/api/task", strings.NewReader(body))
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusCreated, responseRecorder.Code)
	var dto TaskDTO
	require.NoError(t, json.NewDecoder(responseRecorder.Body).Decode(&dto))
	assert.NotEmpty(t, dto.UID)
	assert.Equal(t, "prepare release", dto.Name)
	require.NotNil(t, dto.StartTime)
}

func TestHandler_CreateDueOnlyTask(t *testing.T) {
	router := newTestRouter(NewService(NewRepositoryStub(), event_bus.NewEventBus()))
	body := `{"name":"file report","due":"2024-01-03T17:00:00Z"}`
	request := httptest.NewRequest(http.MethodPost, "/api/task", strings.NewReader(body))
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusCreated, responseRecorder.Code)
	var dto TaskDTO
	require.NoError(t, json.NewDecoder(responseRecorder.Body).Decode(&dto))
	assert.Nil(t, dto.StartTime)
}

func TestHandler_CreateTaskInvalid(t *testing.T) {
	router := newTestRouter(NewService(NewRepositoryStub(), event_bus.NewEventBus()))
	request := httptest.NewRequest(http.MethodPost, "/api/task", strings.NewReader(`{"name":"no due"}`))
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusBadRequest, responseRecorder.Code)
}

func TestHandler_GetTasks(t *testing.T) {
	repo := NewRepositoryStub()
	router := newTestRouter(NewService(repo, event_bus.NewEventBus()))
	_, err := repo.StoreTask(context.Background(), Task{
		UID:     "t-1",
		Name:    "file report",
		DueTime: time.Date(2024, 1, 3, 17, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet,
		"/api/task?from=2024-01-01T00:00:00Z&to=2024-01-08T00:00:00Z", nil)
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	var dtos []TaskDTO
	require.NoError(t, json.NewDecoder(responseRecorder.Body).Decode(&dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "t-1", dtos[0].UID)
}

func TestHandler_GetTasksInvalidRange(t *testing.T) {
	router := newTestRouter(NewService(NewRepositoryStub(), event_bus.NewEventBus()))
	request := httptest.NewRequest(http.MethodGet, "/api/task?from=noon&to=2024-01-08T00:00:00Z", nil)
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusBadRequest, responseRecorder.Code)
}

func TestHandler_UpdateTaskNotFound(t *testing.T) {
	router := newTestRouter(NewService(NewRepositoryStub(), event_bus.NewEventBus()))
	body := `{"name":"file report","due":"2024-01-03T17:00:00Z"}`
	request := httptest.NewRequest(http.MethodPut, "/api/task/missing", strings.NewReader(body))
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusNotFound, responseRecorder.Code)
}

func TestHandler_DeleteTask(t *testing.T) {
	repo := NewRepositoryStub()
	router := newTestRouter(NewService(repo, event_bus.NewEventBus()))
	_, err := repo.StoreTask(context.Background(), Task{
		UID:     "t-1",
		Name:    "file report",
		DueTime: time.Date(2024, 1, 3, 17, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodDelete, "/api/task/t-1", nil)
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusNoContent, responseRecorder.Code)
}
