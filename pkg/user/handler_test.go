package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modulink/modulink/internal/event_bus"
)

func newTestRouter(service Service) *mux.Router {
	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/user", handler.GetAllUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/user", handler.CreateUser).Methods(http.MethodPost)
	router.HandleFunc("/api/user/{userId}", handler.UpdateUser).Methods(http.MethodPut)
	router.HandleFunc("/api/user/{userId}", handler.DeleteUser).Methods(http.MethodDelete)
	return router
}

func TestHandler_CreateUser(t *testing.T) {
	router := newTestRouter(NewService(NewRepoStub(), event_bus.NewEventBus()))
	body := `{"firstName":"Alice","lastName":"Smith","email":"alice@example.com"}`
	request := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(body))
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusCreated, responseRecorder.Code)
	var dto UserDTO
	require.NoError(t, json.NewDecoder(responseRecorder.Body).Decode(&dto))
	assert.NotZero(t, dto.Id)
	assert.Equal(t, "Alice", dto.FirstName)
}

func TestHandler_CreateUserMissingFields(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"email":"alice@example.com"}`},
		{name: "missing email", body: `{"firstName":"Alice","lastName":"Smith"}`},
		{name: "malformed json", body: `{"firstName":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(NewService(NewRepoStub(), event_bus.NewEventBus()))
			request := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(tc.body))
			responseRecorder := httptest.NewRecorder()

			router.ServeHTTP(responseRecorder, request)

			assert.Equal(t, http.StatusBadRequest, responseRecorder.Code)
		})
	}
}

func TestHandler_GetAllUsers(t *testing.T) {
	repo := NewRepoStub()
	router := newTestRouter(NewService(repo, event_bus.NewEventBus()))
	_, err := repo.CreateUser(context.Background(), User{FirstName: "Alice", LastName: "Smith", Email: "alice@example.com"})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	var dtos []UserDTO
	require.NoError(t, json.NewDecoder(responseRecorder.Body).Decode(&dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "alice@example.com", dtos[0].Email)
}

func TestHandler_UpdateUserNotFound(t *testing.T) {
	router := newTestRouter(NewService(NewRepoStub(), event_bus.NewEventBus()))
	body := `{"firstName":"Alice","lastName":"Smith","email":"alice@example.com"}`
	request := httptest.NewRequest(http.MethodPut, "/api/user/42", strings.NewReader(body))
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusNotFound, responseRecorder.Code)
}

func TestHandler_DeleteUser(t *testing.T) {
	repo := NewRepoStub()
	router := newTestRouter(NewService(repo, event_bus.NewEventBus()))
	id, err := repo.CreateUser(context.Background(), User{FirstName: "Alice", LastName: "Smith", Email: "alice@example.com"})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodDelete, "/api/user/"+strconv.Itoa(id), nil)
	responseRecorder := httptest.NewRecorder()

	router.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusNoContent, responseRecorder.Code)
}
