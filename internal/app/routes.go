package app

import (
	"github.com/gorilla/mux"
	"github.com/modulink/modulink/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.GetEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/{eventUid}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventUid}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Tasks
	r.HandleFunc("/api/task", deps.TaskHandler.GetTasks).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/task", deps.TaskHandler.CreateTask).Methods("POST")
	r.HandleFunc("/api/task/{taskUid}", deps.TaskHandler.UpdateTask).Methods("PUT")
	r.HandleFunc("/api/task/{taskUid}", deps.TaskHandler.DeleteTask).Methods("DELETE")

	// User directory
	r.HandleFunc("/api/user", deps.UserHandler.GetAllUsers).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Calendar views
	r.HandleFunc("/api/calendar/view", deps.CalendarHandler.GetView).Methods("GET")
	r.HandleFunc("/api/calendar/export.ics", deps.CalendarHandler.ExportICS).Queries("from", "{from}", "to", "{to}").Methods("GET")
}
