package app

import (
	"database/sql"

	"github.com/modulink/modulink/internal/config"
	"github.com/modulink/modulink/internal/event_bus"
	"github.com/modulink/modulink/internal/utils"
	"github.com/modulink/modulink/pkg/calendar"
	"github.com/modulink/modulink/pkg/event"
	"github.com/modulink/modulink/pkg/task"
	"github.com/modulink/modulink/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus   *event_bus.EventBus
	Clock utils.Clock

	UserRepo    user.Repo
	UserService *user.ServiceImpl
	UserHandler *user.Handler

	EventRepo    event.Repository
	EventService *event.ServiceImpl
	EventHandler *event.Handler

	TaskRepo    task.Repository
	TaskService *task.ServiceImpl
	TaskHandler *task.Handler

	CalendarService *calendar.Service
	CalendarHandler *calendar.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserRepo = user.NewRepo(db)
	deps.UserService = user.NewService(deps.UserRepo, deps.Bus)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo, deps.Bus)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.TaskRepo = task.NewRepository(db)
	deps.TaskService = task.NewService(deps.TaskRepo, deps.Bus)
	deps.TaskHandler = task.NewHandler(deps.TaskService)

	deps.CalendarService = calendar.NewService(deps.EventService, deps.TaskService, deps.Clock)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService, deps.Clock)

	return deps
}
