package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/plandeck/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Profile  *apiHandler.ProfileHandler
	Task     *apiHandler.TaskHandler
	Habit    *apiHandler.HabitHandler
	Schedule *apiHandler.ScheduleHandler
	Board    *apiHandler.BoardHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.POST("/api/v1/tasks/quick", authMiddleware(handlers.Task.QuickAdd))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.POST("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Task.CompleteTask))
	r.GET("/api/v1/tasks/{id}/subtasks", authMiddleware(handlers.Task.GetSubtasks))

	r.GET("/api/v1/habits", authMiddleware(handlers.Habit.GetHabits))
	r.POST("/api/v1/habits", authMiddleware(handlers.Habit.CreateHabit))
	r.DELETE("/api/v1/habits/{id}", authMiddleware(handlers.Habit.ArchiveHabit))
	r.POST("/api/v1/habits/{id}/checkoff", authMiddleware(handlers.Habit.CheckOff))
	r.DELETE("/api/v1/habits/{id}/checkoff/{day}", authMiddleware(handlers.Habit.Uncheck))
	r.GET("/api/v1/habits/{id}/analytics", authMiddleware(handlers.Habit.GetAnalytics))

	r.GET("/api/v1/blocks", authMiddleware(handlers.Schedule.GetBlocks))
	r.POST("/api/v1/blocks", authMiddleware(handlers.Schedule.CreateBlock))
	r.PUT("/api/v1/blocks/{id}", authMiddleware(handlers.Schedule.UpdateBlock))
	r.DELETE("/api/v1/blocks/{id}", authMiddleware(handlers.Schedule.DeleteBlock))
	r.GET("/api/v1/schedule/workload", authMiddleware(handlers.Schedule.GetWorkload))
	r.GET("/api/v1/schedule/suggestions", authMiddleware(handlers.Schedule.GetSuggestions))
	r.POST("/api/v1/schedule/auto", authMiddleware(handlers.Schedule.AutoSchedule))

	r.GET("/api/v1/boards", authMiddleware(handlers.Board.GetBoard))
	r.POST("/api/v1/boards", authMiddleware(handlers.Board.CreateBoard))
	r.POST("/api/v1/boards/{id}/move", authMiddleware(handlers.Board.MoveCard))

	return r
}
