package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/staffhub/workforce-backend-go/internal/handler/http/middleware"
	"github.com/staffhub/workforce-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService          jwt.Service
	AttendanceHandler   AttendanceHandler
	TimesheetHandler    TimesheetHandler
	PayrollHandler      PayrollHandler
	LeaveHandler        LeaveHandler
	SettingsHandler     SettingsHandler
	NotificationHandler NotificationHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", deps.AttendanceHandler.ClockIn)
				r.Post("/clock-out", deps.AttendanceHandler.ClockOut)
				r.Get("/my", deps.AttendanceHandler.GetMyAttendance)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Get("/", deps.AttendanceHandler.List)
					r.Post("/close-day", deps.AttendanceHandler.CloseDay)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/{id}", deps.TimesheetHandler.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Get("/", deps.TimesheetHandler.List)
					r.Post("/aggregate", deps.TimesheetHandler.Aggregate)
					r.Post("/{id}/approve", deps.TimesheetHandler.Approve)
					r.Post("/{id}/reject", deps.TimesheetHandler.Reject)
				})
			})

			r.Route("/pay-stubs", func(r chi.Router) {
				r.Get("/{id}", deps.PayrollHandler.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Get("/", deps.PayrollHandler.List)
					r.Post("/", deps.PayrollHandler.GeneratePayStub)
					r.Patch("/{id}/status", deps.PayrollHandler.UpdateStatus)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", deps.LeaveHandler.Submit)
				r.Get("/my", deps.LeaveHandler.GetMyRequests)
				r.Get("/{id}", deps.LeaveHandler.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Get("/", deps.LeaveHandler.List)
					r.Post("/{id}/decide", deps.LeaveHandler.Decide)
				})
			})

			r.Get("/events/my", deps.NotificationHandler.GetMyEvents)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", deps.SettingsHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", deps.SettingsHandler.Update)
				})
			})
		})
	})
	return r
}
