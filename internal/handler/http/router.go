package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth              AuthHandler
	Attendance        AttendanceHandler
	Dashboard         DashboardHandler
	EmployeeDashboard EmployeeDashboardHandler
	Employee          EmployeeHandler
	Report            ReportHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presence-cmlabs"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			// EventSource clients cannot set headers, so the stream also
			// accepts ?token=.
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromCookie, tokenFromQuery))
			r.Use(middleware.AuthRequired)

			r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/me", h.Employee.GetMe)

			r.Route("/attendance", func(r chi.Router) {
				// Employee only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-in", h.Attendance.CheckIn)
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-out", h.Attendance.CheckOut)
					r.Get("/today", h.Attendance.Today)
					r.Get("/history", h.Attendance.History)
					r.Get("/summary", h.EmployeeDashboard.GetMonthlySummary)
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/date/{date}", h.Attendance.ForDate)
					r.Get("/stream", h.Attendance.Stream)
				})

				// Owner or manager, checked by the service
				r.Get("/{id}", h.Attendance.Get)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequireEmployee).Get("/employee", h.EmployeeDashboard.GetDashboard)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Use(middleware.RequirePermission(user.PermissionDashboardView))
					r.Get("/", h.Dashboard.GetDashboard)
					r.Get("/stats", h.Dashboard.GetStats)
					r.Get("/weekly-trend", h.Dashboard.GetWeeklyTrend)
					r.Get("/departments", h.Dashboard.GetDepartmentBreakdown)
					r.Get("/calendar", h.Dashboard.GetCalendar)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}/summary", h.Dashboard.GetEmployeeSummary)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/attendance", h.Report.GetAttendanceReport)
				r.Get("/attendance/export", h.Report.ExportAttendanceReport)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}

func tokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("token")
}
