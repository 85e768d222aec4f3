package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/config"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/presence-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/presence-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/presence-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/presence-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/presence-backend-go/internal/service/employee"
	employeeDashboardService "github.com/cmlabs-hris/presence-backend-go/internal/service/employee_dashboard"
	reportService "github.com/cmlabs-hris/presence-backend-go/internal/service/report"
	"github.com/redis/go-redis/v9"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	level, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := calendar.NewSystemClock(cfg.Location())

	// Storage
	var (
		userRepo       user.UserRepository
		attendanceRepo attendance.AttendanceRepository
	)
	switch cfg.App.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: cfg.Database.MaxConns})
		if err != nil {
			return fmt.Errorf("error connecting to database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
		userRepo = postgresql.NewUserRepository(db)
		attendanceRepo = postgresql.NewAttendanceRepository(db)
	default:
		userRepo = memory.NewUserRepository(clock)
		attendanceRepo = memory.NewAttendanceRepository(userRepo, clock)
	}
	slog.Info("Attendance store ready", "driver", cfg.App.StoreDriver)

	// Key-scoped lock
	var locker lock.Locker = lock.NewStripedLocker(0)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		locker = lock.NewRedisLocker(rdb)
		slog.Info("Using redis lock", "addr", cfg.Redis.Addr)
	}

	if cfg.App.SeedDemoData {
		if _, err := fixtures.SeedDemoData(ctx, userRepo, attendanceRepo, clock); err != nil {
			return fmt.Errorf("error seeding demo data: %w", err)
		}
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("error creating jwt service: %w", err)
	}

	hub := sse.NewHub()

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, clock, locker, attendanceService.WithPublisher(hub))
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, userRepo, clock)
	empDashboardSvc := employeeDashboardService.NewEmployeeDashboardService(attendanceRepo, clock)
	employeeSvc := employeeService.NewEmployeeService(userRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, clock)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:              appHTTP.NewAuthHandler(authService),
		Attendance:        appHTTP.NewAttendanceHandler(attendanceSvc, hub),
		Dashboard:         appHTTP.NewDashboardHandler(dashboardSvc),
		EmployeeDashboard: appHTTP.NewEmployeeDashboardHandler(empDashboardSvc),
		Employee:          appHTTP.NewEmployeeHandler(employeeSvc),
		Report:            appHTTP.NewReportHandler(reportSvc),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Env:            cfg.App.Env,
		Version:        version,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
