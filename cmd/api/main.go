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

	"github.com/cmlabs-hris/attendance-backend-go/internal/app"
	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	scheduler := cron.NewScheduler(5 * time.Minute)
	cron.NewLeaveJobs(a.Leave, cfg.Leave.SpanCheckInterval, cfg.Leave.SpanLookback, cfg.App.Location).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Attendance:   appHTTP.NewAttendanceHandler(a.Attendance),
		Leave:        appHTTP.NewLeaveHandler(a.Leave, cfg.Leave.SpanLookback, cfg.App.Location),
		Schedule:     appHTTP.NewScheduleHandler(a.Schedule),
		Dashboard:    appHTTP.NewDashboardHandler(a.Dashboard, cfg.App.Location),
		Notification: appHTTP.NewNotificationHandler(a.Notification),
		Stream:       appHTTP.NewStreamHandler(a.Hub, JWTService),
	}, appHTTP.RouterOptions{
		Env:         cfg.App.Env,
		CORSOrigins: cfg.App.CORSOrigins,
		FilesDir:    a.Storage.BasePath(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env, "timezone", cfg.App.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
