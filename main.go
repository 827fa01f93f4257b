// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/request-desk/attachment"
	"github.com/danielhkuo/request-desk/auth"
	"github.com/danielhkuo/request-desk/cliparse"
	"github.com/danielhkuo/request-desk/db"
	"github.com/danielhkuo/request-desk/router"
	"github.com/danielhkuo/request-desk/store"
	"github.com/danielhkuo/request-desk/workflow"
)

// backend persists both records and the admin account
type backend interface {
	store.RecordStore
	store.AdminStore
}

func main() {
	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, closeStore, err := openBackend(ctx, cfg)
	if err != nil {
		slog.Error("record store unavailable", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	files, err := openAttachments(ctx, cfg)
	if err != nil {
		slog.Error("attachment store unavailable", "driver", cfg.UploadDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("Attachment store ready", "driver", files.Driver())

	gate, err := auth.NewGate(records)
	if err != nil {
		slog.Error("failed to create admin gate", "error", err)
		os.Exit(1)
	}
	if cfg.AdminPassword == cliparse.DefaultAdminPassword {
		slog.Warn("using the default admin password; set ADMIN_PASSWORD before calling /setup")
	}

	svc := workflow.NewService(records, attachment.NewHandler(files), gate, workflow.Options{
		TolerateUploadErrors: cfg.TolerateUploadErrors,
	})

	sessions := auth.NewSessionStore(cfg.SecureCookies, auth.DefaultSessionTTL)
	go sessions.SweepEvery(ctx, 10*time.Minute)

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(svc, sessions, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

func openBackend(ctx context.Context, cfg cliparse.Config) (backend, func(), error) {
	if cfg.DatabaseType == db.TypeMemory {
		slog.Warn("using in-memory record store; data is lost on exit")
		return store.NewMemoryStore(), func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	return store.NewSQLStore(conn, cfg.DatabaseType), func() { conn.Close() }, nil
}

func openAttachments(ctx context.Context, cfg cliparse.Config) (attachment.Store, error) {
	switch cfg.UploadDriver {
	case attachment.DriverS3:
		s3Store, err := attachment.NewS3Store(ctx, attachment.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	default:
		fileStore, err := attachment.NewFileStore(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		return fileStore, nil
	}
}
