// Command consolectl drives the school console from a terminal. It keeps the
// login between runs in SESSION_STORE_DIR and talks to the backend directly.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/backend"
	"github.com/noah-isme/sma-console-gateway/internal/repository"
	"github.com/noah-isme/sma-console-gateway/internal/service"
	"github.com/noah-isme/sma-console-gateway/pkg/config"
	"github.com/noah-isme/sma-console-gateway/pkg/logger"
	"github.com/noah-isme/sma-console-gateway/pkg/storage"
)

var errUsage = errors.New("usage")

// app bundles what every subcommand needs.
type app struct {
	out      io.Writer
	session  *service.SessionManager
	policy   *service.AccessPolicy
	setups   *service.SetupService
	enroll   *service.EnrollmentService
	notes    *service.NotificationService
	exports  *service.ExportService
	logger   *zap.Logger
	commands map[string]command
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, logr, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "consolectl %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, logr *zap.Logger, out io.Writer) (*app, error) {
	local, err := storage.NewLocalStorage(cfg.Session.Dir)
	if err != nil {
		return nil, fmt.Errorf("open session dir: %w", err)
	}

	var session *service.SessionManager
	client := backend.New(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  logr.Named("backend"),
		OnUnauthorized: func(ctx context.Context) {
			if session == nil {
				return
			}
			if err := session.Logout(ctx); err != nil {
				logr.Warn("clear session after 401", zap.Error(err))
			}
		},
	})

	validate := validator.New()
	lookup := service.NewNameLookup()
	normalizer := service.NewNormalizer(lookup)

	session = service.NewSessionManager(
		service.NewAuthService(client, validate),
		repository.NewFileBlobRepository(local),
		cfg.Session.Key,
		logr.Named("session"),
	)
	session.OnLogout(func() {
		lookup.Invalidate()
	})

	classes := service.NewClassService(client, normalizer, validate, logr)
	catalog := service.NewCatalogService(client, normalizer, lookup, validate, logr)
	blobs, err := storage.NewLocalStorage(cfg.OverrideStore.Dir)
	if err != nil {
		return nil, fmt.Errorf("open override store dir: %w", err)
	}
	setups := service.NewSetupService(service.SetupServiceParams{
		Classes:   classes,
		Catalog:   catalog,
		Store:     service.NewOverrideStore(repository.NewFileBlobRepository(blobs), cfg.OverrideStore.Key, nil, logr),
		Mirror:    service.NewFirstOfferingMirror(classes),
		Validator: validate,
		Logger:    logr,
	})

	return &app{
		out:      out,
		session:  session,
		policy:   service.NewAccessPolicy(),
		setups:   setups,
		enroll:   service.NewEnrollmentService(setups, classes, service.NewInFlight(), logr),
		notes:    service.NewNotificationService(client, normalizer, nil, logr),
		exports:  service.NewExportService(setups, nil, nil, logr),
		logger:   logr,
		commands: commandTable(),
	}, nil
}

func (a *app) run(ctx context.Context, name string, args []string) error {
	cmd, ok := a.commands[name]
	if !ok {
		return errUsage
	}
	if _, err := a.session.Load(ctx); err != nil {
		return err
	}
	return cmd.run(ctx, a, args)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: consolectl <command> [flags]")
	fmt.Fprintln(w)
	table := commandTable()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %s\n", name, table[name].summary)
	}
}
