package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hrboard/client/credentials"
	"github.com/hrboard/client/internal/config"
	"github.com/hrboard/client/internal/infrastructure/statedb"
	"github.com/hrboard/client/pkg/logger"
	"github.com/hrboard/client/remote"
	"github.com/hrboard/client/remote/rest"
	"github.com/hrboard/client/store"
	"github.com/hrboard/client/store/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	remember := flag.Bool("remember", false, "remember this session")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "status"
	}

	snapshots, err := statedb.Open(cfg.State.Path)
	if err != nil {
		return fmt.Errorf("open state db: %w", err)
	}
	defer snapshots.Close()

	tokens := credentials.NewMemory()
	client := rest.NewClient(cfg.API.BaseURL, rest.Options{
		Tokens:  tokens,
		Timeout: cfg.API.Timeout,
		Logger:  zapLogger,
	})

	registry := store.NewRegistry(store.Deps{
		Auth:           rest.NewAuthClient(client),
		Tasks:          rest.NewTaskClient(client),
		Users:          rest.NewUserClient(client),
		Dashboard:      rest.NewDashboardClient(client),
		Profile:        rest.NewProfileClient(client),
		SessionPersist: snapshots,
		PrefsPersist:   snapshots,
		UIPersist:      snapshots,
		Tokens:         tokens,
		Logger:         zapLogger,
	})
	if err := registry.Restore(); err != nil {
		zapLogger.Warn("snapshot restore failed", zap.Error(err))
	}

	// Any 401 anywhere tears the session down and points the user at sign-in.
	client.OnUnauthorized(func() {
		registry.Auth.Invalidate()
		fmt.Fprintln(os.Stderr, "session expired, please sign in again")
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	switch command {
	case "status":
		return printStatus(registry)
	case "login":
		return login(ctx, registry, *email, *password, *remember)
	case "logout":
		registry.ClearAll()
		fmt.Println("signed out")
		return nil
	case "tasks":
		return listTasks(ctx, registry, *email, *password, *remember)
	default:
		return fmt.Errorf("unknown command %q (expected status, login, logout or tasks)", command)
	}
}

func printStatus(registry *store.Registry) error {
	session := registry.Auth.Session()
	if !session.IsAuthenticated {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("signed in as %s (%s)\n", session.User.Name, session.User.Role)
	for _, capability := range store.CapabilitiesFor(session.User.Role) {
		fmt.Printf("  store: %s\n", capability)
	}
	return nil
}

func login(ctx context.Context, registry *store.Registry, email, password string, remember bool) error {
	user, err := registry.Auth.Login(ctx, email, password, remember)
	if err != nil {
		return err
	}
	if err := registry.Initialize(ctx, user); err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func listTasks(ctx context.Context, registry *store.Registry, email, password string, remember bool) error {
	user, err := registry.Auth.Login(ctx, email, password, remember)
	if err != nil {
		return err
	}

	set := registry.StoresFor(user.Role)
	if set.Tasks == nil {
		return fmt.Errorf("role %q has no task store", user.Role)
	}

	switch set.Tasks.Variant() {
	case task.VariantAdmin:
		err = set.Tasks.FetchAll(ctx, remote.TaskQuery{})
	default:
		err = set.Tasks.FetchYours(ctx, remote.TaskQuery{})
	}
	if err != nil {
		return err
	}

	stats := set.Tasks.Stats()
	fmt.Printf("%d tasks (%d pending, %d in progress, %d completed)\n",
		stats.Total, stats.Pending, stats.InProgress, stats.Completed)
	for _, t := range set.Tasks.FilteredTasks() {
		fmt.Printf("  [%s] %s → %s\n", t.Status, t.Name, t.AssignedTo)
	}
	return nil
}
