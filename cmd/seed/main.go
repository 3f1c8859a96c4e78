// Package main seeds the database with a demo account and sample tasks.
// Running it more than once leaves the data unchanged.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pontetech/mission-control/internal/config"
	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/platform/logger"
	"github.com/pontetech/mission-control/internal/platform/postgres"
	"github.com/pontetech/mission-control/internal/service"
	"github.com/pontetech/mission-control/internal/service/auth"
	"github.com/pontetech/mission-control/internal/store"
)

// Demo account credentials.
const (
	seedEmail    = "leader@pontetech.com"
	seedPassword = "PonteTech123"
	seedFullName = "Leader Ponte"
	seedTasks    = 5
)

var seedDescriptions = []string{
	"Map stakeholders and agree on the launch window.",
	"Draft the rollout checklist and circulate it for review.",
	"Audit current dashboards and retire the unused ones.",
	"Pair with support to triage the open escalations.",
	"Prepare the quarterly review deck for leadership.",
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx := context.Background()
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	transactor := store.NewDBTransactor(db)
	users, err := service.NewUserService(
		postgres.NewPostgresUserStore(db, log),
		transactor,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		log,
	)
	if err != nil {
		return err
	}
	tasks, err := service.NewTaskService(postgres.NewPostgresTaskStore(db, log), transactor, log)
	if err != nil {
		return err
	}

	return seed(ctx, users, tasks, time.Now().UTC(), log)
}

// seed creates the demo user unless it exists and gives it the sample tasks
// unless it already has some.
func seed(
	ctx context.Context,
	users service.UserService,
	tasks service.TaskService,
	now time.Time,
	log *slog.Logger,
) error {
	user, err := users.GetUserByEmail(ctx, seedEmail)
	switch {
	case err == nil:
		log.Info("seed user already exists", slog.Int64("user_id", user.ID))
	case domain.IsKind(err, domain.ErrNotFound):
		user, err = users.CreateUser(ctx, seedEmail, seedFullName, seedPassword)
		if err != nil {
			return fmt.Errorf("failed to create seed user: %w", err)
		}
		log.Info("seed user created", slog.Int64("user_id", user.ID))
	default:
		return fmt.Errorf("failed to look up seed user: %w", err)
	}

	existing, err := tasks.ListTasks(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to list seed tasks: %w", err)
	}
	if len(existing) > 0 {
		log.Info("seed tasks already present", slog.Int("count", len(existing)))
		return nil
	}

	for _, draft := range seedDrafts(now) {
		if _, err := tasks.CreateTask(ctx, user, draft); err != nil {
			return fmt.Errorf("failed to create seed task %q: %w", draft.Title, err)
		}
	}
	log.Info("seed tasks created", slog.Int("count", seedTasks))
	return nil
}

// seedDrafts returns the sample tasks: the first three in the backlog, the
// rest in progress, priorities alternating high and medium, and due dates
// one to five days after now.
func seedDrafts(now time.Time) []domain.TaskDraft {
	drafts := make([]domain.TaskDraft, 0, seedTasks)
	for i := 0; i < seedTasks; i++ {
		status := domain.TaskStatusInProgress
		if i < 3 {
			status = domain.TaskStatusBacklog
		}
		priority := "medium"
		if i%2 == 0 {
			priority = "high"
		}
		description := seedDescriptions[i%len(seedDescriptions)]
		due := now.AddDate(0, 0, i+1)

		drafts = append(drafts, domain.TaskDraft{
			Title:       fmt.Sprintf("Initiative %d", i+1),
			Description: &description,
			Status:      status,
			Priority:    priority,
			DueDate:     &due,
		})
	}
	return drafts
}
