package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	ledgerinadapter "ascent/internal/modules/ledger/adapter/in"
	ledgeroutadapter "ascent/internal/modules/ledger/adapter/out"
	ledgerservice "ascent/internal/modules/ledger/service"
	ledgerusecase "ascent/internal/modules/ledger/usecase"
	logbookoutadapter "ascent/internal/modules/logbook/adapter/out"
	logbookdomain "ascent/internal/modules/logbook/domain"
	logbookout "ascent/internal/modules/logbook/port/out"
	logbookservice "ascent/internal/modules/logbook/service"
	ringinadapter "ascent/internal/modules/ring/adapter/in"
	ringdomain "ascent/internal/modules/ring/domain"
	ringusecase "ascent/internal/modules/ring/usecase"
	rollupinadapter "ascent/internal/modules/rollup/adapter/in"
	rollupoutadapter "ascent/internal/modules/rollup/adapter/out"
	rollupservice "ascent/internal/modules/rollup/service"
	rollupusecase "ascent/internal/modules/rollup/usecase"
	sessioninadapter "ascent/internal/modules/session/adapter/in"
	sessionoutadapter "ascent/internal/modules/session/adapter/out"
	sessiondomain "ascent/internal/modules/session/domain"
	sessionservice "ascent/internal/modules/session/service"
	sessionusecase "ascent/internal/modules/session/usecase"
	"ascent/internal/platform/clock"
	"ascent/internal/platform/config"
	"ascent/internal/platform/id"
	"ascent/internal/platform/sqlitedb"
	uiapp "ascent/internal/ui/app"
)

type App struct {
	Config     config.Config
	LedgerCLI  ledgerinadapter.CLIHandler
	RingCLI    ringinadapter.CLIHandler
	RollupCLI  rollupinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler

	logger *slog.Logger
	db     *sql.DB
}

// New wires the logbook. The saved book is loaded before New returns; a
// load failure only warns and leaves the book empty.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	policy, err := sessiondomain.ParsePolicy(cfg.SessionPolicy)
	if err != nil {
		return nil, fmt.Errorf("session policy: %w", err)
	}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store, err := newKVStore(cfg, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	book := logbookdomain.NewBook(ids)
	persistence := logbookservice.NewPersistenceService(book, store, logger.With("component", "persistence"))
	if err := persistence.Hydrate(ctx); err != nil {
		logger.Warn("logbook starts empty", "storage", cfg.Storage, "error", err)
	}

	projector, err := ledgeroutadapter.NewSQLiteLogProjector(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new log projector: %w", err)
	}
	ledgerUC := ledgerusecase.NewInteractor(ledgerservice.NewLedgerService(
		book.Ledger,
		persistence,
		projector,
		logger.With("component", "ledger"),
	))

	goals := ringdomain.Goals{Boulder: cfg.Goals.Boulder, Rope: cfg.Goals.Rope}
	ringUC := ringusecase.NewInteractor(ledgerUC, goals)

	rollupUC := rollupusecase.NewInteractor(
		rollupservice.NewRollupService(
			rollupoutadapter.NewVaultPlanProvider(cfg.VaultPath),
			rollupoutadapter.NewVaultWeekNote(cfg.VaultPath),
			logger.With("component", "rollup"),
		),
		ledgerUC,
		goals,
	)

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		book.Sessions,
		clk,
		policy,
		persistence,
		sessionoutadapter.NewVaultSessionJournal(cfg.VaultPath),
		logger.With("component", "session"),
	))

	return &App{
		Config:     cfg,
		LedgerCLI:  ledgerinadapter.NewCLIHandler(ledgerUC),
		RingCLI:    ringinadapter.NewCLIHandler(ringUC),
		RollupCLI:  rollupinadapter.NewCLIHandler(rollupUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		logger:     logger,
		db:         db,
	}, nil
}

func newKVStore(cfg config.Config, db *sql.DB) (logbookout.KVStore, error) {
	switch cfg.Storage {
	case config.StorageFile:
		return logbookoutadapter.NewFileKVStore(cfg.KVDir), nil
	case config.StorageSQLite, "":
		store, err := logbookoutadapter.NewSQLiteKVStore(db)
		if err != nil {
			return nil, fmt.Errorf("new kv store: %w", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unsupported storage %q", cfg.Storage)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// RunTUI runs the full-screen app until the user quits. Plan notes are
// watched so the month view follows edits made in the vault.
func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := uiapp.Options{
		Goals: map[string]int{
			"boulder": app.Config.Goals.Boulder,
			"rope":    app.Config.Goals.Rope,
		},
		WeekStartsOn: app.Config.WeekStartsOn,
	}

	watcher, err := rollupinadapter.NewPlanWatcher(filepath.Join(app.Config.VaultPath, rollupoutadapter.PlansDir), 0, app.logger.With("component", "plan-watcher"))
	if err != nil {
		app.logger.Warn("plan watcher unavailable", "error", err)
	} else if err := watcher.Start(ctx); err != nil {
		app.logger.Warn("plan watcher unavailable", "error", err)
		_ = watcher.Stop()
	} else {
		defer func() { _ = watcher.Stop() }()
		opts.PlanChanges = watcher.Events()
	}

	model := uiapp.NewModel(app.LedgerCLI, app.RingCLI, app.RollupCLI, app.SessionCLI, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
