package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	goalinadapter "momentum/internal/modules/goal/adapter/in"
	goaloutadapter "momentum/internal/modules/goal/adapter/out"
	goalout "momentum/internal/modules/goal/port/out"
	goalservice "momentum/internal/modules/goal/service"
	goalusecase "momentum/internal/modules/goal/usecase"
	progressinadapter "momentum/internal/modules/progress/adapter/in"
	progressoutadapter "momentum/internal/modules/progress/adapter/out"
	progressservice "momentum/internal/modules/progress/service"
	progressusecase "momentum/internal/modules/progress/usecase"
	sessioninadapter "momentum/internal/modules/session/adapter/in"
	sessionoutadapter "momentum/internal/modules/session/adapter/out"
	sessionout "momentum/internal/modules/session/port/out"
	sessionservice "momentum/internal/modules/session/service"
	sessionusecase "momentum/internal/modules/session/usecase"
	"momentum/internal/platform/clock"
	"momentum/internal/platform/config"
	"momentum/internal/platform/logger"
	"momentum/internal/platform/sqlitedb"
	uiapp "momentum/internal/ui/app"
	progressview "momentum/internal/ui/views/progress"
)

// DefaultSelection is plotted when no categories are requested.
var DefaultSelection = []string{"Climbing2", "Running2", "Strength2"}

type App struct {
	SessionCLI  sessioninadapter.CLIHandler
	GoalCLI     goalinadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler
	Catalog     config.Catalog
	Config      config.Config
	Log         *zap.Logger

	db *sql.DB
}

type stores struct {
	sessions sessionout.SessionStore
	goals    goalout.GoalStore
	writer   goalout.GoalWriter
	files    goalout.GoalFileReader
	db       *sql.DB
}

func New(cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	st, err := openStores(cfg)
	if err != nil {
		return nil, err
	}
	if err := st.check(context.Background()); err != nil {
		if st.db != nil {
			_ = st.db.Close()
		}
		return nil, err
	}
	log.Debug("stores opened", zap.String("store", cfg.Store), zap.String("data_dir", cfg.DataDir))

	clk := clock.SystemClock{}

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(st.sessions, catalog, log.Named("session")),
	)
	goalUC := goalusecase.NewInteractor(goalservice.NewGoalService(
		clk,
		st.goals,
		goaloutadapter.NewSessionRecordSource(sessionUC),
		st.writer,
		st.files,
		log.Named("goal"),
	))
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		clk,
		progressoutadapter.NewSessionPointSource(sessionUC),
		progressoutadapter.NewGoalPointSource(goalUC),
		cfg.ReportStart,
		catalog.YearlyTargets(),
		log.Named("progress"),
	))

	return &App{
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		GoalCLI:     goalinadapter.NewCLIHandler(goalUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		Catalog:     catalog,
		Config:      cfg,
		Log:         log,
		db:          st.db,
	}, nil
}

func openStores(cfg config.Config) (stores, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlitedb.Open(cfg.DBPath)
		if err != nil {
			return stores{}, err
		}
		goals := goaloutadapter.NewSQLiteGoalStore(db)
		return stores{
			sessions: sessionoutadapter.NewSQLiteSessionStore(db),
			goals:    goals,
			writer:   goals,
			files:    goaloutadapter.CSVGoalFiles{},
			db:       db,
		}, nil
	case config.StoreVault:
		return stores{
			sessions: sessionoutadapter.NewVaultSessionStore(cfg.DataDir),
			goals:    goaloutadapter.NewCSVGoalStore(cfg.GoalsPath),
		}, nil
	case config.StoreCSV, "":
		return stores{
			sessions: sessionoutadapter.NewCSVSessionStore(cfg.SessionsPath),
			goals:    goaloutadapter.NewCSVGoalStore(cfg.GoalsPath),
		}, nil
	}
	return stores{}, fmt.Errorf("unknown store %q", cfg.Store)
}

// check reads both stores once so a missing goal file or a corrupt session log
// stops startup instead of surfacing in the first command.
func (st stores) check(ctx context.Context) error {
	if _, err := st.sessions.List(ctx); err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	if _, err := st.goals.List(ctx); err != nil {
		return fmt.Errorf("load goals: %w", err)
	}
	return nil
}

// Close releases the database handle, if any, and flushes the logger.
func (a *App) Close() error {
	_ = a.Log.Sync()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Options lists the catalog selectors for the progress picker.
func (a *App) Options() []progressview.Option {
	sels := a.Catalog.Selectors()
	out := make([]progressview.Option, 0, len(sels))
	for _, sel := range sels {
		out = append(out, progressview.Option{Selector: sel.String(), Label: a.Catalog.Label(sel)})
	}
	return out
}

func RunDashboard(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.GoalCLI, app.ProgressCLI, app.Options(), DefaultSelection)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
