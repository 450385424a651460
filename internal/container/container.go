package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"godilemma/adapters/precedentdb"
	"godilemma/app"
	"godilemma/internal/confidence"
	"godilemma/internal/config"
	"godilemma/internal/conflict"
	"godilemma/internal/contextual"
	"godilemma/internal/framework"
	"godilemma/internal/logging"
	"godilemma/internal/precedent"
	"godilemma/internal/resolution"
	"godilemma/internal/semantic"
	"godilemma/internal/sensitivity"
	"godilemma/internal/strategy"
	"godilemma/internal/validation"
	"godilemma/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *sqlx.DB
	PrecedentStore *precedentdb.Store

	// Collaborators
	Finder       ports.PrecedentFinder
	Standardizer *validation.Standardizer

	// Pipeline
	Evaluator   *framework.Evaluator
	Analyzer    *sensitivity.Analyzer
	Detector    *conflict.Detector
	Selector    *strategy.Selector
	Engine      *resolution.Engine
	Synthesizer *confidence.Synthesizer

	EvaluationService *app.EvaluationService
}

// New creates a container backed by the built-in precedent set.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Finder: precedent.NewStaticStore(cfg.Precedent.TopK, cfg.Precedent.ScanBudget),
	}
	c.initPipeline()
	return c, nil
}

// AttachDatabase opens the precedent database at dsn and attaches it with
// InitWithDatabase.
func (c *Container) AttachDatabase(ctx context.Context, dsn string) error {
	db, err := precedentdb.Open(dsn)
	if err != nil {
		return err
	}
	return c.InitWithDatabase(ctx, db)
}

// InitWithDatabase switches precedent lookups to the SQL store on db and
// rebuilds the pipeline around it. The table is created and seeded with the
// built-in cases when empty. The container owns db from here on: it is closed
// right away when attaching fails and by Close otherwise.
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := c.attach(ctx, db); err != nil {
		db.Close()
		return err
	}
	return nil
}

func (c *Container) attach(ctx context.Context, db *sqlx.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	store := precedentdb.NewStore(db, c.Config.Precedent.TopK, c.Config.Precedent.ScanBudget)
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	n, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count precedent cases: %w", err)
	}
	seeded := n == 0
	if seeded {
		if err := store.Seed(ctx, precedent.StaticCases()); err != nil {
			return err
		}
	}

	c.DB = db
	c.PrecedentStore = store
	c.Finder = store
	c.initPipeline()

	logging.New("container").Info("precedent database attached", "seeded", seeded)
	return nil
}

// initPipeline wires the engines from configuration
func (c *Container) initPipeline() {
	cfg := c.Config
	reader := contextual.NewReader()

	c.Evaluator = framework.NewEvaluator()
	c.Standardizer = validation.NewStandardizer(c.Evaluator, logging.New("validation"))
	c.Analyzer = sensitivity.NewAnalyzer(c.Evaluator, cfg.Engine, logging.New("sensitivity"))
	c.Detector = conflict.NewDetector(semantic.NewKeywordClassifier(), logging.New("conflict"))
	c.Selector = strategy.NewSelector(reader, logging.New("strategy"))

	guard := precedent.NewGuard(c.Finder, cfg.Precedent, logging.New("precedent"))
	c.Engine = resolution.NewEngine(reader, semantic.NewTagger(), guard, cfg.Engine, logging.New("resolution"))
	c.Synthesizer = confidence.NewSynthesizer(logging.New("confidence"))

	c.EvaluationService = app.NewEvaluationService(app.Stages{
		Standardizer: c.Standardizer,
		Evaluator:    c.Evaluator,
		Analyzer:     c.Analyzer,
		Detector:     c.Detector,
		Selector:     c.Selector,
		Engine:       c.Engine,
		Synthesizer:  c.Synthesizer,
	}, cfg.Engine.Workers, logging.New("pipeline"))
}

// Logger returns a component logger
func (c *Container) Logger(component string) *slog.Logger {
	return logging.New(component)
}

// Close releases infrastructure resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
