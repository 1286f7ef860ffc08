package container

import (
	"fmt"

	"goregress/adapters/dataset"
	"goregress/adapters/estimator"
	"goregress/adapters/postgres"
	"goregress/app"
	"goregress/domain/regression"
	"goregress/internal"
	"goregress/internal/config"
	"goregress/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Log    *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	FieldRepo      ports.FieldRepository
	RegressionRepo ports.RegressionRepository
	FrameLoader    ports.FrameLoader

	// Pipeline components
	Enumerator ports.ModelEnumerator
	Runner     *regression.Runner

	// Services
	RegressionService *app.RegressionService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return &Container{
		Config: cfg,
		Log:    internal.NewDefaultLogger(),
	}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.FieldRepo = postgres.NewFieldRepository(db)
	c.RegressionRepo = postgres.NewRegressionRepository(db)
	c.FrameLoader = dataset.NewLoader(db)

	c.Enumerator = buildEnumerator(c.Config.Regression)
	c.Runner = regression.NewRunner(estimator.New(),
		c.Config.Regression.KeepResiduals, c.Config.Regression.MaxLogitIter)

	c.RegressionService = app.NewRegressionService(
		c.FieldRepo, c.FrameLoader, c.RegressionRepo, c.Enumerator, c.Runner, c.Log)

	c.Log.Info("container initialized with database connection")
	return nil
}

func buildEnumerator(cfg config.RegressionConfig) ports.ModelEnumerator {
	if cfg.Enumerator == "subsets" {
		return regression.AllSubsetsEnumerator{MaxVars: cfg.MaxSubsetVars}
	}
	return regression.FullModelEnumerator{}
}

// Close releases held resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
