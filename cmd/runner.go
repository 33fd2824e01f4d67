package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tunetype/internal/formatter"
	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/player"
	"github.com/desertthunder/tunetype/internal/repositories"
	"github.com/desertthunder/tunetype/internal/services"
	"github.com/desertthunder/tunetype/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	catalogErr error
	classifier services.Classifier
	lookup     services.PreviewLookup
	audio      player.AudioFactory
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	db         *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Services left nil are built from the configuration before the first command runs.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	Classifier services.Classifier
	Lookup     services.PreviewLookup
	Audio      player.AudioFactory
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		classifier: opts.Classifier,
		lookup:     opts.Lookup,
		audio:      opts.Audio,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		db:         opts.DB,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, artistCommand, previewCommand, playCommand, submitCommand, resultCommand,
		sessionsCommand, serveCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads .env and the config file, then builds any services that were not injected.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := shared.LoadEnv(cmd.String("env")); err != nil {
		r.logger.Warn("failed to load env file", "error", err)
	}
	if err := r.loadConfig(cmd.String("config")); err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(r.config.Logging.Level))

	r.initServices(ctx)
	return ctx, nil
}

// After releases the database, if one was opened.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

func (r *Runner) loadConfig(path string) error {
	if path != "" {
		r.configPath = path
	}

	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return err
		}
		r.config = config
	} else {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}

	r.config.ApplyEnv()
	return r.config.Validate()
}

func (r *Runner) initServices(ctx context.Context) {
	if r.httpClient == nil {
		r.httpClient = services.NewHTTPClient(r.config.BackendTimeout())
	}

	backend := services.NewBackendService(r.config.Backend.BaseURL, r.httpClient)
	if r.classifier == nil {
		r.classifier = backend
	}

	if r.catalog == nil {
		switch r.config.Catalog.Source {
		case shared.CatalogSpotify:
			catalog, err := services.NewSpotifyCatalog(ctx, services.SpotifyOptions{
				ClientID:     r.config.Credentials.Spotify.ClientID,
				ClientSecret: r.config.Credentials.Spotify.ClientSecret,
				Market:       r.config.Catalog.Market,
				Limit:        r.config.Catalog.SearchLimit,
			})
			if err != nil {
				r.catalogErr = err
			} else {
				r.catalog = catalog
			}
		default:
			r.catalog = backend
		}
	}

	if r.lookup == nil {
		r.lookup = services.NewITunesService(r.config.Preview.LookupURL, r.config.Preview.RequestsPerMinute, r.httpClient)
	}
}

func (r *Runner) requireCatalog() (services.Catalog, error) {
	if r.catalogErr != nil {
		return nil, r.catalogErr
	}
	if r.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	return r.catalog, nil
}

func (r *Runner) audioFactory(logger *log.Logger) player.AudioFactory {
	if r.audio != nil {
		return r.audio
	}
	return player.ProcessFactory(r.config.Preview.Player, r.config.Preview.PlayerArgs, logger)
}

// database opens and migrates the configured database on first use.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	db, err := shared.OpenAndMigrate(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db
	return db, nil
}

// newSession stores a fresh open session.
func (r *Runner) newSession(db *sql.DB) (*models.Session, error) {
	session := models.NewSession(0)
	if err := repositories.NewSessionRepository(db).Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	r.logger.Debug("session created", "id", session.ID(), "sequence", session.Sequence())
	return session, nil
}

// Close releases the database.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) outputFormat(cmd *cli.Command) (formatter.Format, error) {
	if cmd.Bool("json") {
		return formatter.JSON, nil
	}
	return formatter.ParseFormat(cmd.String("format"))
}

func (r *Runner) writeOutput(cmd *cli.Command, data []byte) error {
	return formatter.Write(r.output, cmd.String("output"), data)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
