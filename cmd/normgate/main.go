package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexanderramin/normgate/internal/analysis"
	"github.com/alexanderramin/normgate/internal/cli"
	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/db"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/normative"
	"github.com/alexanderramin/normgate/internal/repository"
	"github.com/alexanderramin/normgate/internal/service"
	"github.com/alexanderramin/normgate/internal/xstruct"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(build).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		stop()
		os.Exit(1)
	}
}

// build wires the application from configuration. Everything it opens is
// released by the returned cleanup.
func build(ctx context.Context, opts cli.Options) (*cli.App, func(), error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = os.Getenv("NORMGATE_CONFIG")
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.Log.Level, opts.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	cleanups := []func(){func() { _ = logger.Sync() }}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewZapObserver(logger)
	}
	gw, err := llm.NewGateway(ctx, cfg.LLM, logger, observer)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	agent, err := normative.NewNormativeAgent(cfg.Knowledge.HighestEndeavour, cfg.Knowledge.SystemEndeavours)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Debug("agent loaded", zap.Stringer("agent", agent))

	extractor := normative.NewPropositionExtractor(
		xstruct.NewExtractor(gw,
			xstruct.WithMaxAttempts(cfg.Extraction.MaxAttempts),
			xstruct.WithLogger(logger),
		),
		cfg.Extraction, logger)

	deps := service.AssessmentDeps{
		Gateway:    gw,
		Agent:      agent,
		Extractor:  extractor,
		Scorer:     analysis.NewConflictAnalyser(gw, cfg.Knowledge, logger),
		Intent:     analysis.NewUserIntent(gw, logger),
		Impact:     analysis.NewImpactAssessor(gw, logger),
		Diagnostic: analysis.NewSelfDiagnostic(gw, cfg.Knowledge, logger),
		Policy:     cfg.Analysis,
		Logger:     logger,
	}
	observers := []service.UseCaseObserver{service.NewZapUseCaseObserver(logger)}

	var repo repository.AssessmentRepo
	if cfg.Store.Enabled {
		path, err := cfg.StorePath()
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		database, err := db.OpenDB(path)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		cleanups = append(cleanups, func() { _ = database.Close() })
		deps.UoW = db.NewSQLiteUnitOfWork(database)
		repo = repository.NewSQLiteAssessmentRepo(database)
	}

	app := &cli.App{
		Assessments: service.NewAssessmentService(deps, observers...),
		History:     service.NewHistoryService(repo, observers...),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	return app, cleanup, nil
}

// newLogger writes JSON to stderr, or a console encoding in verbose mode.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
