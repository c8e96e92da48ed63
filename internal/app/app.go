// Package app implements the application layer for reinhard.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.trai.ch/reinhard/internal/adapters/linear"
	"go.trai.ch/reinhard/internal/adapters/telemetry"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	logger    ports.Logger
	settings  *domain.Settings
	locks     ports.LockStore
	resolver  ports.ReleaseResolver
	vcs       ports.Vcs
	forge     ports.ForgeFactory
	images    ports.ImageResolver
	generator ports.IndexGenerator
	indexes   ports.IndexStore
	workflows ports.WorkflowLoader
	executor  ports.Executor
	watcher   ports.Watcher
}

// New creates a new App instance.
func New(
	log ports.Logger,
	settings *domain.Settings,
	locks ports.LockStore,
	resolver ports.ReleaseResolver,
	vcs ports.Vcs,
	forge ports.ForgeFactory,
	images ports.ImageResolver,
	generator ports.IndexGenerator,
	indexes ports.IndexStore,
	workflows ports.WorkflowLoader,
	executor ports.Executor,
	watcher ports.Watcher,
) *App {
	return &App{
		logger:    log,
		settings:  settings,
		locks:     locks,
		resolver:  resolver,
		vcs:       vcs,
		forge:     forge,
		images:    images,
		generator: generator,
		indexes:   indexes,
		workflows: workflows,
		executor:  executor,
		watcher:   watcher,
	}
}

// Settings exposes the loaded project configuration.
func (a *App) Settings() *domain.Settings {
	return a.settings
}

// SetDebug lowers the log level to debug when the logger supports it.
func (a *App) SetDebug(enable bool) {
	leveler, ok := a.logger.(interface{ SetLevel(slog.Level) })
	if !ok {
		return
	}
	if enable {
		leveler.SetLevel(slog.LevelDebug)
		return
	}
	leveler.SetLevel(slog.LevelInfo)
}

// withPipeline runs fn against a tracer whose spans stream to the linear
// renderer. The renderer and fn run concurrently; the pipeline shuts down
// when fn returns.
func (a *App) withPipeline(ctx context.Context, fn func(ctx context.Context, tracer ports.Tracer) error) error {
	renderer := linear.NewRenderer(os.Stdout, os.Stderr)

	bridge := telemetry.NewBridge(renderer)
	telemetry.Setup(bridge)

	tracer := telemetry.NewOTelTracer("reinhard").WithRenderer(renderer)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "runner panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()
		return fn(ctx, tracer)
	})

	return g.Wait()
}
