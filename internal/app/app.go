package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mfonda/keytrigger/internal/config"
	"github.com/mfonda/keytrigger/internal/input"
	"github.com/mfonda/keytrigger/internal/input/gamepad"
	"github.com/mfonda/keytrigger/internal/input/terminal"
	"github.com/mfonda/keytrigger/internal/macro"
	"github.com/mfonda/keytrigger/internal/notify"
)

// defaultEventBuffer sizes the channel between sources and the dispatcher.
const defaultEventBuffer = 64

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means search
	// the working directory, then the executable's directory.
	ConfigPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Gamepad enables the SDL controller source.
	Gamepad bool

	// Injector performs the key injection. Nil selects the logging
	// injector, which records strokes without touching the OS.
	Injector macro.Injector

	// Sources overrides the input sources. Nil selects the terminal
	// keyboard source, plus the controller source when Gamepad is set.
	Sources []input.Source

	// FS overrides the file system used to load configuration.
	FS config.FileSystem
}

// Application wires the registry, interpreter, dispatcher and input
// sources together.
type Application struct {
	logger     *Logger
	hub        *notify.Hub
	registry   *macro.Registry
	dispatcher *macro.Dispatcher
	sources    []input.Source
	logSub     *notify.Subscription
}

// New loads configuration and assembles the application.
func New(opts Options) (*Application, error) {
	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(opts.LogLevel),
		Output: nil,
		Prefix: "keytrigger",
	})

	loader := config.NewLoader(opts.FS)
	path, err := loader.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	doc, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	bindings, rejected := config.Build(doc)

	hub := notify.NewAsyncHub(defaultEventBuffer)
	logSub := subscribeLogging(hub, logger)

	for _, verr := range rejected {
		hub.Publish(notify.Event{
			Kind:   notify.KindBindingDropped,
			Detail: verr.Error(),
			Err:    verr.Unwrap(),
		})
	}

	registry := macro.BuildRegistry(bindings, hub)
	logger.Info("loaded %d bindings from %s", registry.Len(), path)

	inj := opts.Injector
	if inj == nil {
		inj = NewLogInjector(logger)
	}
	interp := macro.NewInterpreter(inj,
		macro.WithHub(hub),
		macro.WithResolver(newDelayResolver(logger)),
	)
	dispatcher := macro.NewDispatcher(registry, interp, hub)

	sources := opts.Sources
	if sources == nil {
		keyboard, err := terminal.NewSource()
		if err != nil {
			hub.Close()
			return nil, fmt.Errorf("keyboard source: %w", err)
		}
		sources = []input.Source{keyboard}
		if opts.Gamepad {
			sources = append(sources, gamepad.NewSource())
		}
	}

	return &Application{
		logger:     logger,
		hub:        hub,
		registry:   registry,
		dispatcher: dispatcher,
		sources:    sources,
		logSub:     logSub,
	}, nil
}

// newDelayResolver builds the delay resolver with its degrade path logged:
// an inverted range that slipped past load-time validation resolves to its
// lower bound, and the gap is reported instead of silently absorbed.
func newDelayResolver(logger *Logger) *macro.Resolver {
	r := macro.NewResolver()
	log := logger.WithComponent("delays")
	r.OnInvalid(func(spec macro.DelaySpec) {
		log.Warn("invalid delay range [%v, %v], using %v", spec.Min, spec.Max, spec.Min)
	})
	return r
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger { return app.logger }

// Registry returns the loaded trigger registry.
func (app *Application) Registry() *macro.Registry { return app.registry }

// Run starts the input sources and the dispatcher and blocks until ctx is
// cancelled or a source fails.
func (app *Application) Run(ctx context.Context) error {
	defer app.hub.Close()
	defer app.logSub.Unsubscribe()

	events := make(chan input.Event, defaultEventBuffer)

	g, ctx := errgroup.WithContext(ctx)
	for _, src := range app.sources {
		g.Go(func() error {
			app.logger.Info("source %s started", src.Name())
			err := src.Run(ctx, events)
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("source %s: %w", src.Name(), err)
			}
			return nil
		})
	}
	g.Go(func() error {
		err := app.dispatcher.Run(ctx, events)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	return g.Wait()
}
