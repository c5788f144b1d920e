// Package scenario loads YAML files that describe a registry session: which
// events to register, which listeners to bind and which events to fire.
package scenario

import (
	"context"
	"fmt"
	"os"

	"github.com/SeaCloudHub/eventhandler/adapters/event"
	"github.com/SeaCloudHub/eventhandler/adapters/event/listeners"
	"github.com/SeaCloudHub/eventhandler/domain"
	"github.com/SeaCloudHub/eventhandler/pkg/apperror"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	ListenerLog    = "log"
	ListenerRecord = "record"
	ListenerFail   = "fail"
)

var (
	conform  = modifiers.New()
	validate = validator.New()
)

type Scenario struct {
	Verbose            *bool     `yaml:"verbose"`
	TolerateExceptions *bool     `yaml:"tolerate_exceptions"`
	Events             []string  `yaml:"events" mod:"dive,trim" validate:"dive,required"`
	Bindings           []Binding `yaml:"bindings" mod:"dive" validate:"unique=Name,dive"`
	Fires              []Fire    `yaml:"fires" mod:"dive" validate:"dive"`
}

type Binding struct {
	Event    string `yaml:"event" mod:"trim" validate:"required"`
	Listener string `yaml:"listener" mod:"trim,lcase" validate:"required,oneof=log record fail"`
	Name     string `yaml:"name" mod:"trim"`
	Message  string `yaml:"message"`
}

type Fire struct {
	Event  string         `yaml:"event" mod:"trim" validate:"required"`
	Args   []any          `yaml:"args"`
	Kwargs map[string]any `yaml:"kwargs"`
}

type FireResult struct {
	Event string
	OK    bool
}

type Report struct {
	Fired     []FireResult
	Recorders map[string]*listeners.Recorder
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}

	return Parse(data)
}

// Parse decodes, normalises and validates a scenario. Unnamed bindings are
// named <listener>-<position>; binding names must be unique.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperror.ErrInvalidScenario(err)
	}

	if err := conform.Struct(context.Background(), &s); err != nil {
		return nil, apperror.ErrInvalidScenario(err)
	}

	for i := range s.Bindings {
		if s.Bindings[i].Name == "" {
			s.Bindings[i].Name = fmt.Sprintf("%s-%d", s.Bindings[i].Listener, i+1)
		}
	}

	if err := validate.Struct(&s); err != nil {
		return nil, apperror.ErrInvalidScenario(err)
	}

	return &s, nil
}

// Options returns the registry settings the scenario overrides.
func (s *Scenario) Options() []event.Option {
	var opts []event.Option
	if s.Verbose != nil {
		opts = append(opts, event.WithVerbose(*s.Verbose))
	}
	if s.TolerateExceptions != nil {
		opts = append(opts, event.WithTolerateExceptions(*s.TolerateExceptions))
	}

	return opts
}

// Run registers, binds and fires in that order. It stops at the first error
// and returns what was fired so far.
func (s *Scenario) Run(ctx context.Context, registry domain.EventRegistry, logger *zap.SugaredLogger) (*Report, error) {
	report := &Report{Recorders: map[string]*listeners.Recorder{}}

	for _, name := range s.Events {
		if !registry.RegisterEvent(name) {
			logger.Debugw("event already registered", "event", name)
		}
	}

	for i, b := range s.Bindings {
		listener := s.listener(b, logger, report)

		ok, err := registry.Link(listener, b.Event)
		if err != nil {
			return report, errors.Wrapf(err, "binding %d", i+1)
		}
		if !ok {
			logger.Warnw("listener not linked", "event", b.Event, "listener", listener.Name())
		}
	}

	for _, f := range s.Fires {
		args := append([]any{}, f.Args...)
		for name, value := range f.Kwargs {
			args = append(args, domain.Kw(name, value))
		}

		ok, err := registry.Fire(ctx, f.Event, args...)
		report.Fired = append(report.Fired, FireResult{Event: f.Event, OK: ok})
		if err != nil {
			return report, errors.Wrapf(err, "fire %s", f.Event)
		}
	}

	return report, nil
}

func (s *Scenario) listener(b Binding, logger *zap.SugaredLogger, report *Report) listeners.EventListener {
	name := b.Name

	switch b.Listener {
	case ListenerLog:
		return listeners.NewLogListener(name, logger)
	case ListenerFail:
		return listeners.NewFailingListener(name, b.Message)
	default:
		rec := listeners.NewRecorder(name)
		report.Recorders[name] = rec
		return rec
	}
}
