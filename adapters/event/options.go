package event

import (
	"io"

	"github.com/SeaCloudHub/eventhandler/domain"
	"github.com/SeaCloudHub/eventhandler/pkg/apperror"
	"github.com/SeaCloudHub/eventhandler/pkg/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Option func(r *Registry) error

func WithEvents(names ...string) Option {
	return func(r *Registry) error {
		for _, name := range names {
			r.registerEvent(name)
		}
		return nil
	}
}

func WithVerbose(verbose bool) Option {
	return func(r *Registry) error {
		r.verbose = verbose
		return nil
	}
}

func WithTolerateExceptions(tolerate bool) Option {
	return func(r *Registry) error {
		r.tolerate = tolerate
		return nil
	}
}

// WithOutput sets the sink diagnostics are written to. The registry never
// closes it.
func WithOutput(w io.Writer) Option {
	return func(r *Registry) error {
		if w == nil {
			return apperror.ErrInvalidOption(errors.New("output sink must not be nil"))
		}
		r.out = w
		return nil
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Registry) error {
		if logger == nil {
			return apperror.ErrInvalidOption(errors.New("logger must not be nil"))
		}
		r.logger = logger
		return nil
	}
}

func WithFailureReporter(report domain.FailureReporter) Option {
	return func(r *Registry) error {
		r.reporter = report
		return nil
	}
}

// ParseFromConfig maps the EVENTS_* settings onto registry options. out may
// be nil to keep the default sink.
func ParseFromConfig(c *config.Config, out io.Writer) []Option {
	opts := []Option{
		WithEvents(c.Events.Initial...),
		WithVerbose(c.Events.Verbose),
		WithTolerateExceptions(c.Events.TolerateExceptions),
	}
	if out != nil {
		opts = append(opts, WithOutput(out))
	}

	return opts
}
