package listeners

import (
	"context"

	"github.com/SeaCloudHub/eventhandler/domain"
	"go.uber.org/zap"
)

type LogListener struct {
	name   string
	logger *zap.SugaredLogger
}

func NewLogListener(name string, logger *zap.SugaredLogger) *LogListener {
	return &LogListener{name: name, logger: logger}
}

func (l *LogListener) Name() string {
	return l.name
}

func (l *LogListener) EventHandler(ctx context.Context, args domain.Args) error {
	l.logger.Infow("event received",
		"listener", l.name,
		"args", args.Positional,
		"kwargs", args.Keyword,
	)

	return nil
}
