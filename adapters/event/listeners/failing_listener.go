package listeners

import (
	"context"

	"github.com/SeaCloudHub/eventhandler/domain"
	"github.com/pkg/errors"
)

// FailingListener fails every time it is fired. Scenarios use it to exercise
// exception toleration.
type FailingListener struct {
	name string
	err  error
}

func NewFailingListener(name, message string) *FailingListener {
	if message == "" {
		message = "listener " + name + " failed"
	}

	return &FailingListener{name: name, err: errors.New(message)}
}

func (l *FailingListener) Name() string {
	return l.name
}

func (l *FailingListener) EventHandler(ctx context.Context, args domain.Args) error {
	return l.err
}
