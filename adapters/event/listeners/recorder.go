package listeners

import (
	"context"
	"sync"

	"github.com/SeaCloudHub/eventhandler/domain"
)

// Recorder keeps every set of arguments it was fired with.
type Recorder struct {
	name string

	mu    sync.Mutex
	calls []domain.Args
}

func NewRecorder(name string) *Recorder {
	return &Recorder{name: name}
}

func (r *Recorder) Name() string {
	return r.name
}

func (r *Recorder) EventHandler(ctx context.Context, args domain.Args) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, args)

	return nil
}

func (r *Recorder) Calls() []domain.Args {
	r.mu.Lock()
	defer r.mu.Unlock()

	calls := make([]domain.Args, len(r.calls))
	copy(calls, r.calls)

	return calls
}

func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.calls)
}
