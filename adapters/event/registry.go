package event

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/SeaCloudHub/eventhandler/domain"
	"github.com/SeaCloudHub/eventhandler/pkg/apperror"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Registry maps event names to ordered lists of callbacks and fires them
// synchronously on the caller's goroutine.
type Registry struct {
	mu     sync.RWMutex
	events map[string][]*Callback
	order  []string

	verbose  bool
	tolerate bool

	outMu sync.Mutex
	out   io.Writer

	logger   *zap.SugaredLogger
	reporter domain.FailureReporter
}

var _ domain.EventRegistry = (*Registry)(nil)

// New builds an empty registry and applies options in order. Registering no
// events at all is allowed.
func New(options ...Option) (*Registry, error) {
	r := &Registry{
		events: make(map[string][]*Callback),
		out:    os.Stderr,
		logger: zap.NewNop().Sugar(),
	}

	for _, fn := range options {
		if err := fn(r); err != nil {
			return nil, err
		}
	}

	r.write(r.diagnose("Registry %p initialized with events [%s]", r, strings.Join(r.order, ", ")))

	return r, nil
}

func (r *Registry) RegisterEvent(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.registerEvent(name)
}

func (r *Registry) registerEvent(name string) bool {
	if _, ok := r.events[name]; ok {
		return false
	}

	r.events[name] = []*Callback{}
	r.order = append(r.order, name)

	return true
}

func (r *Registry) UnregisterEvent(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[name]; !ok {
		return false
	}

	delete(r.events, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })

	return true
}

func (r *Registry) IsEventRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.events[name]
	return ok
}

func (r *Registry) ClearEvents() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make(map[string][]*Callback)
	r.order = nil

	return true
}

func (r *Registry) CountEvents() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.events)
}

// EventList returns the registered event names in registration order.
func (r *Registry) EventList() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// Events returns a snapshot of every event and the names of its callbacks.
func (r *Registry) Events() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make(map[string][]string, len(r.events))
	for name, callbacks := range r.events {
		names := make([]string, 0, len(callbacks))
		for _, cb := range callbacks {
			names = append(names, cb.Name())
		}
		events[name] = names
	}

	return events
}

// Callbacks returns the callbacks bound to event, or nil if it is unknown.
func (r *Registry) Callbacks(event string) []*Callback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.events[event])
}

// Link appends callback to event. Linking to an unregistered event is the
// only hard error; non-callable values and duplicates return false.
func (r *Registry) Link(callback any, event string) (bool, error) {
	ok, note, err := r.link(callback, event)
	r.write(note)

	return ok, err
}

func (r *Registry) link(callback any, event string) (bool, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	callbacks, ok := r.events[event]
	if !ok {
		return false, "", apperror.ErrEventNotAllowed(event, r.order)
	}

	cb, ok := resolve(callback)
	if !ok {
		return false, r.diagnose("%s", notCallable(callback)), nil
	}

	if indexOf(callbacks, cb.key) >= 0 {
		return false, r.diagnose("Callback %s is already registered in %s event.", cb.Name(), event), nil
	}

	r.events[event] = append(callbacks, cb)
	r.logger.Debugw("callback linked", "event", event, "callback", cb.Name())

	return true, "", nil
}

// Unlink removes callback from event. It never fails loudly.
func (r *Registry) Unlink(callback any, event string) bool {
	ok, note := r.unlink(callback, event)
	r.write(note)

	return ok
}

func (r *Registry) unlink(callback any, event string) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	callbacks, ok := r.events[event]
	if !ok {
		return false, r.diagnose("Event %s is not registered. Registered events are: [%s]", event, strings.Join(r.order, ", "))
	}

	cb, ok := resolve(callback)
	if !ok {
		return false, ""
	}

	i := indexOf(callbacks, cb.key)
	if i < 0 {
		return false, ""
	}

	r.events[event] = slices.Delete(callbacks, i, i+1)
	r.logger.Debugw("callback unlinked", "event", event, "callback", cb.Name())

	return true, ""
}

func (r *Registry) IsCallbackInEvent(event string, callback any) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	callbacks, ok := r.events[event]
	if !ok {
		return false
	}

	cb, ok := resolve(callback)
	if !ok {
		return false
	}

	return indexOf(callbacks, cb.key) >= 0
}

// Fire runs every callback bound to event in link order, each with its own
// copy of args. It returns false without running anything when the event is
// unknown.
//
// Without toleration the first failure aborts the firing and is returned; a
// panic is left to unwind. With toleration failures (panics included) are
// reported and the remaining callbacks still run.
func (r *Registry) Fire(ctx context.Context, event string, args ...any) (bool, error) {
	r.mu.RLock()
	callbacks, ok := r.events[event]
	callbacks = slices.Clone(callbacks)
	tolerate := r.tolerate
	r.mu.RUnlock()

	if !ok {
		r.logger.Debugw("fire on unregistered event", "event", event)
		return false, nil
	}

	in := domain.NewArgs(args...)
	succeeded := true

	for _, cb := range callbacks {
		if !tolerate {
			if err := cb.Call(ctx, in.Clone()); err != nil {
				return false, apperror.ErrCallbackFailed(event, cb.Name(), err)
			}
			continue
		}

		if err := safeCall(ctx, cb, in.Clone()); err != nil {
			succeeded = false
			r.warn(ctx, event, cb, err)
		}
	}

	r.logger.Debugw("event fired", "event", event, "callbacks", len(callbacks), "succeeded", succeeded)

	return succeeded, nil
}

func safeCall(ctx context.Context, cb *Callback, args domain.Args) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Errorf("panic: %v", rec)
		}
	}()

	return cb.Call(ctx, args)
}

func (r *Registry) warn(ctx context.Context, event string, cb *Callback, err error) {
	r.mu.RLock()
	verbose, report := r.verbose, r.reporter
	r.mu.RUnlock()

	if verbose {
		r.write(fmt.Sprintf("WARNING: callback %s failed on event %s: %v", cb.Name(), event, err))
	}
	r.logger.Warnw("callback failed", "event", event, "callback", cb.Name(), "error", err)

	if report != nil {
		report(ctx, event, cb.Name(), apperror.ErrCallbackFailed(event, cb.Name(), err))
	}
}

func indexOf(callbacks []*Callback, key any) int {
	return slices.IndexFunc(callbacks, func(c *Callback) bool { return c.key == key })
}

func (r *Registry) SetVerbose(verbose bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verbose = verbose
}

func (r *Registry) Verbose() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.verbose
}

func (r *Registry) SetTolerateExceptions(tolerate bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tolerate = tolerate
}

func (r *Registry) TolerateExceptions() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tolerate
}

// SetOutput swaps the diagnostic sink. A nil writer is ignored.
func (r *Registry) SetOutput(w io.Writer) {
	if w == nil {
		return
	}

	r.outMu.Lock()
	defer r.outMu.Unlock()
	r.out = w
}

func (r *Registry) Output() io.Writer {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	return r.out
}

// diagnose formats a sink line when verbose, or returns "". Callers hold r.mu
// and hand the line to write once the lock is released, so a sink may read
// back into the registry.
func (r *Registry) diagnose(format string, args ...any) string {
	if !r.verbose {
		return ""
	}

	return fmt.Sprintf(format, args...)
}

func (r *Registry) write(line string) {
	if line == "" {
		return
	}

	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintln(r.out, line)
}

func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "<Registry %p verbose=%t tolerate_exceptions=%t events={", r, r.verbose, r.tolerate)
	for i, name := range r.order {
		if i > 0 {
			b.WriteString(", ")
		}

		names := make([]string, 0, len(r.events[name]))
		for _, cb := range r.events[name] {
			names = append(names, cb.Name())
		}
		fmt.Fprintf(&b, "%s: [%s]", name, strings.Join(names, ", "))
	}
	b.WriteString("}>")

	return b.String()
}

func (r *Registry) GoString() string {
	return r.String()
}
