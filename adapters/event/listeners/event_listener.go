package listeners

import "github.com/SeaCloudHub/eventhandler/domain"

// EventListener is a domain.Listener that reports its own name in
// diagnostics and in the registry's string form.
type EventListener interface {
	domain.Listener
	Name() string
}

var (
	_ EventListener = (*LogListener)(nil)
	_ EventListener = (*Recorder)(nil)
	_ EventListener = (*FailingListener)(nil)
)
