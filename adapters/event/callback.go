package event

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unsafe"

	"github.com/SeaCloudHub/eventhandler/domain"
)

// Callback is a named handle around a domain.Func. Two handles are the same
// callback only if they are the same pointer.
type Callback struct {
	name string
	fn   domain.Func
	key  any
}

// NewCallback wraps fn under name. Use it for method values, which cannot be
// linked bare, or when a func needs a readable name in diagnostics.
func NewCallback(name string, fn domain.Func) *Callback {
	c := &Callback{name: name, fn: fn}
	c.key = c

	return c
}

func (c *Callback) Name() string {
	return c.name
}

func (c *Callback) String() string {
	return c.name
}

func (c *Callback) Call(ctx context.Context, args domain.Args) error {
	return c.fn(ctx, args)
}

// funcKey identifies a bare func by its func value (the closure record) and
// code pointer. Top-level funcs and literals that capture nothing share one
// static record; closures get one record per creation, so Unlink needs the
// same value that was linked.
type funcKey struct {
	code    uintptr
	closure unsafe.Pointer
}

// IsCallable reports whether v can be linked to an event: a *Callback, a
// domain.Func (or a func literal of the same shape) or a comparable
// domain.Listener. Method values such as obj.Handle are not callable since
// every receiver shares one code pointer; bind obj as a Listener or wrap it
// with NewCallback.
func IsCallable(v any) bool {
	_, ok := resolve(v)
	return ok
}

func resolve(v any) (*Callback, bool) {
	switch cb := v.(type) {
	case nil:
		return nil, false
	case *Callback:
		if cb == nil || cb.fn == nil {
			return nil, false
		}
		return cb, true
	case domain.Func:
		return fromFunc(cb)
	case func(context.Context, domain.Args) error:
		return fromFunc(cb)
	case domain.Listener:
		return fromListener(cb)
	}

	return nil, false
}

func fromFunc(fn domain.Func) (*Callback, bool) {
	if fn == nil {
		return nil, false
	}

	pc := reflect.ValueOf(fn).Pointer()
	name := funcName(pc)
	if strings.HasSuffix(name, "-fm") {
		return nil, false
	}

	key := funcKey{code: pc, closure: *(*unsafe.Pointer)(unsafe.Pointer(&fn))}

	return &Callback{name: name, fn: fn, key: key}, true
}

func fromListener(l domain.Listener) (*Callback, bool) {
	t := reflect.TypeOf(l)
	if !t.Comparable() {
		return nil, false
	}

	v := reflect.ValueOf(l)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}

	return &Callback{name: listenerName(l), fn: l.EventHandler, key: l}, true
}

func funcName(pc uintptr) string {
	f := runtime.FuncForPC(pc)
	if f == nil {
		return fmt.Sprintf("func@%#x", pc)
	}

	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return name
}

func listenerName(l domain.Listener) string {
	if named, ok := l.(interface{ Name() string }); ok {
		return named.Name()
	}

	return fmt.Sprintf("%T", l)
}

func notCallable(v any) string {
	var fn domain.Func
	switch f := v.(type) {
	case domain.Func:
		fn = f
	case func(context.Context, domain.Args) error:
		fn = f
	}

	if fn != nil {
		if name := funcName(reflect.ValueOf(fn).Pointer()); strings.HasSuffix(name, "-fm") {
			return fmt.Sprintf("Callback not registered. %s is a method value, link its receiver as a Listener or wrap it with NewCallback.", name)
		}
	}

	return fmt.Sprintf("Callback not registered. Type %T is not a callable function.", v)
}
