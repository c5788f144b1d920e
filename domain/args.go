package domain

import (
	"maps"
	"slices"
)

// KeywordArg is a named argument passed to Fire. Use Kw to build one.
type KeywordArg struct {
	Name  string
	Value any
}

func Kw(name string, value any) KeywordArg {
	return KeywordArg{Name: name, Value: value}
}

// Args holds the positional and keyword arguments of a single firing.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// NewArgs splits values into keyword arguments (KeywordArg values) and
// positional ones, keeping the positional order. A later keyword wins over an
// earlier one with the same name.
func NewArgs(values ...any) Args {
	args := Args{Keyword: map[string]any{}}
	for _, v := range values {
		if kw, ok := v.(KeywordArg); ok {
			args.Keyword[kw.Name] = kw.Value
			continue
		}
		args.Positional = append(args.Positional, v)
	}

	return args
}

func (a Args) Len() int {
	return len(a.Positional)
}

func (a Args) Arg(i int) (any, bool) {
	if i < 0 || i >= len(a.Positional) {
		return nil, false
	}

	return a.Positional[i], true
}

func (a Args) Get(name string) (any, bool) {
	v, ok := a.Keyword[name]
	return v, ok
}

// Clone returns a shallow copy so one callback cannot reshape the arguments
// seen by the next.
func (a Args) Clone() Args {
	kw := maps.Clone(a.Keyword)
	if kw == nil {
		kw = map[string]any{}
	}

	return Args{
		Positional: slices.Clone(a.Positional),
		Keyword:    kw,
	}
}
