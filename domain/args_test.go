package domain_test

import (
	"testing"

	"github.com/SeaCloudHub/eventhandler/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewArgs(t *testing.T) {
	t.Run("it should split positional and keyword arguments", func(t *testing.T) {
		args := domain.NewArgs(1, domain.Kw("extra", 0), 2, 3)

		assert.Equal(t, []any{1, 2, 3}, args.Positional)
		assert.Equal(t, map[string]any{"extra": 0}, args.Keyword)
		assert.Equal(t, 3, args.Len())
	})

	t.Run("it should keep the last keyword with the same name", func(t *testing.T) {
		args := domain.NewArgs(domain.Kw("a", 1), domain.Kw("a", 2))

		v, ok := args.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("it should report missing arguments", func(t *testing.T) {
		args := domain.NewArgs()

		_, ok := args.Arg(0)
		assert.False(t, ok)
		_, ok = args.Arg(-1)
		assert.False(t, ok)
		_, ok = args.Get("missing")
		assert.False(t, ok)
	})
}

func TestArgsClone(t *testing.T) {
	args := domain.NewArgs("a", domain.Kw("k", "v"))
	clone := args.Clone()

	clone.Positional[0] = "changed"
	clone.Keyword["k"] = "changed"

	assert.Equal(t, "a", args.Positional[0])
	assert.Equal(t, "v", args.Keyword["k"])
}
