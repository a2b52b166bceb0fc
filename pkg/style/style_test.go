package style

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipware/clip"
)

func TestUnavailable(t *testing.T) {
	t.Parallel()

	s := Unavailable()
	assert.Equal(t, "title", s.Heading("title"))
	assert.Equal(t, "oops", s.Error("oops"))
	assert.Equal(t, "ok", s.Success("ok"))
	assert.Equal(t, "dim", s.Muted("dim"))
	assert.Equal(t, "em", s.Emphasis("em"))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	assert.IsType(t, unavailable{}, Resolve(false))
	assert.IsType(t, renderer{}, Resolve(true))
}

func TestPlugin(t *testing.T) {
	t.Parallel()

	t.Run("attaches the resolved styler", func(t *testing.T) {
		t.Parallel()
		var got Styler
		app := clip.New("tool", "1.0.0")
		app.AddPlugin(&Plugin{Enabled: false})
		app.Command("noop").Action(func(ctx context.Context, c *clip.Context) error {
			got = FromContext(c)
			return nil
		})

		err := app.Run(context.Background(), []string{"noop"}, &clip.RunOptions{Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.IsType(t, unavailable{}, got)
	})
	t.Run("missing plugin falls back to the no-op variant", func(t *testing.T) {
		t.Parallel()
		c := &clip.Context{}
		assert.IsType(t, unavailable{}, FromContext(c))
	})
}
