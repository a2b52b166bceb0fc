package clip

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuildApp(ran *bool, port *float64) *App {
	app := New("tool", "2.1.0").Describe("tool builds things")
	app.Command("build").
		Describe("compile the project").
		Alias("b").
		AddOption(&Option{Name: "port", Short: "p", Type: NumberType, Default: float64(3000), Description: "dev server port"}).
		Action(func(ctx context.Context, c *Context) error {
			*ran = true
			*port = GetOption[float64](c, "port")
			return nil
		})
	return app
}

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("typed option binding with default", func(t *testing.T) {
		t.Parallel()
		var (
			ran  bool
			port float64
		)
		app := newBuildApp(&ran, &port)

		err := app.Run(context.Background(), []string{"build", "--port", "8080"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.Equal(t, float64(8080), port)

		ran, port = false, 0
		err = app.Run(context.Background(), []string{"build"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.Equal(t, float64(3000), port, "default applies when nothing was supplied")
	})
	t.Run("alias resolves the same command", func(t *testing.T) {
		t.Parallel()
		var (
			ran  bool
			port float64
		)
		app := newBuildApp(&ran, &port)
		err := app.Run(context.Background(), []string{"b", "--port=9090"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.Equal(t, float64(9090), port)
	})
	t.Run("unknown command with suggestion", func(t *testing.T) {
		t.Parallel()
		var (
			ran  bool
			port float64
		)
		app := newBuildApp(&ran, &port)
		err := app.Run(context.Background(), []string{"bulid"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.Error(t, err)
		var unknown *UnknownCommandError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "build", unknown.Suggestion)
		assert.False(t, ran)
		assert.Equal(t, 1, ExitCode(err))
	})
	t.Run("positional arguments bind by name", func(t *testing.T) {
		t.Parallel()
		var source string
		app := New("tool", "2.1.0")
		app.Command("copy").
			AddArgument(&Argument{Name: "source", Required: true}).
			AddArgument(&Argument{Name: "dest", Default: "."}).
			Action(func(ctx context.Context, c *Context) error {
				source = GetArg[string](c, "source")
				assert.Equal(t, ".", GetArg[string](c, "dest"))
				return nil
			})
		err := app.Run(context.Background(), []string{"copy", "a.txt"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.Equal(t, "a.txt", source)
	})
	t.Run("ancestor options are visible to subcommands", func(t *testing.T) {
		t.Parallel()
		var verbose bool
		app := New("tool", "2.1.0")
		app.Root().AddOption(&Option{Name: "verbose", Short: "v", Type: BooleanType})
		app.Command("build").Action(func(ctx context.Context, c *Context) error {
			verbose = GetOption[bool](c, "verbose")
			return nil
		})
		err := app.Run(context.Background(), []string{"build", "--verbose"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.True(t, verbose)
	})
}

func TestRunValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing required argument blocks the action", func(t *testing.T) {
		t.Parallel()
		ran := false
		app := New("tool", "2.1.0")
		app.Command("copy").
			AddArgument(&Argument{Name: "source", Required: true}).
			Action(func(ctx context.Context, c *Context) error {
				ran = true
				return nil
			})

		err := app.Run(context.Background(), []string{"copy"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.Error(t, err)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, err.Error(), `missing required argument "source"`)
		assert.False(t, ran, "the action must never run on a validation failure")
		assert.Equal(t, 1, ExitCode(err))
	})
	t.Run("choice violation", func(t *testing.T) {
		t.Parallel()
		app := New("tool", "2.1.0")
		app.Command("grant").
			AddOption(&Option{Name: "role", Choices: []string{"admin", "user", "guest"}}).
			Action(func(ctx context.Context, c *Context) error { return nil })

		err := app.Run(context.Background(), []string{"grant", "--role=nobody"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.Error(t, err)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, err.Error(), `invalid value "nobody" for "role"`)
	})
	t.Run("aggregate reports one message per line", func(t *testing.T) {
		t.Parallel()
		app := New("tool", "2.1.0")
		app.Command("copy").
			AddArgument(&Argument{Name: "source", Required: true}).
			AddOption(&Option{Name: "mode", Required: true}).
			Action(func(ctx context.Context, c *Context) error { return nil })

		err := app.Run(context.Background(), []string{"copy", "--bogus"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.Error(t, err)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		require.Len(t, validation.Issues, 3)
		assert.Contains(t, validation.Issues[0], `unknown option "--bogus"`)
	})
	t.Run("lenient mode passes unknowns through", func(t *testing.T) {
		t.Parallel()
		var rest []Token
		app := New("tool", "2.1.0").Lenient()
		app.Command("exec").Action(func(ctx context.Context, c *Context) error {
			rest = c.Bind().Rest
			return nil
		})
		err := app.Run(context.Background(), []string{"exec", "--custom"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "custom", rest[0].Value)
	})
}

func TestRunHelpAndVersion(t *testing.T) {
	t.Parallel()

	t.Run("help fires once and skips the action", func(t *testing.T) {
		t.Parallel()
		var (
			ran       bool
			port      float64
			helpFired int
		)
		app := newBuildApp(&ran, &port)
		app.Kernel().Subscribe(EventHelp, func(ctx context.Context, ev Event) error {
			helpFired++
			return nil
		})

		out := &bytes.Buffer{}
		err := app.Run(context.Background(), []string{"--help"}, &RunOptions{Stdout: out})
		require.Error(t, err)
		require.ErrorIs(t, err, ErrHelpRequested)
		assert.True(t, IsExitRequest(err))
		assert.Equal(t, 0, ExitCode(err))
		assert.Equal(t, 1, helpFired)
		assert.False(t, ran)
		assert.Contains(t, out.String(), "Usage:")
		assert.Contains(t, out.String(), "build")
	})
	t.Run("command help shows the matched command", func(t *testing.T) {
		t.Parallel()
		var (
			ran  bool
			port float64
		)
		app := newBuildApp(&ran, &port)
		out := &bytes.Buffer{}
		err := app.Run(context.Background(), []string{"build", "-h"}, &RunOptions{Stdout: out})
		require.ErrorIs(t, err, ErrHelpRequested)
		assert.False(t, ran)
		assert.Contains(t, out.String(), "tool build")
		assert.Contains(t, out.String(), "--port")
	})
	t.Run("version", func(t *testing.T) {
		t.Parallel()
		var (
			ran  bool
			port float64
		)
		app := newBuildApp(&ran, &port)
		out := &bytes.Buffer{}
		err := app.Run(context.Background(), []string{"--version"}, &RunOptions{Stdout: out})
		require.ErrorIs(t, err, ErrVersionRequested)
		assert.Equal(t, 0, ExitCode(err))
		assert.Equal(t, "tool 2.1.0\n", out.String())
		assert.False(t, ran)
	})
	t.Run("short version spelling is case sensitive", func(t *testing.T) {
		t.Parallel()
		var (
			ran  bool
			port float64
		)
		app := newBuildApp(&ran, &port)
		out := &bytes.Buffer{}
		err := app.Run(context.Background(), []string{"-V"}, &RunOptions{Stdout: out})
		require.ErrorIs(t, err, ErrVersionRequested)
		assert.Contains(t, out.String(), "2.1.0")
	})
	t.Run("command without action shows help", func(t *testing.T) {
		t.Parallel()
		app := New("tool", "2.1.0")
		app.Command("remote").Describe("manage remotes").AddCommand("add")
		out := &bytes.Buffer{}
		err := app.Run(context.Background(), []string{"remote"}, &RunOptions{Stdout: out})
		require.ErrorIs(t, err, ErrHelpRequested)
		assert.Contains(t, out.String(), "manage remotes")
		assert.Contains(t, out.String(), "add")
	})
}

func TestRunLifecycleEvents(t *testing.T) {
	t.Parallel()

	t.Run("before and after bracket the action", func(t *testing.T) {
		t.Parallel()
		var order []string
		app := New("tool", "2.1.0")
		app.Kernel().Subscribe(EventCommandBefore, func(ctx context.Context, ev Event) error {
			order = append(order, "before")
			return nil
		})
		app.Kernel().Subscribe(EventCommandAfter, func(ctx context.Context, ev Event) error {
			order = append(order, "after")
			return nil
		})
		app.Command("build").Action(func(ctx context.Context, c *Context) error {
			order = append(order, "action")
			return nil
		})

		require.NoError(t, app.Run(context.Background(), []string{"build"}, &RunOptions{Stdout: &bytes.Buffer{}}))
		assert.Equal(t, []string{"before", "action", "after"}, order)
	})
	t.Run("failing action suppresses command:after", func(t *testing.T) {
		t.Parallel()
		after := false
		app := New("tool", "2.1.0")
		app.Kernel().Subscribe(EventCommandAfter, func(ctx context.Context, ev Event) error {
			after = true
			return nil
		})
		app.Command("build").Action(func(ctx context.Context, c *Context) error {
			return assert.AnError
		})
		err := app.Run(context.Background(), []string{"build"}, &RunOptions{Stdout: &bytes.Buffer{}})
		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, after)
	})
	t.Run("plugin initializers run before command:before", func(t *testing.T) {
		t.Parallel()
		var order []string
		app := New("tool", "2.1.0")
		app.AddPlugin(&initPlugin{order: &order})
		app.Kernel().Subscribe(EventCommandBefore, func(ctx context.Context, ev Event) error {
			order = append(order, "before")
			return nil
		})
		app.Command("build").Action(func(ctx context.Context, c *Context) error { return nil })

		require.NoError(t, app.Run(context.Background(), []string{"build"}, &RunOptions{Stdout: &bytes.Buffer{}}))
		assert.Equal(t, []string{"install", "init", "before"}, order)
	})
	t.Run("instances are isolated", func(t *testing.T) {
		t.Parallel()
		first := New("one", "1.0.0")
		second := New("two", "1.0.0")
		fired := false
		first.Kernel().Subscribe(EventCommandBefore, func(ctx context.Context, ev Event) error {
			fired = true
			return nil
		})
		second.Command("noop").Action(func(ctx context.Context, c *Context) error { return nil })

		require.NoError(t, second.Run(context.Background(), []string{"noop"}, &RunOptions{Stdout: &bytes.Buffer{}}))
		assert.False(t, fired, "kernels must not be shared across instances")
	})
}

// initPlugin records install and per-invocation init ordering.
type initPlugin struct {
	order *[]string
}

func (p *initPlugin) Name() string    { return "test.init" }
func (p *initPlugin) Version() string { return "0.0.1" }

func (p *initPlugin) Install(*Kernel) error {
	*p.order = append(*p.order, "install")
	return nil
}

func (p *initPlugin) OnInit(c *Context) error {
	*p.order = append(*p.order, "init")
	return nil
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 0, ExitCode(ErrHelpRequested))
	assert.Equal(t, 0, ExitCode(ErrVersionRequested))
	assert.Equal(t, 1, ExitCode(assert.AnError))
	assert.Equal(t, 1, ExitCode(&ValidationError{Issues: []string{"x"}}))
}
