package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/slugkit/internal/cli"
	"github.com/dmitrymomot/slugkit/internal/config"
	"github.com/dmitrymomot/slugkit/pkg/slug"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	t.Parallel()

	var names []string
	for _, c := range cli.NewRootCommand().Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"generate", "parse", "truncate", "make", "serve", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		stdin    string
		expected string
		err      error
	}{
		{name: "joined args", args: []string{"generate", "Hello,", "World!"}, expected: "hello-world\n"},
		{name: "separator", args: []string{"generate", "--separator", "_", "Hello World"}, expected: "hello_world\n"},
		{name: "empty separator", args: []string{"generate", "--separator", "", "Hello World"}, expected: "helloworld\n"},
		{name: "keep case", args: []string{"generate", "--keep-case", "Hello World"}, expected: "Hello-World\n"},
		{name: "keep apostrophes", args: []string{"generate", "--keep-apostrophes", "library's"}, expected: "library-s\n"},
		{name: "ascii filter", args: []string{"generate", "--filter", "ascii-alnum", "café"}, expected: "caf\n"},
		{name: "stdin lines", args: []string{"generate"}, stdin: "First Post\n\nSecond Post\n", expected: "first-post\nsecond-post\n"},
		{name: "ungeneratable", args: []string{"generate", "!!!"}, err: slug.ErrUngeneratable},
		{name: "ungeneratable stdin line", args: []string{"generate"}, stdin: "ok\n???\n", err: slug.ErrUngeneratable},
		{name: "unknown filter", args: []string{"generate", "--filter", "emoji", "x"}, err: slug.ErrUnknownFilter},
		{name: "overlapping separator", args: []string{"generate", "--separator", "a", "x"}, err: slug.ErrSeparatorOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, tt.stdin, tt.args...)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "parse", "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "hello-world\n", out)

	out, err = run(t, "", "parse", "--separator", "_", "hello_world")
	require.NoError(t, err)
	assert.Equal(t, "hello_world\n", out)

	_, err = run(t, "", "parse", "Hello World")
	require.ErrorIs(t, err, slug.ErrNotSlug)

	_, err = run(t, "", "parse")
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "truncate", "--max", "10", "hello-big-world")
	require.NoError(t, err)
	assert.Equal(t, "hello-big\n", out)

	out, err = run(t, "", "truncate", "--max", "50", "hello-big-world")
	require.NoError(t, err)
	assert.Equal(t, "hello-big-world\n", out)

	_, err = run(t, "", "truncate", "hello")
	require.ErrorIs(t, err, slug.ErrInvalidLength)

	_, err = run(t, "", "truncate", "--max", "3", "Hello")
	require.ErrorIs(t, err, slug.ErrNotSlug)
}

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		pattern string
	}{
		{name: "transliterates", args: []string{"make", "Café", "&", "Restaurant"}, pattern: `^cafe-restaurant$`},
		{name: "separator", args: []string{"make", "--separator", "_", "Hello World"}, pattern: `^hello_world$`},
		{name: "keep case", args: []string{"make", "--keep-case", "Hello World"}, pattern: `^Hello-World$`},
		{name: "max length", args: []string{"make", "--max-length", "12", "Long Article Title"}, pattern: `^long-article$`},
		{name: "suffix", args: []string{"make", "--suffix", "4", "Hello"}, pattern: `^hello-[a-z0-9]{4}$`},
		{name: "suffix capped", args: []string{"make", "--suffix", "100000", "Hello"}, pattern: `^hello-[a-z0-9]{32}$`},
		{name: "reserved", args: []string{"make", "--reserved", "admin,api", "Admin"}, pattern: `^admin-[a-z0-9]{6}$`},
		{name: "replace", args: []string{"make", "--replace", "&=and", "Salt & Pepper"}, pattern: `^salt-and-pepper$`},
		{name: "strip", args: []string{"make", "--strip", "'", "don't stop"}, pattern: `^dont-stop$`},
		{name: "min length", args: []string{"make", "--min-length", "8", "Hi"}, pattern: `^hi-[a-z0-9]{6}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Regexp(t, tt.pattern, strings.TrimSuffix(out, "\n"))
		})
	}

	t.Run("nothing usable", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, "", "make", "!!!")
		require.ErrorIs(t, err, slug.ErrUngeneratable)
	})
}

func TestServe(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	cmd := cli.NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"serve"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_InvalidConfig(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := run(t, "", "serve")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestVersion(t *testing.T) {
	cli.SetVersionInfo("1.0.0", "abc1234", "2026-01-01")
	t.Cleanup(func() { cli.SetVersionInfo("dev", "none", "unknown") })

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "slugkit 1.0.0 (commit: abc1234, built: 2026-01-01)\n", out)
}
