package flags

import (
	"testing"
	"time"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// TestOptionalFlagsDontSetRequired asserts that all flags deemed optional set
// the Required field to false.
func TestOptionalFlagsDontSetRequired(t *testing.T) {
	for _, flag := range optionalFlags {
		reqFlag, ok := flag.(cli.RequiredFlag)
		require.True(t, ok)
		require.False(t, reqFlag.IsRequired())
	}
}

// TestUniqueFlags asserts that all flag names are unique, to avoid accidental conflicts between the many flags.
func TestUniqueFlags(t *testing.T) {
	seenCLI := make(map[string]struct{})
	for _, flag := range Flags {
		for _, name := range flag.Names() {
			if _, ok := seenCLI[name]; ok {
				t.Errorf("duplicate flag %s", name)
				continue
			}
			seenCLI[name] = struct{}{}
		}
	}
}

func TestEnvVarFormat(t *testing.T) {
	for _, flag := range Flags {
		flagName := flag.Names()[0]

		t.Run(flagName, func(t *testing.T) {
			envFlagGetter, ok := flag.(interface {
				GetEnvVars() []string
			})
			require.True(t, ok, "must be able to cast the flag to an EnvVar interface")
			envFlags := envFlagGetter.GetEnvVars()
			require.Equal(t, 1, len(envFlags), "flags should have exactly one env var")
			require.Equal(t, opservice.FlagNameToEnvVarName(flagName, EnvVarPrefix), envFlags[0])
		})
	}
}

func TestColorMode(t *testing.T) {
	t.Run("type methods", func(t *testing.T) {
		assert.Equal(t, "auto", ColorAuto.String())
		assert.True(t, ColorAlways.IsValid())
		assert.True(t, ColorNever.IsValid())
		assert.False(t, ColorMode("sometimes").IsValid())
		assert.False(t, ColorMode("").IsValid())
		assert.Len(t, ValidColorModes(), 3)
	})

	t.Run("CLI flag validation", func(t *testing.T) {
		app := &cli.App{
			Flags: []cli.Flag{Color},
			Action: func(ctx *cli.Context) error {
				return nil
			},
		}

		testCases := []struct {
			name        string
			args        []string
			shouldError bool
		}{
			{"valid always", []string{"app", "--color", "always"}, false},
			{"valid never", []string{"app", "--color", "never"}, false},
			{"invalid value", []string{"app", "--color", "AUTO"}, true},
			{"no flag uses default", []string{"app"}, false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				err := app.Run(tc.args)
				if tc.shouldError {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "color must be one of")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestBuildFlagAlias(t *testing.T) {
	for _, args := range [][]string{{"app", "-b"}, {"app", "--build"}} {
		var built bool
		app := &cli.App{
			Flags: []cli.Flag{Build},
			Action: func(ctx *cli.Context) error {
				built = ctx.Bool(Build.Name)
				return nil
			},
		}
		require.NoError(t, app.Run(args))
		assert.True(t, built, "args %v", args)
	}
}

func TestDefaults(t *testing.T) {
	app := &cli.App{
		Flags: Flags,
		Action: func(ctx *cli.Context) error {
			assert.False(t, ctx.Bool(Build.Name))
			assert.Equal(t, "bfsree", ctx.String(Name.Name))
			assert.Equal(t, 300*time.Second, ctx.Duration(Timeout.Name))
			assert.Equal(t, "make release", ctx.String(BuildCmd.Name))
			assert.Equal(t, "auto", ctx.String(Color.Name))
			assert.Empty(t, ctx.String(Catalog.Name))
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"app"}))
}
