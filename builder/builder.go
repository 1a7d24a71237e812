package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ethereum-optimism/infra/op-bench/metrics"
)

// DefaultCommand builds the release binary in the work directory
var DefaultCommand = []string{"make", "release"}

// WindowsFallbackCommand is used on Windows when make is not installed
func WindowsFallbackCommand(exeName string) []string {
	return []string{"gcc", "-Wall", "-O3", "-o", exeName, "main.c"}
}

// CmdBuilder creates the command for one build step
type CmdBuilder func(ctx context.Context, name string, arg ...string) *exec.Cmd

// BuildError reports a failed build step
type BuildError struct {
	Command []string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build command %q failed: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Config holds configuration for the builder
type Config struct {
	Log     log.Logger
	WorkDir string
	// Command is the primary build command. Defaults to DefaultCommand.
	Command []string
	// Fallback runs when the primary command's program is not installed.
	// Empty disables the fallback.
	Fallback []string
	// Output receives the build tool's stdout and stderr
	Output     io.Writer
	CmdBuilder CmdBuilder
}

// Builder produces the subject executable on demand
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder, applying defaults to cfg
func NewBuilder(cfg Config) (*Builder, error) {
	if cfg.WorkDir == "" {
		return nil, fmt.Errorf("work directory is required")
	}
	if len(cfg.Command) == 0 {
		cfg.Command = DefaultCommand
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.CmdBuilder == nil {
		cfg.CmdBuilder = exec.CommandContext
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}
	return &Builder{cfg: cfg}, nil
}

// NeedsBuild reports whether EnsureBuilt would run the build
func NeedsBuild(exePath string, force bool) bool {
	if force {
		return true
	}
	_, err := os.Stat(exePath)
	return err != nil
}

// EnsureBuilt builds the executable when it is absent or force is set.
// It returns whether a build ran. A successful build does not guarantee the
// executable now exists; callers check that separately.
func (b *Builder) EnsureBuilt(ctx context.Context, exePath string, force bool) (bool, error) {
	if !NeedsBuild(exePath, force) {
		b.cfg.Log.Debug("Executable present, skipping build", "path", exePath)
		return false, nil
	}

	ctx, span := otel.Tracer("bench builder").Start(ctx, "build")
	defer span.End()
	span.SetAttributes(attribute.String("executable", exePath), attribute.Bool("forced", force))

	start := time.Now()
	err := b.run(ctx, b.cfg.Command)
	if err != nil && errors.Is(err, exec.ErrNotFound) && len(b.cfg.Fallback) > 0 {
		b.cfg.Log.Warn("Build tool not found, using fallback", "command", b.cfg.Command[0], "fallback", strings.Join(b.cfg.Fallback, " "))
		err = b.run(ctx, b.cfg.Fallback)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordErrorDetails("build", err)
		return true, err
	}

	b.cfg.Log.Info("Build finished", "dir", b.cfg.WorkDir, "duration", time.Since(start))
	return true, nil
}

func (b *Builder) run(ctx context.Context, command []string) error {
	b.cfg.Log.Info("Running build", "dir", b.cfg.WorkDir, "command", strings.Join(command, " "))

	cmd := b.cfg.CmdBuilder(ctx, command[0], command[1:]...)
	cmd.Dir = b.cfg.WorkDir
	cmd.Stdout = b.cfg.Output
	cmd.Stderr = b.cfg.Output
	if err := cmd.Run(); err != nil {
		return &BuildError{Command: command, Err: err}
	}
	return nil
}
