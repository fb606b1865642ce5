// Package shell supervises the external build pipeline.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildRunner = (*Runner)(nil)

// Runner spawns the configured build command for a route batch,
// enforces the hard timeout and bumps the generation marker after a
// successful exit.
type Runner struct {
	command     []string
	fullCommand []string
	workDir     string
	timeout     time.Duration
	extraEnv    map[string]string

	store     ports.GenerationStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// Options configures a Runner.
type Options struct {
	Command     []string
	FullCommand []string
	WorkDir     string
	Timeout     time.Duration
	ExtraEnv    map[string]string
}

func NewRunner(opts Options, store ports.GenerationStore, telemetry ports.Telemetry, logger ports.Logger) *Runner {
	return &Runner{
		command:     opts.Command,
		fullCommand: opts.FullCommand,
		workDir:     opts.WorkDir,
		timeout:     opts.Timeout,
		extraEnv:    opts.ExtraEnv,
		store:       store,
		telemetry:   telemetry,
		logger:      logger,
	}
}

// Run builds the given route batch. The batch is passed both as the
// final command argument (comma-joined) and as REGEN_ROUTES in the
// child's environment.
func (r *Runner) Run(ctx context.Context, routes []string) error {
	if len(routes) == 0 {
		return domain.ErrNoRoutes
	}
	if len(r.command) == 0 {
		return domain.ErrNoBuildCommand
	}

	batch := strings.Join(routes, ",")
	args := append(append([]string(nil), r.command[1:]...), batch)
	return r.spawn(ctx, "build "+batch, r.command[0], args, batch)
}

// RunFull runs the unscoped precondition build.
func (r *Runner) RunFull(ctx context.Context) error {
	if len(r.fullCommand) == 0 {
		return domain.ErrNoBuildCommand
	}
	return r.spawn(ctx, "full build", r.fullCommand[0], r.fullCommand[1:], "")
}

func (r *Runner) spawn(ctx context.Context, label, name string, args []string, batch string) error {
	ctx, vertex := r.telemetry.Record(ctx, label)

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...) //nolint:gosec // user provided command
	cmd.Dir = r.workDir
	cmd.Env = r.childEnv(batch)
	cmd.Stdout = io.MultiWriter(vertex.Stdout(), &logWriter{logger: r.logger})
	cmd.Stderr = io.MultiWriter(vertex.Stderr(), &logWriter{logger: r.logger, stderr: true})

	r.logger.Info("running " + label)
	started := time.Now()

	err := cmd.Run()
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			err = zerr.Wrap(domain.ErrBuildTimeout, label)
			err = zerr.With(err, "timeout", r.timeout.String())
			err = zerr.With(err, "elapsed", time.Since(started).String())
		} else {
			exitCode := -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			}
			err = zerr.With(zerr.Wrap(domain.ErrBuildFailed, label), "exit_code", exitCode)
		}
		vertex.Complete(err)
		return err
	}
	vertex.Complete(nil)

	// Stale output must never announce itself, so the marker moves only
	// after a clean exit. A failed write is logged and swallowed.
	if gen, berr := r.store.Bump(); berr != nil {
		r.logger.Error(zerr.Wrap(berr, "failed to persist build generation"))
	} else {
		r.logger.Info("build generation " + gen.String())
	}
	return nil
}

// childEnv assembles the child's environment: the parent's, the
// configured extras, the route batch and the flags keeping the child
// from watching or serving on its own.
func (r *Runner) childEnv(batch string) []string {
	env := append(append([]string(nil), os.Environ()...),
		"REGEN_CHILD_WATCH=0",
		"REGEN_CHILD_TLS=0",
	)
	for k, v := range r.extraEnv {
		env = append(env, k+"="+v)
	}
	if batch != "" {
		env = append(env, "REGEN_ROUTES="+batch)
	}
	return env
}

// logWriter streams child output line by line through the logger.
type logWriter struct {
	logger ports.Logger
	stderr bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	for line := range strings.SplitSeq(strings.TrimSuffix(string(p), "\n"), "\n") {
		if w.stderr {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
