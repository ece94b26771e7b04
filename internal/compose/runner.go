// runner.go executes docker compose subcommands for the mailgram
// deployment. All invocations go through the "docker compose" plugin
// form rather than the legacy docker-compose binary.
//
// Failures carry the child process exit code in the returned CLIError,
// so the CLI propagates compose's own exit behavior instead of
// flattening everything to 1.
package compose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// dockerBinary is the orchestration entry point probed before any
// state-changing command runs.
const dockerBinary = "docker"

// EnsureDockerInstalled verifies the docker binary is on PATH. This is
// the "required external tool" precondition; it fails with exit code 1
// before any compose subcommand is attempted.
func EnsureDockerInstalled() error {
	if _, err := exec.LookPath(dockerBinary); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			"docker is not installed or not on PATH", err)
	}
	return nil
}

// Runner invokes docker compose against a single project.
type Runner struct {
	// ProjectDir is the working directory for every invocation. Compose
	// resolves relative paths in the YAML against it.
	ProjectDir string

	// ComposeFile is the compose file passed via -f, relative to
	// ProjectDir.
	ComposeFile string

	// Trace, when non-nil, receives the full command line of each
	// invocation before it runs. The CLI wires this to its verbose log.
	Trace func(format string, args ...interface{})
}

// NewRunner returns a Runner for the given project directory and
// compose file.
func NewRunner(projectDir, composeFile string) *Runner {
	return &Runner{ProjectDir: projectDir, ComposeFile: composeFile}
}

// Up starts the deployment in detached mode.
func (r *Runner) Up(ctx context.Context) error {
	return r.run(ctx, "up", "-d")
}

// Down stops and removes the deployment's containers and networks.
func (r *Runner) Down(ctx context.Context) error {
	return r.run(ctx, "down")
}

// DownWithVolumes additionally removes named and anonymous volumes,
// used by the clean command for complete teardown.
func (r *Runner) DownWithVolumes(ctx context.Context) error {
	return r.run(ctx, "down", "-v")
}

// Restart restarts the deployment's containers in place.
func (r *Runner) Restart(ctx context.Context) error {
	return r.run(ctx, "restart")
}

// Build builds the deployment's images. With noCache, the build ignores
// cached layers so a rebuild picks up source changes; with pull, it
// always attempts to fetch newer base images first.
func (r *Runner) Build(ctx context.Context, noCache, pull bool) error {
	args := []string{"build"}
	if noCache {
		args = append(args, "--no-cache")
	}
	if pull {
		args = append(args, "--pull")
	}
	return r.run(ctx, args...)
}

// Pull fetches newer images for services that reference a registry image.
func (r *Runner) Pull(ctx context.Context) error {
	return r.run(ctx, "pull")
}

// Logs follows the log stream of one service, starting tail lines back.
// Output streams straight to the terminal; the user's interrupt ends
// the follow, which is not an error.
func (r *Runner) Logs(ctx context.Context, service string, tail int) error {
	return r.runInteractive(ctx,
		"logs", "-f", "--tail", strconv.Itoa(tail), service)
}

// Shell opens an interactive shell inside a running service container.
// It tries bash first and falls back to sh for minimal images.
func (r *Runner) Shell(ctx context.Context, service string) error {
	err := r.runInteractive(ctx, "exec", service, "/bin/bash")
	if err == nil {
		return nil
	}
	// Exit code 126/127 means the container has no bash; retry with sh.
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) && (cliErr.Code == 126 || cliErr.Code == 127) {
		return r.runInteractive(ctx, "exec", service, "/bin/sh")
	}
	return err
}

// run executes a compose subcommand with captured output. On failure
// the combined output is folded into the error message and the child
// exit code is preserved.
func (r *Runner) run(ctx context.Context, args ...string) error {
	cmd := r.command(ctx, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			msg = err.Error()
		}
		return model.WrapCLIError(exitCodeOf(err),
			fmt.Sprintf("docker compose %s failed: %s", args[0], msg), err)
	}
	return nil
}

// runInteractive executes a compose subcommand with stdin, stdout and
// stderr attached to the current process, for log following and shells.
// SIGINT is ignored while the child runs: Ctrl-C reaches the child
// through the shared foreground process group, and this process must
// survive long enough to observe the child's exit status.
func (r *Runner) runInteractive(ctx context.Context, args ...string) error {
	cmd := r.command(ctx, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	signal.Ignore(os.Interrupt)
	defer signal.Reset(os.Interrupt)

	if err := cmd.Run(); err != nil {
		return model.WrapCLIError(exitCodeOf(err),
			fmt.Sprintf("docker compose %s failed", args[0]), err)
	}
	return nil
}

// command builds the exec.Cmd for a compose invocation.
func (r *Runner) command(ctx context.Context, args ...string) *exec.Cmd {
	full := make([]string, 0, len(args)+3)
	full = append(full, "compose", "-f", r.ComposeFile)
	full = append(full, args...)

	if r.Trace != nil {
		r.Trace("+ %s %s", dockerBinary, strings.Join(full, " "))
	}

	cmd := exec.CommandContext(ctx, dockerBinary, full...)
	cmd.Dir = r.ProjectDir
	cmd.Env = os.Environ()
	return cmd
}

// exitCodeOf maps a child process error to the exit code the CLI should
// propagate. A child killed by a signal maps to the shell convention
// 128+signal, so an interrupted log follow surfaces as 130. Non-exec
// errors (binary missing mid-run, context cancelled) fall back to the
// general error code.
func exitCodeOf(err error) model.ExitCode {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return model.ExitCode(128 + int(status.Signal()))
		}
		return model.ExitCode(exitErr.ExitCode())
	}
	return model.ExitGeneralError
}
