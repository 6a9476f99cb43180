// Package shell provides a shell-based executor for running tasks.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger  ports.Logger
	environ func() []string
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new Executor logging command output through logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger, environ: os.Environ}
}

// Execute runs the task's command and waits for it to complete.
// The process sees the allow-listed system variables overridden by env.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, env []string, stdout, stderr io.Writer) error {
	if len(task.Command) == 0 {
		return nil
	}

	name := task.Command[0]
	cmdEnv := resolveEnvironment(e.environ(), env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, task.Command[1:]...) //nolint:gosec // user provided command
	cmd.Args[0] = name
	cmd.Env = cmdEnv
	if dir := task.WorkingDir.String(); dir != "" {
		cmd.Dir = dir
	} else if task.Project != nil {
		cmd.Dir = task.Project.Dir
	}

	stdoutLog := &logWriter{logger: e.logger, level: domain.LogLevelInfo}
	stderrLog := &logWriter{logger: e.logger, level: domain.LogLevelError}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()
	cmd.Stdout = io.MultiWriter(stdoutLog, stdout)
	cmd.Stderr = io.MultiWriter(stderrLog, stderr)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "task", task.Path())
	}
	return nil
}

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	level  domain.LogLevel
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	if w.logger == nil {
		return len(p), nil
	}
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 && w.logger != nil {
		w.logLine(w.buf)
	}
	w.buf = nil
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if w.level == domain.LogLevelError {
		w.logger.Warn(msg)
		return
	}
	w.logger.Info(msg)
}

// allowListedEnvVars are the system environment variables inherited by every task.
var allowListedEnvVars = map[string]struct{}{
	"HOME": {},
	"TERM": {},
	"USER": {},
	"PATH": {},
	"TMPDIR": {},
}

// resolveEnvironment overlays the task environment on the allow-listed system variables.
// The result is sorted by variable name.
func resolveEnvironment(sysEnv, taskEnv []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}
	for _, entry := range taskEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "PATH="); ok {
			path = after
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
