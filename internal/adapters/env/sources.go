package env

import (
	"bytes"
	"context"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
)

// SourceFunc computes the value of a value source for the given parameters.
type SourceFunc func(ctx context.Context, e *Environment, params []string) (string, error)

func defaultSources() map[string]SourceFunc {
	return map[string]SourceFunc{
		domain.SourceExec:      execSource,
		domain.SourceEnvPrefix: envPrefixSource,
		domain.SourceGlob:      globSource,
		domain.SourceTree:      treeSource,
	}
}

// execSource runs a command in the build root and returns its trimmed standard output.
func execSource(ctx context.Context, e *Environment, params []string) (string, error) {
	if len(params) == 0 || params[0] == "" {
		return "", zerr.New("exec value source needs a command")
	}

	cmd := exec.CommandContext(ctx, params[0], params[1:]...) //nolint:gosec // Commands come from the build script
	cmd.Dir = e.root
	cmd.Env = e.environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "command", strings.Join(params, " "))
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "stderr", msg)
		}
		return "", wrapped
	}
	return strings.TrimSpace(stdout.String()), nil
}

// envPrefixSource returns every environment variable starting with the prefix, as sorted
// NAME=VALUE lines.
func envPrefixSource(_ context.Context, e *Environment, params []string) (string, error) {
	if len(params) != 1 {
		return "", zerr.With(zerr.New("envPrefix value source needs exactly one prefix"), "params", len(params))
	}

	var lines []string
	for _, kv := range e.environ() {
		if strings.HasPrefix(kv, params[0]) {
			lines = append(lines, kv)
		}
	}
	slices.Sort(lines)
	return strings.Join(lines, "\n"), nil
}

// globSource returns the sorted root-relative matches of the patterns, one per line.
func globSource(_ context.Context, e *Environment, params []string) (string, error) {
	matches, err := e.resolver.Glob(e.root, params)
	if err != nil {
		return "", err
	}
	return strings.Join(matches, "\n"), nil
}

// treeSource returns the content hash of a directory tree. Extra parameters are ignored names.
func treeSource(ctx context.Context, e *Environment, params []string) (string, error) {
	if len(params) == 0 {
		return "", zerr.New("tree value source needs a directory")
	}
	sum, err := e.hasher.HashTree(ctx, e.abs(params[0]), params[1:])
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(sum, 16), nil
}
