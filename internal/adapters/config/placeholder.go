package config

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

// Placeholder kinds.
const (
	kindEnv       = "env"
	kindProp      = "prop"
	kindFile      = "file"
	kindExists    = "exists"
	kindExec      = "exec"
	kindEnvPrefix = "envPrefix"
	kindGlob      = "glob"
	kindTree      = "tree"
	kindState     = "state"
)

var placeholderRegex = regexp.MustCompile(`\$\{([A-Za-z]+):([^}]*)\}`)

// segment is a literal run of text or a single placeholder.
type segment struct {
	literal string
	kind    string
	arg     string
}

func (s segment) isPlaceholder() bool {
	return s.kind != ""
}

// parseTemplate splits s into literals and placeholders.
func parseTemplate(s string) ([]segment, error) {
	var out []segment
	last := 0
	for _, m := range placeholderRegex.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			out = append(out, segment{literal: s[last:m[0]]})
		}
		out = append(out, segment{kind: s[m[2]:m[3]], arg: strings.TrimSpace(s[m[4]:m[5]])})
		last = m[1]
	}
	if last < len(s) {
		out = append(out, segment{literal: s[last:]})
	}

	for _, seg := range out {
		if !seg.isPlaceholder() && strings.Contains(seg.literal, "${") {
			return nil, errors.Join(domain.ErrInvalidPlaceholder, zerr.With(zerr.New("unterminated placeholder in "+s), "value", s))
		}
	}
	return out, nil
}

// scope evaluates placeholders on behalf of one project. Relative paths in placeholders
// are relative to the project directory.
type scope struct {
	inputs ports.InputTracker
	relDir string
}

func (s *scope) rel(p string) string {
	return path.Join(s.relDir, p)
}

// eval evaluates one placeholder through the input tracker so the read is recorded.
func (s *scope) eval(ctx context.Context, seg segment) (string, error) {
	switch seg.kind {
	case kindEnv:
		v, _ := s.inputs.Getenv(seg.arg)
		return v, nil
	case kindProp:
		v, _ := s.inputs.Property(seg.arg)
		return v, nil
	case kindFile:
		data, err := s.inputs.ReadFile(ctx, s.rel(seg.arg))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	case kindExists:
		return strconv.FormatBool(s.inputs.FileExists(s.rel(seg.arg))), nil
	case kindExec:
		return s.inputs.Obtain(ctx, domain.ValueSourceDescriptor{Type: domain.SourceExec, Params: strings.Fields(seg.arg)})
	case kindEnvPrefix:
		return s.inputs.Obtain(ctx, domain.ValueSourceDescriptor{Type: domain.SourceEnvPrefix, Params: []string{seg.arg}})
	case kindGlob:
		patterns := strings.Fields(seg.arg)
		for i, p := range patterns {
			patterns[i] = s.rel(p)
		}
		return s.inputs.Obtain(ctx, domain.ValueSourceDescriptor{Type: domain.SourceGlob, Params: patterns})
	case kindTree:
		return s.inputs.Obtain(ctx, domain.ValueSourceDescriptor{Type: domain.SourceTree, Params: []string{s.rel(seg.arg)}})
	default:
		return "", errors.Join(domain.ErrInvalidPlaceholder,
			zerr.With(zerr.With(zerr.New("unsupported placeholder kind "+seg.kind), "kind", seg.kind), "arg", seg.arg))
	}
}

// expand evaluates every placeholder of s. ${state:...} is rejected: it is only meaningful
// where a task is being configured.
func (s *scope) expand(ctx context.Context, value string) (string, error) {
	segments, err := parseTemplate(value)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range segments {
		if !seg.isPlaceholder() {
			b.WriteString(seg.literal)
			continue
		}
		if seg.kind == kindState {
			return "", errors.Join(domain.ErrInvalidPlaceholder,
				zerr.With(zerr.With(zerr.New("state placeholder cannot be resolved here"), "kind", seg.kind), "value", value))
		}
		v, err := s.eval(ctx, seg)
		if err != nil {
			return "", err
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

func (s *scope) expandAll(ctx context.Context, values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		expanded, err := s.expand(ctx, v)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}
