package env

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"maps"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
)

// LoadProperties reads a startup properties file. Nested tables become dotted names:
//
//	[release]
//	channel = "beta"
//
// defines "release.channel". A missing file defines nothing. Overrides win over file values.
func LoadProperties(path string, overrides map[string]string) (map[string]string, error) {
	props := make(map[string]string)

	data, err := os.ReadFile(path) //nolint:gosec // Path is the build root's properties file
	switch {
	case errors.Is(err, iofs.ErrNotExist):
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPropertiesReadFailed.Error()), "path", path)
	default:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPropertiesReadFailed.Error()), "path", path)
		}
		flatten(props, "", raw)
	}

	maps.Copy(props, overrides)
	return props, nil
}

func flatten(dst map[string]string, prefix string, table map[string]any) {
	for key, value := range table {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(dst, name, v)
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprint(item)
			}
			dst[name] = strings.Join(parts, ",")
		default:
			dst[name] = fmt.Sprint(v)
		}
	}
}

// ParseOverrides converts "name=value" pairs into a property map.
// A pair without "=" sets the property to "true".
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.Join(domain.ErrInvalidRunOptions, zerr.With(zerr.New("property without a name: "+pair), "property", pair))
		}
		if !found {
			value = "true"
		}
		out[name] = value
	}
	return out, nil
}
