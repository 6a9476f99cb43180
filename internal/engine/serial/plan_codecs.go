package serial

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"go.trai.ch/recall/internal/core/domain"
)

// NewPlanRegistry returns a registry covering every type reachable from a *domain.Plan.
func NewPlanRegistry() (*Registry, error) {
	r := NewRegistry()
	steps := []func(*Registry) error{
		func(r *Registry) error { return RegisterBean[domain.Plan](r, "Plan") },
		func(r *Registry) error { return RegisterBean[domain.Project](r, "Project") },
		func(r *Registry) error { return RegisterBean[domain.Task](r, "Task") },
		func(r *Registry) error { return RegisterBean[domain.ConstProvider](r, "ConstProvider") },
		func(r *Registry) error { return RegisterBean[domain.ConcatProvider](r, "ConcatProvider") },
		func(r *Registry) error { return RegisterBean[domain.EnvProvider](r, "EnvProvider") },
		func(r *Registry) error { return RegisterBean[domain.TaskStateProvider](r, "TaskStateProvider") },
		func(r *Registry) error {
			return RegisterConstructor(r, "InternedString",
				domain.InternedString.String,
				func(s string) (domain.InternedString, error) {
					if s == "" {
						return domain.InternedString{}, nil
					}
					return domain.NewInternedString(s), nil
				},
			)
		},
		func(r *Registry) error {
			return RegisterValue(r, "Time",
				func(enc *msgpack.Encoder, t time.Time) error { return enc.EncodeTime(t) },
				func(dec *msgpack.Decoder) (time.Time, error) { return dec.DecodeTime() },
			)
		},
	}
	for _, step := range steps {
		if err := step(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}
