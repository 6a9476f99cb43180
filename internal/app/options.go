package app

import (
	"errors"
	"os"
	"runtime"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
)

// RunOptions configures one invocation of App.Run.
type RunOptions struct {
	// RootDir is the build root. It defaults to the working directory.
	RootDir string
	// NoCache disables the configuration cache: the build is configured every time and nothing is stored.
	NoCache bool
	// Mode decides whether access violations warn or fail. It defaults to advisory.
	Mode domain.EnforcementMode
	// TaskAccess selects the access policy used while the cache is enabled.
	TaskAccess domain.AccessPolicy
	// Properties are startup properties given on the command line.
	Properties map[string]string
	// Parallelism bounds concurrently executing tasks. Zero means one per CPU.
	Parallelism int
	// TrustModTime skips rehashing files whose size and modification time are unchanged.
	TrustModTime bool
}

// Validate reports every invalid option at once.
func (o RunOptions) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Mode, validation.In(domain.ModeAdvisory, domain.ModeStrict)),
		validation.Field(&o.TaskAccess, validation.In(domain.AccessBarrierBased, domain.AccessTaskStateBased)),
		validation.Field(&o.Parallelism, validation.Min(0)),
		validation.Field(&o.Properties, validation.By(validPropertyNames)),
	)
	if err != nil {
		return errors.Join(domain.ErrInvalidRunOptions, err)
	}
	return nil
}

func validPropertyNames(value any) error {
	props, _ := value.(map[string]string)
	for name := range props {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "= ") {
			return validation.NewError("validation_property_name", "property names must be non-empty and contain no '=' or spaces")
		}
	}
	return nil
}

// withDefaults fills unset options.
func (o RunOptions) withDefaults() (RunOptions, error) {
	if o.RootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return o, zerr.Wrap(err, "failed to get working directory")
		}
		o.RootDir = wd
	}
	if o.Mode == "" {
		o.Mode = domain.ModeAdvisory
	}
	if o.Parallelism == 0 {
		o.Parallelism = runtime.NumCPU()
	}
	return o, nil
}

func (o RunOptions) modTimePolicy() domain.ModTimePolicy {
	if o.TrustModTime {
		return domain.PolicyModTime
	}
	return domain.PolicyContent
}
