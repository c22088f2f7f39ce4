package cli

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
)

func loadPolicy(opts *RootOptions) (config.WageConfig, error) {
	cfg, err := config.LoadWageConfig(opts.PolicyFile)
	if err != nil {
		return config.WageConfig{}, WrapExitError(ExitCommandError, "invalid wage policy", err)
	}
	return cfg, nil
}
