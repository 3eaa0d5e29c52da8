package config

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
	"gopkg.in/yaml.v3"
)

const alertConfigFile = "alerts.yaml"

// AlertConfig stores the alerting bounds and the optional analysis rules of a workspace.
type AlertConfig struct {
	Thresholds    evm.Thresholds `yaml:"thresholds"`
	ExtendedRules bool           `yaml:"extended_rules"`
	Breakdowns    bool           `yaml:"breakdowns"`
}

// DefaultAlertConfig returns the standard thresholds with the optional rules off.
func DefaultAlertConfig() *AlertConfig {
	return &AlertConfig{Thresholds: evm.DefaultThresholds()}
}

// CalculatorOptions translates the config into calculator options.
func (c *AlertConfig) CalculatorOptions() []evm.Option {
	opts := []evm.Option{evm.WithThresholds(c.Thresholds)}
	if c.ExtendedRules {
		opts = append(opts, evm.WithExtendedAlertRules())
	}
	if c.Breakdowns {
		opts = append(opts,
			evm.WithCostBreakdown(evm.CostEntryBreakdown{}),
			evm.WithScheduleBreakdown(evm.TaskScheduleBreakdown{}))
	}
	return opts
}

// LoadAlertConfig reads alerts.yaml from the workspace. A missing file yields
// the defaults and keys absent from the file keep their default values.
func LoadAlertConfig(root string) (*AlertConfig, error) {
	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(alertConfigFile)
	if err != nil {
		return nil, err
	}

	cfg := DefaultAlertConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read alert config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert config: %w", err)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("alert config %s: %w", path, err)
	}

	return cfg, nil
}

func SaveAlertConfig(root string, cfg *AlertConfig) error {
	if cfg == nil {
		return fmt.Errorf("alert config is nil")
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return err
	}

	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(alertConfigFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal alert config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
