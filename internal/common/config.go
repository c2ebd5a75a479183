// Package common provides shared utilities for the portfolio advisor
package common

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the advisor
type Config struct {
	Environment string          `toml:"environment"`
	Logging     LoggingConfig   `toml:"logging"`
	Diagnosis   DiagnosisTuning `toml:"diagnosis"`
	Rebalance   RebalanceTuning `toml:"rebalance"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DiagnosisTuning holds the tunable thresholds of the diagnosis engine.
// All percentage thresholds are exclusive: a value exactly on the
// threshold falls into the lower band.
type DiagnosisTuning struct {
	ConcentrationHighPct   float64 `toml:"concentration_high_pct"`   // top weight above this is high concentration risk
	ConcentrationMediumPct float64 `toml:"concentration_medium_pct"` // top weight above this is medium concentration risk
	DiversifiedMinHoldings int     `toml:"diversified_min_holdings"` // minimum holding count for a diversified portfolio
	LargePositionMultiple  float64 `toml:"large_position_multiple"`  // shares above this multiple of the average flag a large position
}

// RebalanceTuning holds the tunable thresholds of the rebalance engine
type RebalanceTuning struct {
	LossTrimMultiple    float64 `toml:"loss_trim_multiple"`     // low profile: shrink losers to weight x this
	GainTrimMultiple    float64 `toml:"gain_trim_multiple"`     // low profile: trim large winners to weight x this
	GrowthBoostMultiple float64 `toml:"growth_boost_multiple"`  // high profile: boost winners to weight x this
	MaxTargetWeightPct  float64 `toml:"max_target_weight_pct"`  // cap applied before renormalization
	TradeBandPct        float64 `toml:"trade_band_pct"`         // weight deltas within this band produce no trade
	HighPriorityBandPct float64 `toml:"high_priority_band_pct"` // weight deltas above this band are high priority
	TransactionCostRate float64 `toml:"transaction_cost_rate"`  // combined commission + tax approximation
	TurnoverHighPct     float64 `toml:"turnover_high_pct"`      // turnover above this is high risk
	TurnoverMediumPct   float64 `toml:"turnover_medium_pct"`    // turnover above this is medium risk
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level: "info",
		},
		Diagnosis: DefaultDiagnosisTuning(),
		Rebalance: DefaultRebalanceTuning(),
	}
}

// DefaultDiagnosisTuning returns the diagnosis engine defaults
func DefaultDiagnosisTuning() DiagnosisTuning {
	return DiagnosisTuning{
		ConcentrationHighPct:   50,
		ConcentrationMediumPct: 30,
		DiversifiedMinHoldings: 5,
		LargePositionMultiple:  3,
	}
}

// DefaultRebalanceTuning returns the rebalance engine defaults
func DefaultRebalanceTuning() RebalanceTuning {
	return RebalanceTuning{
		LossTrimMultiple:    0.7,
		GainTrimMultiple:    0.85,
		GrowthBoostMultiple: 1.2,
		MaxTargetWeightPct:  30,
		TradeBandPct:        5,
		HighPriorityBandPct: 15,
		TransactionCostRate: 0.002,
		TurnoverHighPct:     50,
		TurnoverMediumPct:   30,
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ADVISOR_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("ADVISOR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
