package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxExpiriesPerUnderlying = 4
	DefaultMaxExpiryDaysAhead       = 45
)

// UnderlyingConfig describes one index whose option chain is snapshotted.
// Values are set at process start and never mutated.
type UnderlyingConfig struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	StrikeStep   int    `yaml:"strike_step"`
	StrikeWindow int    `yaml:"strike_window"`
	Exchange     string `yaml:"exchange"`
	IndexSymbol  string `yaml:"index_symbol,omitempty"`
}

func (c UnderlyingConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("UnderlyingConfig: Validate: missing name")
	}

	if c.URL == "" {
		return fmt.Errorf("UnderlyingConfig: Validate: %s: missing url", c.Name)
	}

	if c.StrikeStep < 1 {
		return fmt.Errorf("UnderlyingConfig: Validate: %s: strike step must be >= 1, got %d", c.Name, c.StrikeStep)
	}

	if c.StrikeWindow < 1 {
		return fmt.Errorf("UnderlyingConfig: Validate: %s: strike window must be >= 1, got %d", c.Name, c.StrikeWindow)
	}

	if c.Exchange == "" {
		return fmt.Errorf("UnderlyingConfig: Validate: %s: missing exchange", c.Name)
	}

	return nil
}

// IndexCode is the key the live index batch endpoint reports this underlying
// under. BSE indexes use numeric codes; NSE indexes mostly reuse the name.
func (c UnderlyingConfig) IndexCode() string {
	if c.IndexSymbol != "" {
		return c.IndexSymbol
	}

	return c.Name
}

// DefaultUnderlyings returns the built-in index table. MIDCPNIFTY carries an
// explicit index symbol because the venue reports it as NIFTYMIDSELECT.
func DefaultUnderlyings() []UnderlyingConfig {
	return []UnderlyingConfig{
		{
			Name:         "NIFTY",
			URL:          "https://groww.in/options/nifty",
			StrikeStep:   50,
			StrikeWindow: 2000,
			Exchange:     "NSE",
		},
		{
			Name:         "BANKNIFTY",
			URL:          "https://groww.in/options/nifty-bank",
			StrikeStep:   100,
			StrikeWindow: 4000,
			Exchange:     "NSE",
		},
		{
			Name:         "FINNIFTY",
			URL:          "https://groww.in/options/nifty-financial-services",
			StrikeStep:   50,
			StrikeWindow: 2000,
			Exchange:     "NSE",
		},
		{
			Name:         "MIDCPNIFTY",
			URL:          "https://groww.in/options/nifty-midcap-select",
			StrikeStep:   25,
			StrikeWindow: 1500,
			Exchange:     "NSE",
			IndexSymbol:  "NIFTYMIDSELECT",
		},
		{
			Name:         "SENSEX",
			URL:          "https://groww.in/options/sp-bse-sensex",
			StrikeStep:   100,
			StrikeWindow: 6000,
			Exchange:     "BSE",
			IndexSymbol:  "1",
		},
		{
			Name:         "BANKEX",
			URL:          "https://groww.in/options/sp-bse-bankex",
			StrikeStep:   100,
			StrikeWindow: 6000,
			Exchange:     "BSE",
			IndexSymbol:  "14",
		},
	}
}

// LoadUnderlyings reads an underlying table from a YAML file, replacing the
// built-in defaults wholesale.
func LoadUnderlyings(filepath string) ([]UnderlyingConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("LoadUnderlyings: failed to read %s: %w", filepath, err)
	}

	var dto struct {
		Underlyings []UnderlyingConfig `yaml:"underlyings"`
	}

	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("LoadUnderlyings: failed to parse %s: %w", filepath, err)
	}

	if len(dto.Underlyings) == 0 {
		return nil, fmt.Errorf("LoadUnderlyings: %s contains no underlyings", filepath)
	}

	for _, cfg := range dto.Underlyings {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("LoadUnderlyings: %w", err)
		}
	}

	return dto.Underlyings, nil
}
