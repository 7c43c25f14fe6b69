package tuning

import (
	"embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Search holds the empirically tuned semantic-search constants.
// Values ship as embedded YAML so they can be adjusted without touching code
// paths that consume them.
type Search struct {
	// MatchThreshold is the minimum cosine similarity for a result to count
	// as relevant at all.
	MatchThreshold float64 `yaml:"match_threshold"`

	// DefaultLimit is the top-K cutoff applied when the caller does not ask
	// for a specific limit.
	DefaultLimit int `yaml:"default_limit"`

	// PercentMultiplier and PercentCap define the display transform
	// min(cap, round(score*multiplier)). Presentation only; never affects
	// ordering.
	PercentMultiplier float64 `yaml:"percent_multiplier"`
	PercentCap        int     `yaml:"percent_cap"`
}

// LoadSearch loads the embedded search tuning file.
func LoadSearch() (*Search, error) {
	data, err := configFiles.ReadFile("config/search.yaml")
	if err != nil {
		return nil, fmt.Errorf("read search tuning: %w", err)
	}

	var s Search
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal search tuning: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid search tuning: %w", err)
	}

	return &s, nil
}

func (s *Search) validate() error {
	if s.MatchThreshold < 0 || s.MatchThreshold > 1 {
		return fmt.Errorf("match_threshold must be in [0,1], got %v", s.MatchThreshold)
	}
	if s.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", s.DefaultLimit)
	}
	if s.PercentMultiplier <= 0 {
		return fmt.Errorf("percent_multiplier must be positive, got %v", s.PercentMultiplier)
	}
	if s.PercentCap <= 0 || s.PercentCap > 100 {
		return fmt.Errorf("percent_cap must be in (0,100], got %d", s.PercentCap)
	}
	return nil
}

// MatchPercent converts a raw similarity score in [0,1] into the bounded
// percentage shown to users. The cap is deliberate: 100% would imply exact
// identity, which cosine similarity cannot promise.
func (s *Search) MatchPercent(score float64) int {
	percent := int(math.Round(score * s.PercentMultiplier))
	if percent > s.PercentCap {
		return s.PercentCap
	}
	if percent < 0 {
		return 0
	}
	return percent
}
