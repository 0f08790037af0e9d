package recommend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the composite weights, boosts and gating threshold so they
// can be tuned (or loaded from a file) without touching scoring logic.
type Config struct {
	GapWeight        float64 `yaml:"gap_weight"`
	DifficultyWeight float64 `yaml:"difficulty_weight"`
	PopularityWeight float64 `yaml:"popularity_weight"`
	RatingWeight     float64 `yaml:"rating_weight"`

	PersonalizedBoost float64 `yaml:"personalized_boost"`
	OwnContentBoost   float64 `yaml:"own_content_boost"`

	PrereqMasteryThreshold float64 `yaml:"prereq_mastery_threshold"`
}

// DefaultConfig returns the production weights. The four weights sum to 1.0.
func DefaultConfig() Config {
	return Config{
		GapWeight:              0.5,
		DifficultyWeight:       0.2,
		PopularityWeight:       0.15,
		RatingWeight:           0.15,
		PersonalizedBoost:      0.20,
		OwnContentBoost:        0.15,
		PrereqMasteryThreshold: 0.5,
	}
}

// LoadConfig reads weight overrides from a YAML file on top of the
// defaults. An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read recommendation config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse recommendation config: %w", err)
	}
	return cfg, nil
}
