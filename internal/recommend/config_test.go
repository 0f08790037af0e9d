package recommend

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigWeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	sum := cfg.GapWeight + cfg.DifficultyWeight + cfg.PopularityWeight + cfg.RatingWeight
	if !almostEqual(sum, 1.0) {
		t.Fatalf("weights sum to %v, want 1.0", sum)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty_path_returns_defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig(\"\") error: %v", err)
		}
		if cfg != DefaultConfig() {
			t.Fatalf("cfg=%+v, want defaults", cfg)
		}
	})

	t.Run("yaml_overrides_defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reco.yaml")
		body := "gap_weight: 0.4\npersonalized_boost: 0.3\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write temp config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig error: %v", err)
		}
		if !almostEqual(cfg.GapWeight, 0.4) {
			t.Fatalf("gap_weight=%v, want 0.4", cfg.GapWeight)
		}
		if !almostEqual(cfg.PersonalizedBoost, 0.3) {
			t.Fatalf("personalized_boost=%v, want 0.3", cfg.PersonalizedBoost)
		}
		// Untouched fields keep their defaults.
		if !almostEqual(cfg.RatingWeight, 0.15) {
			t.Fatalf("rating_weight=%v, want default 0.15", cfg.RatingWeight)
		}
	})

	t.Run("missing_file_is_an_error", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/reco.yaml"); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})
}
