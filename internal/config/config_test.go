package config

import "testing"

func TestDefaultSearchConfig(t *testing.T) {
	cfg := DefaultSearchConfig()
	if cfg.TimeBudgetMillis != DefaultTimeBudgetMillis {
		t.Errorf("TimeBudgetMillis = %d, want %d", cfg.TimeBudgetMillis, DefaultTimeBudgetMillis)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, DefaultMaxDepth)
	}
	if cfg.ContemptValue != DefaultContemptValue {
		t.Errorf("ContemptValue = %d, want %d", cfg.ContemptValue, DefaultContemptValue)
	}
}

func TestLoadNeverErrorsWithoutConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := Load()
	if cfg != DefaultSearchConfig() {
		t.Errorf("Load() without a config file = %+v, want defaults", cfg)
	}
}
