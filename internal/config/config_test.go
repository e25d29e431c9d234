package config

import "testing"

func TestDefaultConfigurationValid(t *testing.T) {
	cfg := DefaultConfiguration()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("DefaultConfiguration() failed validation: %v", err)
	}
}

func TestDefaultConfigurationFields(t *testing.T) {
	cfg := DefaultConfiguration()

	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if !cfg.AreSkippedFramesDropped {
		t.Error("AreSkippedFramesDropped = false, want true")
	}
	if cfg.MaxExpectedContentFrameDurationUs != 400_000 {
		t.Errorf("MaxExpectedContentFrameDurationUs = %d, want 400000", cfg.MaxExpectedContentFrameDurationUs)
	}
	if len(cfg.FreezeDurationMsHistogramBuckets) != len(cfg.FreezeDurationMsHistogramToScore) {
		t.Errorf("freeze histogram/score length mismatch: %d buckets, %d divisors",
			len(cfg.FreezeDurationMsHistogramBuckets), len(cfg.FreezeDurationMsHistogramToScore))
	}
	if len(cfg.JudderScoreHistogramBuckets) != len(cfg.JudderScoreHistogramToScore) {
		t.Errorf("judder histogram/score length mismatch: %d buckets, %d divisors",
			len(cfg.JudderScoreHistogramBuckets), len(cfg.JudderScoreHistogramToScore))
	}
}

func TestValidateRejectsNonIncreasingBucketEdges(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.FreezeDurationMsHistogramBuckets = []int32{10, 10, 20}

	if err := Validate(&cfg); err == nil {
		t.Fatal("expected an error for non-increasing bucket edges")
	}
}

func TestValidateRejectsDecreasingBucketEdges(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.JudderScoreHistogramBuckets = []int32{50, 40, 60}

	if err := Validate(&cfg); err == nil {
		t.Fatal("expected an error for decreasing bucket edges")
	}
}

func TestValidateAllowsEmptyBucketEdges(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.FreezeDistanceMsHistogramBuckets = nil

	if err := Validate(&cfg); err != nil {
		t.Errorf("empty bucket edges should be legal, got: %v", err)
	}
}

func TestValidateAllowsMismatchedScoreVectorLength(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.FreezeDurationMsHistogramToScore = []int64{1, 2}

	if err := Validate(&cfg); err != nil {
		t.Errorf("mismatched score-divisor length should not fail validation, got: %v", err)
	}
}

func TestValidateRejectsNonPositiveMaxExpectedDuration(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.MaxExpectedContentFrameDurationUs = 0

	if err := Validate(&cfg); err == nil {
		t.Fatal("expected an error for zero MaxExpectedContentFrameDurationUs")
	}
}

func TestValidateRejectsNegativeTolerances(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Configuration)
	}{
		{"frame rate tolerance", func(c *Configuration) { c.FrameRateDetectionToleranceUs = -1 }},
		{"content time tolerance", func(c *Configuration) { c.ContentTimeAdvancedForLiveContentToleranceUs = -1 }},
		{"judder error tolerance", func(c *Configuration) { c.JudderErrorToleranceUs = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfiguration()
			tt.mutate(&cfg)
			if err := Validate(&cfg); err == nil {
				t.Errorf("expected an error for negative %s", tt.name)
			}
		})
	}
}

func TestValidateAccumulatesMultipleErrors(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.MaxExpectedContentFrameDurationUs = -1
	cfg.FrameRateDetectionToleranceUs = -1
	cfg.FreezeDurationMsHistogramBuckets = []int32{5, 1}

	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestDefaultSimConfig(t *testing.T) {
	cfg := DefaultSimConfig()

	if cfg.Headless {
		t.Error("Headless = true, want false by default")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want %q", cfg.MetricsAddr, ":9090")
	}
}
