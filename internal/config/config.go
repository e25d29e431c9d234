// Package config provides configuration management for vrqtrack.
package config

// Configuration holds the immutable, per-session tuning parameters for the
// render quality tracker. Every field has a documented default; construct
// one with DefaultConfiguration and override only what you need.
type Configuration struct {
	// Enabled turns the whole tracker on or off. When false, every ingress
	// event and the metrics snapshot are no-ops.
	Enabled bool `json:"enabled"`

	// AreSkippedFramesDropped treats app-initiated skips as drops: each
	// skipped frame is processed as a dropped frame and counted in
	// FrameDroppedCount as well as FrameSkippedCount.
	AreSkippedFramesDropped bool `json:"are_skipped_frames_dropped"`

	// MaxExpectedContentFrameDurationUs is the largest forward jump in
	// content time that is not automatically treated as a discontinuity
	// (seek or playlist change).
	MaxExpectedContentFrameDurationUs int32 `json:"max_expected_content_frame_duration_us"`

	// FrameRateDetectionToleranceUs is the allowed drift between window
	// samples when detecting a stable frame rate.
	FrameRateDetectionToleranceUs int32 `json:"frame_rate_detection_tolerance_us"`

	// ContentTimeAdvancedForLiveContentToleranceUs is the allowed gap
	// between a content-time jump and the corresponding desired-render
	// gap before the jump is treated as a seek rather than a live frame
	// drop.
	ContentTimeAdvancedForLiveContentToleranceUs int32 `json:"content_time_advanced_for_live_content_tolerance_us"`

	// FreezeDurationMsHistogramBuckets are the ordered bucket edges (ms)
	// for the freeze-duration histogram.
	FreezeDurationMsHistogramBuckets []int32 `json:"freeze_duration_ms_histogram_buckets"`

	// FreezeDurationMsHistogramToScore are the per-bucket divisors used
	// to compute FreezeScore. Left empty (or mismatched in length with
	// FreezeDurationMsHistogramBuckets) disables the scalar score.
	FreezeDurationMsHistogramToScore []int64 `json:"freeze_duration_ms_histogram_to_score"`

	// FreezeDistanceMsHistogramBuckets are the ordered bucket edges (ms)
	// for the histogram of gaps between successive freezes.
	FreezeDistanceMsHistogramBuckets []int32 `json:"freeze_distance_ms_histogram_buckets"`

	// JudderErrorToleranceUs is the minimum |actual - content| duration
	// error, in microseconds, before a frame is scored for judder.
	JudderErrorToleranceUs int32 `json:"judder_error_tolerance_us"`

	// JudderScoreHistogramBuckets are the ordered bucket edges (ms) for
	// the judder-score histogram.
	JudderScoreHistogramBuckets []int32 `json:"judder_score_histogram_buckets"`

	// JudderScoreHistogramToScore are the per-bucket divisors used to
	// compute JudderScore. Same length-match rule as freeze.
	JudderScoreHistogramToScore []int64 `json:"judder_score_histogram_to_score"`
}

// DefaultConfiguration returns a Configuration with the same defaults as
// the reference implementation this tracker is modeled on.
func DefaultConfiguration() Configuration {
	return Configuration{
		Enabled:                 true,
		AreSkippedFramesDropped: true,

		// 400ms is 8 frames at 20fps and 24 frames at 60fps.
		MaxExpectedContentFrameDurationUs: 400_000,

		FrameRateDetectionToleranceUs: 2_000,

		ContentTimeAdvancedForLiveContentToleranceUs: 200_000,

		FreezeDurationMsHistogramBuckets: []int32{1, 20, 40, 60, 80, 100, 120, 150, 175, 225, 300, 400, 500},
		FreezeDurationMsHistogramToScore: []int64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		FreezeDistanceMsHistogramBuckets: []int32{0, 20, 100, 400, 1000, 2000, 3000, 4000, 8000, 15000, 30000, 60000},

		JudderErrorToleranceUs:      2_000,
		JudderScoreHistogramBuckets: []int32{1, 4, 5, 9, 11, 20, 30, 40, 50, 60, 70, 80},
		JudderScoreHistogramToScore: []int64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
}
