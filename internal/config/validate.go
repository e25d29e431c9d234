package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a single configuration problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Configuration for internal inconsistencies that would
// make the tracker's histogram setup meaningless. It does NOT reject a
// length mismatch between a histogram and its score-divisor vector — the
// tracker's own behavior is to silently disable the scalar score in that
// case, not to fail construction.
func Validate(cfg *Configuration) error {
	var errs []error

	errs = append(errs, validateBucketEdges("freeze_duration_ms_histogram_buckets", cfg.FreezeDurationMsHistogramBuckets)...)
	errs = append(errs, validateBucketEdges("freeze_distance_ms_histogram_buckets", cfg.FreezeDistanceMsHistogramBuckets)...)
	errs = append(errs, validateBucketEdges("judder_score_histogram_buckets", cfg.JudderScoreHistogramBuckets)...)

	if cfg.MaxExpectedContentFrameDurationUs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "max_expected_content_frame_duration_us",
			Message: "must be positive",
		})
	}
	if cfg.FrameRateDetectionToleranceUs < 0 {
		errs = append(errs, ValidationError{
			Field:   "frame_rate_detection_tolerance_us",
			Message: "must not be negative",
		})
	}
	if cfg.ContentTimeAdvancedForLiveContentToleranceUs < 0 {
		errs = append(errs, ValidationError{
			Field:   "content_time_advanced_for_live_content_tolerance_us",
			Message: "must not be negative",
		})
	}
	if cfg.JudderErrorToleranceUs < 0 {
		errs = append(errs, ValidationError{
			Field:   "judder_error_tolerance_us",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// validateBucketEdges requires a strictly increasing sequence. A
// zero-length vector is legal — the histogram degrades to a no-op counter.
func validateBucketEdges(field string, edges []int32) []error {
	var errs []error
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("bucket edges must be strictly increasing (edge %d: %d <= edge %d: %d)", i, edges[i], i-1, edges[i-1]),
			})
			break
		}
	}
	return errs
}
