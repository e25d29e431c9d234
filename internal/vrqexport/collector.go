// Package vrqexport is a host-side adapter that periodically reads a
// tracker's metrics snapshot and republishes it as Prometheus collectors
// and t-digest percentile estimates. It owns no tracker state and never
// calls a tracker's ingress methods.
package vrqexport

import (
	"sync"

	"github.com/influxdata/tdigest"
	"github.com/prometheus/client_golang/prometheus"

	"vrqtrack/internal/histogram"
	"vrqtrack/internal/vrqtrack"
)

// Collector republishes a Tracker's Metrics snapshot on demand.
type Collector struct {
	frameReleasedTotal prometheus.Gauge
	frameRenderedTotal prometheus.Gauge
	frameDroppedTotal  prometheus.Gauge
	frameSkippedTotal  prometheus.Gauge

	contentFrameRate prometheus.Gauge
	desiredFrameRate prometheus.Gauge
	actualFrameRate  prometheus.Gauge

	freezeDurationMs prometheus.Histogram
	judderScoreMs    prometheus.Histogram

	freezeScore prometheus.Gauge
	freezeRate  prometheus.Gauge
	judderScore prometheus.Gauge
	judderRate  prometheus.Gauge

	freezeDurationDigest   *tdigest.TDigest
	freezeDurationDigestMu sync.Mutex

	judderScoreDigest   *tdigest.TDigest
	judderScoreDigestMu sync.Mutex

	freezeDurationP50 prometheus.Gauge
	freezeDurationP95 prometheus.Gauge
	freezeDurationP99 prometheus.Gauge

	judderScoreP50 prometheus.Gauge
	judderScoreP95 prometheus.Gauge
	judderScoreP99 prometheus.Gauge

	// freezeDurationEdges and judderScoreEdges mirror the bucket edges the
	// tracker's own histograms were built with, so a bucket index can be
	// turned back into a representative sample value.
	freezeDurationEdges []int32
	judderScoreEdges    []int32

	// freezeDurationSeen and judderScoreSeen hold the last per-bucket
	// counts observed, so repeated polls of the tracker's ever-growing
	// histograms feed only the newly-arrived samples forward.
	freezeDurationSeen []int64
	judderScoreSeen    []int64
}

// CollectorConfig holds the histogram bucket edges (in the tracker's own
// millisecond units, converted to float64 boundaries for Prometheus) used
// to build the Prometheus histogram collectors.
type CollectorConfig struct {
	FreezeDurationMsBuckets []int32
	JudderScoreMsBuckets    []int32
}

// NewCollector creates a Collector registered against the default
// Prometheus registerer.
func NewCollector(cfg CollectorConfig) *Collector {
	return NewCollectorWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a Collector against a custom registry.
// Useful for tests, which should not pollute the default registry.
func NewCollectorWithRegistry(cfg CollectorConfig, registry prometheus.Registerer) *Collector {
	c := &Collector{
		frameReleasedTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_frame_released",
			Help: "Frames handed from the decoder to the renderer, cumulative for the session.",
		}),
		frameRenderedTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_frame_rendered",
			Help: "Frames actually displayed, cumulative for the session.",
		}),
		frameDroppedTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_frame_dropped",
			Help: "Frames discarded by the renderer before display, cumulative for the session.",
		}),
		frameSkippedTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_frame_skipped",
			Help: "Frames discarded by the decoder before entering the render queue, cumulative for the session.",
		}),

		contentFrameRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_content_frame_rate",
			Help: "Detected content frame rate (-1 undetermined, -2 3:2 pulldown).",
		}),
		desiredFrameRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_desired_frame_rate",
			Help: "Detected desired-render frame rate (-1 undetermined, -2 3:2 pulldown).",
		}),
		actualFrameRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_actual_frame_rate",
			Help: "Detected actual-render frame rate (-1 undetermined, -2 3:2 pulldown).",
		}),

		freezeDurationMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vrqtrack_freeze_duration_milliseconds",
			Help:    "Freeze durations between renders.",
			Buckets: bucketsToFloat(cfg.FreezeDurationMsBuckets),
		}),
		judderScoreMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vrqtrack_judder_score_milliseconds",
			Help:    "Judder scores for contiguous rendered frames.",
			Buckets: bucketsToFloat(cfg.JudderScoreMsBuckets),
		}),

		freezeScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_freeze_score",
			Help: "Bucket-divisor freeze scalar score.",
		}),
		freezeRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_freeze_rate",
			Help: "Freeze duration sum per millisecond of render span.",
		}),
		judderScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_judder_score",
			Help: "Bucket-divisor judder scalar score.",
		}),
		judderRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrqtrack_judder_rate",
			Help: "Judder samples per released-or-skipped frame.",
		}),

		freezeDurationDigest: tdigest.NewWithCompression(100),
		judderScoreDigest:    tdigest.NewWithCompression(100),

		freezeDurationP50: prometheus.NewGauge(prometheus.GaugeOpts{Name: "vrqtrack_freeze_duration_p50_milliseconds", Help: "Freeze duration 50th percentile."}),
		freezeDurationP95: prometheus.NewGauge(prometheus.GaugeOpts{Name: "vrqtrack_freeze_duration_p95_milliseconds", Help: "Freeze duration 95th percentile."}),
		freezeDurationP99: prometheus.NewGauge(prometheus.GaugeOpts{Name: "vrqtrack_freeze_duration_p99_milliseconds", Help: "Freeze duration 99th percentile."}),

		judderScoreP50: prometheus.NewGauge(prometheus.GaugeOpts{Name: "vrqtrack_judder_score_p50_milliseconds", Help: "Judder score 50th percentile."}),
		judderScoreP95: prometheus.NewGauge(prometheus.GaugeOpts{Name: "vrqtrack_judder_score_p95_milliseconds", Help: "Judder score 95th percentile."}),
		judderScoreP99: prometheus.NewGauge(prometheus.GaugeOpts{Name: "vrqtrack_judder_score_p99_milliseconds", Help: "Judder score 99th percentile."}),

		freezeDurationEdges: cfg.FreezeDurationMsBuckets,
		judderScoreEdges:    cfg.JudderScoreMsBuckets,
		freezeDurationSeen:  make([]int64, len(cfg.FreezeDurationMsBuckets)),
		judderScoreSeen:     make([]int64, len(cfg.JudderScoreMsBuckets)),
	}

	registry.MustRegister(
		c.frameReleasedTotal, c.frameRenderedTotal, c.frameDroppedTotal, c.frameSkippedTotal,
		c.contentFrameRate, c.desiredFrameRate, c.actualFrameRate,
		c.freezeDurationMs, c.judderScoreMs,
		c.freezeScore, c.freezeRate, c.judderScore, c.judderRate,
		c.freezeDurationP50, c.freezeDurationP95, c.freezeDurationP99,
		c.judderScoreP50, c.judderScoreP95, c.judderScoreP99,
	)

	return c
}

// bucketsToFloat converts the tracker's int32 millisecond bucket edges
// into the float64 boundaries Prometheus histograms expect.
func bucketsToFloat(edges []int32) []float64 {
	out := make([]float64, len(edges))
	for i, e := range edges {
		out[i] = float64(e)
	}
	return out
}

// Observe republishes one metrics snapshot. It is safe to call
// repeatedly (e.g. on a scrape-interval ticker); counters are set, not
// added, since Metrics() already reports cumulative totals.
func (c *Collector) Observe(m vrqtrack.Metrics) {
	c.frameReleasedTotal.Set(float64(m.FrameReleasedCount))
	c.frameRenderedTotal.Set(float64(m.FrameRenderedCount))
	c.frameDroppedTotal.Set(float64(m.FrameDroppedCount))
	c.frameSkippedTotal.Set(float64(m.FrameSkippedCount))

	c.contentFrameRate.Set(m.ContentFrameRate)
	c.desiredFrameRate.Set(m.DesiredFrameRate)
	c.actualFrameRate.Set(m.ActualFrameRate)

	c.freezeScore.Set(float64(m.FreezeScore))
	c.freezeRate.Set(m.FreezeRate)
	c.judderScore.Set(float64(m.JudderScore))
	c.judderRate.Set(m.JudderRate)

	c.observeHistogramDelta(c.freezeDurationEdges, c.freezeDurationSeen, c.freezeDurationMs, &c.freezeDurationDigestMu, c.freezeDurationDigest, m.FreezeDurationMsHistogram)
	c.observeHistogramDelta(c.judderScoreEdges, c.judderScoreSeen, c.judderScoreMs, &c.judderScoreDigestMu, c.judderScoreDigest, m.JudderScoreHistogram)

	c.freezeDurationDigestMu.Lock()
	c.freezeDurationP50.Set(c.freezeDurationDigest.Quantile(0.50))
	c.freezeDurationP95.Set(c.freezeDurationDigest.Quantile(0.95))
	c.freezeDurationP99.Set(c.freezeDurationDigest.Quantile(0.99))
	c.freezeDurationDigestMu.Unlock()

	c.judderScoreDigestMu.Lock()
	c.judderScoreP50.Set(c.judderScoreDigest.Quantile(0.50))
	c.judderScoreP95.Set(c.judderScoreDigest.Quantile(0.95))
	c.judderScoreP99.Set(c.judderScoreDigest.Quantile(0.99))
	c.judderScoreDigestMu.Unlock()
}

// observeHistogramDelta feeds a Prometheus histogram and a t-digest from a
// tracker histogram snapshot. The tracker histogram only ever grows, so
// each bucket's newly-arrived count since the last poll is replayed using
// the bucket's lower edge as the representative sample value; seen holds
// the per-bucket counts already accounted for and is updated in place.
func (c *Collector) observeHistogramDelta(edges []int32, seen []int64, hist prometheus.Histogram, mu *sync.Mutex, digest *tdigest.TDigest, snapshot *histogram.Histogram) {
	if snapshot == nil || len(edges) != snapshot.Len() {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	for i := 0; i < snapshot.Len(); i++ {
		count := snapshot.BucketCount(i)
		delta := count - seen[i]
		if delta <= 0 {
			continue
		}

		value := float64(edges[i])
		for j := int64(0); j < delta; j++ {
			hist.Observe(value)
		}
		digest.Add(value, float64(delta))
		seen[i] = count
	}
}
