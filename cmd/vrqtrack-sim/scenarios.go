package main

import "vrqtrack/internal/vrqtrack"

// scenario is one named step of the scripted trace. Each step mutates the
// shared tracker directly, mirroring the concrete scenarios the tracker's
// own behavior is specified against.
type scenario struct {
	name string
	run  func(tr *vrqtrack.Tracker)
}

// scenarios returns the fixed trace vrqtrack-sim replays: steady 60fps,
// a single drop that produces a freeze, a backward seek, a 3:2 pulldown
// run, a tunnel-mode B-after-P reorder, and skips before/after the first
// render.
func scenarios() []scenario {
	return []scenario{
		{
			name: "steady 60fps, no drops",
			run: func(tr *vrqtrack.Tracker) {
				for _, ct := range []int64{0, 16_667, 33_334, 50_001, 66_668} {
					tr.OnFrameReleasedAt(ct, ct*1000)
					tr.OnFrameRendered(ct, ct*1000)
				}
			},
		},
		{
			name: "one drop produces a freeze",
			run: func(tr *vrqtrack.Tracker) {
				base := int64(100_000)
				release := func(ct int64) { tr.OnFrameReleasedAt(base+ct, (base+ct)*1000) }
				render := func(ct, actualUs int64) { tr.OnFrameRendered(base+ct, (base+actualUs)*1000) }

				release(0)
				release(16_667)
				release(33_334)
				release(50_001)
				release(66_668)

				render(0, 0)
				render(16_667, 16_667)
				// content at +33334 is never rendered directly; it drops
				// when +50001 renders, producing one freeze sample.
				render(50_001, 50_000)
				render(66_668, 66_667)
			},
		},
		{
			name: "backward seek resets duration rings",
			run: func(tr *vrqtrack.Tracker) {
				base := int64(300_000)
				tr.OnFrameReleasedAt(base, base*1000)
				tr.OnFrameRendered(base, base*1000)
				tr.OnFrameReleasedAt(base+16_667, (base+16_667)*1000)
				tr.OnFrameRendered(base+16_667, (base+16_667)*1000)
				tr.OnFrameReleasedAt(base+33_334, (base+33_334)*1000)
				tr.OnFrameRendered(base+33_334, (base+33_334)*1000)

				// Seek back to the start of this run's content range.
				seekAt := (base + 33_334 + 400_001) * 1000
				tr.OnFrameReleasedAt(base, seekAt)
				tr.OnFrameRendered(base, seekAt)
			},
		},
		{
			name: "3:2 pulldown suppresses judder",
			run: func(tr *vrqtrack.Tracker) {
				contentTimes := []int64{700_000, 741_667, 783_334, 825_001, 866_668, 908_335}
				actualTimes := []int64{700_000, 733_333, 783_333, 816_666, 866_666, 900_000}
				for i := range contentTimes {
					tr.OnFrameReleasedAt(contentTimes[i], actualTimes[i]*1000)
					tr.OnFrameRendered(contentTimes[i], actualTimes[i]*1000)
				}
			},
		},
		{
			name: "tunnel B-after-P reorder",
			run: func(tr *vrqtrack.Tracker) {
				base := int64(950_000)
				tr.OnFrameReleasedAt(base, base*1000)
				tr.OnFrameRendered(base, base*1000)

				tr.OnTunnelFrameQueued(base + 100)
				tr.OnTunnelFrameQueued(base + 50) // B-frame releases immediately
				tr.OnFrameRendered(base+100, (base+1_000)*1000)
			},
		},
		{
			name: "skips before first render discarded, mid-stream skips counted",
			run: func(tr *vrqtrack.Tracker) {
				base := int64(1_100_000)

				// Force a discontinuity reset (without rendering) so the
				// skips below genuinely land before this session's first
				// render, the case the spec's discard rule is about.
				tr.OnFrameReleasedAt(0, 0)

				tr.OnFrameSkipped(base)
				tr.OnFrameSkipped(base + 1)
				tr.OnFrameReleasedAt(base, base*1000)
				tr.OnFrameRendered(base, base*1000)

				tr.OnFrameSkipped(base + 20_000)
				tr.OnFrameSkipped(base + 30_000)
				tr.OnFrameReleasedAt(base+33_334, (base+33_334)*1000)
				tr.OnFrameRendered(base+33_334, (base+33_334)*1000)
			},
		},
	}
}
