package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"vrqtrack/internal/histogram"
)

// =============================================================================
// Main View Rendering
// =============================================================================

// renderDashboard renders the full dashboard.
func (m Model) renderDashboard() string {
	var sections []string

	sections = append(sections, m.renderHeader())

	if m.haveStats {
		sections = append(sections, m.renderCounters())
		sections = append(sections, m.renderFrameRates())
		sections = append(sections, m.renderScores())
		sections = append(sections, m.renderHistogram("Freeze Duration (ms)", m.metrics.FreezeDurationMsHistogram))
		sections = append(sections, m.renderHistogram("Judder Score", m.metrics.JudderScoreHistogram))
	} else {
		sections = append(sections, boxStyle.Width(m.width-2).Render(statusInfo.Render("waiting for first snapshot...")))
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// Header
// =============================================================================

func (m Model) renderHeader() string {
	dropLabel := GetDropLabel(m.DropRate())

	header := fmt.Sprintf(
		" vrqtrack-sim │ %s │ Elapsed: %s ",
		dropLabel,
		formatDuration(m.Elapsed()),
	)

	return headerStyle.Width(m.width).Render(header)
}

// =============================================================================
// Frame Counters
// =============================================================================

func (m Model) renderCounters() string {
	mx := m.metrics

	rows := []string{
		RenderKeyValueWide("Released", formatNumber(mx.FrameReleasedCount)),
		RenderKeyValueWide("Rendered", formatNumber(mx.FrameRenderedCount)),
		RenderKeyValueWide("Dropped", formatNumber(mx.FrameDroppedCount)),
		RenderKeyValueWide("Skipped", formatNumber(mx.FrameSkippedCount)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{sectionHeaderStyle.Render("Frame Counters")}, rows...)...,
	)

	return boxStyle.Width(m.width - 2).Render(content)
}

// =============================================================================
// Frame Rates
// =============================================================================

func (m Model) renderFrameRates() string {
	mx := m.metrics

	rows := []string{
		RenderKeyValueWide("Content", formatFrameRate(mx.ContentFrameRate)),
		RenderKeyValueWide("Desired", formatFrameRate(mx.DesiredFrameRate)),
		RenderKeyValueWide("Actual", formatFrameRate(mx.ActualFrameRate)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{sectionHeaderStyle.Render("Detected Frame Rates")}, rows...)...,
	)

	return boxStyle.Width(m.width - 2).Render(content)
}

// =============================================================================
// Freeze / Judder Scores
// =============================================================================

func (m Model) renderScores() string {
	mx := m.metrics

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Left,
			labelWideStyle.Render("Freeze Score:"),
			valueStyle.Render(formatScore(mx.FreezeScore)),
			mutedStyle.Render("   rate "),
			GetRateLabel(mx.FreezeRate),
		),
		lipgloss.JoinHorizontal(lipgloss.Left,
			labelWideStyle.Render("Judder Score:"),
			valueStyle.Render(formatScore(mx.JudderScore)),
			mutedStyle.Render("   rate "),
			GetRateLabel(mx.JudderRate),
		),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{sectionHeaderStyle.Render("Smoothness Scores")}, rows...)...,
	)

	return boxStyle.Width(m.width - 2).Render(content)
}

// =============================================================================
// Histograms
// =============================================================================

// renderHistogram draws one row per bucket as a label/count pair plus an
// ASCII bar scaled to the busiest bucket, in the same table idiom as the
// dashboard's other tabular sections.
func (m Model) renderHistogram(title string, h *histogram.Histogram) string {
	if h == nil || h.Len() == 0 {
		return boxStyle.Width(m.width - 2).Render(
			lipgloss.JoinVertical(lipgloss.Left, sectionHeaderStyle.Render(title), dimStyle.Render("(no buckets configured)")),
		)
	}

	var maxCount int64
	for i := 0; i < h.Len(); i++ {
		if c := h.BucketCount(i); c > maxCount {
			maxCount = c
		}
	}

	barWidth := m.width - 40
	if barWidth < 10 {
		barWidth = 10
	}

	rows := []string{tableHeaderStyle.Render(fmt.Sprintf("%-10s %8s  %s", "bucket", "count", "distribution"))}
	for i := 0; i < h.Len(); i++ {
		count := h.BucketCount(i)
		bar := histogramBar(count, maxCount, barWidth)
		rowStyle := tableRowEvenStyle
		if i%2 == 1 {
			rowStyle = tableRowOddStyle
		}
		rows = append(rows, rowStyle.Render(fmt.Sprintf("%-10s %8s  %s", bucketLabel(i), formatNumber(count), bar)))
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("total: %s   sum: %s", formatNumber(h.Count()), formatNumber(h.Sum()))))

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{sectionHeaderStyle.Render(title)}, rows...)...,
	)

	return boxStyle.Width(m.width - 2).Render(content)
}

func bucketLabel(i int) string {
	return fmt.Sprintf("[%d]", i)
}

func histogramBar(count, maxCount int64, width int) string {
	if maxCount == 0 {
		return progressBarEmptyStyle.Render(repeatChar('░', width))
	}
	filled := int(float64(count) / float64(maxCount) * float64(width))
	if filled > width {
		filled = width
	}
	return progressBarStyle.Render(repeatChar('█', filled)) +
		progressBarEmptyStyle.Render(repeatChar('░', width-filled))
}

// =============================================================================
// Footer
// =============================================================================

func (m Model) renderFooter() string {
	return footerStyle.Render("q: quit   r: refresh")
}
