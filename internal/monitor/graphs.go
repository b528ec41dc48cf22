package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Fixed plotting ranges so a flat series does not fill the whole graph.
const (
	RSSIGraphMin = -100.0
	RSSIGraphMax = -30.0
	SNRGraphMin  = 0.0
	SNRGraphMax  = 60.0
)

// findMinMax returns the minimum and maximum values in a slice.
func findMinMax(data []float64) (minVal, maxVal float64) {
	if len(data) == 0 {
		return 0, 0
	}
	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		n := (val - minVal) / (maxVal - minVal)
		if n < 0 {
			return 0
		}
		if n > 1 {
			return 1
		}
		return n
	}
	return 0.5
}

// RenderSparkline renders one row of block characters scaled to [minVal, maxVal].
// Fewer points than width are right-aligned so the newest sample sits at the edge.
func RenderSparkline(data []float64, width int, minVal, maxVal float64) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	points := data
	if len(points) > width {
		points = resampleData(points, width)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(points)))
	for _, v := range points {
		idx := int(normalizeValue(v, minVal, maxVal) * float64(len(sparklineBlocks)-1))
		b.WriteRune(sparklineBlocks[idx])
	}
	return b.String()
}

// RenderAutoSparkline scales the sparkline to the data's own range.
func RenderAutoSparkline(data []float64, width int) string {
	minVal, maxVal := findMinMax(data)
	return RenderSparkline(data, width, minVal, maxVal)
}

// RenderColoredSparkline renders a sparkline colored by the latest value.
func RenderColoredSparkline(data []float64, width int, minVal, maxVal float64, colorFor func(float64) lipgloss.Color) string {
	line := RenderSparkline(data, width, minVal, maxVal)
	if line == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(colorFor(data[len(data)-1])).Render(line)
}

// resampleData shrinks data to targetSize, keeping the maximum of each bucket
// so short spikes stay visible.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) <= targetSize {
		return data
	}

	result := make([]float64, targetSize)
	bucketSize := float64(len(data)) / float64(targetSize)
	for i := 0; i < targetSize; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}

		maxVal := data[start]
		for j := start + 1; j < end; j++ {
			if data[j] > maxVal {
				maxVal = data[j]
			}
		}
		result[i] = maxVal
	}
	return result
}
