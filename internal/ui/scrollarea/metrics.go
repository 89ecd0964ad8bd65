// Package scrollarea provides a scrollable region with a synthetic scrollbar:
// pure thumb geometry, a headless drag controller and a Bubble Tea model that
// wraps a viewport.
package scrollarea

import "github.com/rungrid/rungrid/internal/geom"

// Metrics describes the synthetic thumb along one axis.
type Metrics struct {
	CanScroll   bool
	ThumbSize   int
	ThumbOffset int
}

// ComputeMetrics derives thumb geometry. The thumb only appears when the
// content exceeds the viewport by more than one cell, which absorbs rounding
// at the boundary. The thumb is never smaller than minThumb, even when that
// is longer than the track; such a thumb fills the track and cannot travel.
func ComputeMetrics(scrollExtent, viewportExtent, position, minThumb int) Metrics {
	if viewportExtent <= 0 || scrollExtent <= viewportExtent+1 {
		return Metrics{}
	}

	thumb := geom.Round(float64(viewportExtent) / float64(scrollExtent) * float64(viewportExtent))
	thumb = max(thumb, minThumb, 1)

	offset := 0
	if distance := scrollExtent - viewportExtent; distance > 0 {
		offset = geom.Round(float64(position) / float64(distance) * float64(viewportExtent-thumb))
	}

	return Metrics{
		CanScroll:   true,
		ThumbSize:   thumb,
		ThumbOffset: geom.Clamp(offset, 0, viewportExtent-thumb),
	}
}
