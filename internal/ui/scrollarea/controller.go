package scrollarea

import "github.com/rungrid/rungrid/internal/geom"

// Controller is the headless scroll state of one axis: extents, position and
// an optional drag in progress. Offsets passed to it are relative to the start
// of the track.
type Controller struct {
	scrollExtent   int
	viewportExtent int
	position       int
	minThumb       int

	dragging     bool
	dragPointer  int
	dragStartPos int
}

// NewController creates a controller with the given minimum thumb size.
func NewController(minThumb int) *Controller {
	return &Controller{minThumb: max(minThumb, 1)}
}

// SetExtents updates the content and viewport sizes and re-clamps the position.
func (c *Controller) SetExtents(scroll, viewport int) {
	c.scrollExtent = max(scroll, 0)
	c.viewportExtent = max(viewport, 0)
	c.position = geom.Clamp(c.position, 0, c.scrollable())
}

// ScrollTo moves to pos, clamped to the scrollable range.
func (c *Controller) ScrollTo(pos int) {
	c.position = geom.Clamp(pos, 0, c.scrollable())
}

// Position returns the current scroll position.
func (c *Controller) Position() int { return c.position }

// Metrics returns the thumb geometry for the current state.
func (c *Controller) Metrics() Metrics {
	return ComputeMetrics(c.scrollExtent, c.viewportExtent, c.position, c.minThumb)
}

func (c *Controller) scrollable() int {
	return max(c.scrollExtent-c.viewportExtent, 0)
}

func (c *Controller) maxTravel() int {
	m := c.Metrics()
	if !m.CanScroll {
		return 0
	}
	return c.viewportExtent - m.ThumbSize
}

// IsOnThumb reports whether a track offset falls on the thumb.
func (c *Controller) IsOnThumb(offset int) bool {
	m := c.Metrics()
	return m.CanScroll && offset >= m.ThumbOffset && offset < m.ThumbOffset+m.ThumbSize
}

// BeginDrag starts a drag at the given pointer offset. It is refused when the
// thumb is hidden or has no room to travel.
func (c *Controller) BeginDrag(pointer int) bool {
	if c.maxTravel() <= 0 {
		return false
	}
	c.dragging = true
	c.dragPointer = pointer
	c.dragStartPos = c.position
	return true
}

// DragTo applies pointer movement as an absolute position computed from the
// drag origin, so repeated motion never accumulates rounding error. It reports
// whether the position changed.
func (c *Controller) DragTo(pointer int) bool {
	if !c.dragging {
		return false
	}
	travel := c.maxTravel()
	if travel <= 0 {
		return false
	}
	delta := geom.MapLinear(float64(pointer-c.dragPointer), float64(travel), float64(c.scrollable()))
	prev := c.position
	c.ScrollTo(c.dragStartPos + geom.Round(delta))
	return c.position != prev
}

// EndDrag finishes a drag. Safe to call when idle.
func (c *Controller) EndDrag() {
	c.dragging = false
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// TrackPress centres the thumb on offset and scrolls to match. It reports
// whether the position changed.
func (c *Controller) TrackPress(offset int) bool {
	travel := c.maxTravel()
	if travel <= 0 {
		return false
	}
	m := c.Metrics()
	top := geom.Clamp(offset-m.ThumbSize/2, 0, travel)
	prev := c.position
	c.ScrollTo(geom.Round(geom.MapLinear(float64(top), float64(travel), float64(c.scrollable()))))
	return c.position != prev
}
