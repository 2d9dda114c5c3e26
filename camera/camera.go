// Package camera maps between grid cells and field pixels, with pan and
// zoom over a bounded (non-wrapping) world.
package camera

// Camera controls the viewport into the grid.
type Camera struct {
	// Position is the view center in grid units (cell (x, y) spans [x, x+1))
	X, Y float32

	// Zoom level on top of the fit-to-viewport scale (1.0 = whole grid visible)
	Zoom float32

	// Viewport dimensions in pixels
	ViewportW, ViewportH float32

	// Grid dimensions in cells
	WorldW, WorldH float32

	MaxZoom float32
}

// New creates a camera showing the whole grid.
func New(viewportW, viewportH float32, gridW, gridH int) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    float32(gridW),
		WorldH:    float32(gridH),
		MaxZoom:   8.0,
	}
	c.Reset()
	return c
}

// Scale returns pixels per grid unit along each axis.
func (c *Camera) Scale() (sx, sy float32) {
	return c.ViewportW / c.WorldW * c.Zoom, c.ViewportH / c.WorldH * c.Zoom
}

// WorldToScreen converts grid coordinates to viewport pixels.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	kx, ky := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*kx
	sy = c.ViewportH/2 + (wy-c.Y)*ky
	return sx, sy
}

// ScreenToWorld converts viewport pixels to grid coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	kx, ky := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/kx
	wy = c.Y + (sy-c.ViewportH/2)/ky
	return wx, wy
}

// CellAt returns the grid cell under a viewport pixel, or false outside
// the grid.
func (c *Camera) CellAt(sx, sy float32) (x, y int, ok bool) {
	wx, wy := c.ScreenToWorld(sx, sy)
	if wx < 0 || wy < 0 || wx >= c.WorldW || wy >= c.WorldH {
		return 0, 0, false
	}
	return int(wx), int(wy), true
}

// IsVisible reports whether any part of cell (x, y) is in the viewport.
func (c *Camera) IsVisible(x, y int) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return float32(x+1) > minX && float32(x) < maxX && float32(y+1) > minY && float32(y) < maxY
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	kx, ky := c.Scale()
	c.X += dx / kx
	c.Y += dy / ky
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to [1, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, 1, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset shows the whole grid again.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the grid-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.WorldW / (2 * c.Zoom)
	halfH := c.WorldH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampCenter keeps the view inside the grid.
func (c *Camera) clampCenter() {
	halfW := c.WorldW / (2 * c.Zoom)
	halfH := c.WorldH / (2 * c.Zoom)
	c.X = clamp(c.X, halfW, c.WorldW-halfW)
	c.Y = clamp(c.Y, halfH, c.WorldH-halfH)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
