// Package geometry maps saved window placement onto whatever displays are
// present at restart. It deals only in plain value records; callers build
// Display values from the live windowing system, so resolution is a pure
// function and unit-testable without platform APIs.
package geometry

// Rect is a screen rectangle in global display coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Intersects reports whether r and other overlap in both axes.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// CenterIn returns r centered inside bounds with its size unchanged.
func (r Rect) CenterIn(bounds Rect) Rect {
	return Rect{
		X:      bounds.X + (bounds.Width-r.Width)/2,
		Y:      bounds.Y + (bounds.Height-r.Height)/2,
		Width:  r.Width,
		Height: r.Height,
	}
}

// clampInto shifts r so it lies inside bounds, size unchanged. A rect larger
// than bounds pins to the bounds origin.
func (r Rect) clampInto(bounds Rect) Rect {
	out := r
	if out.X+out.Width > bounds.X+bounds.Width {
		out.X = bounds.X + bounds.Width - out.Width
	}
	if out.X < bounds.X {
		out.X = bounds.X
	}
	if out.Y+out.Height > bounds.Y+bounds.Height {
		out.Y = bounds.Y + bounds.Height - out.Height
	}
	if out.Y < bounds.Y {
		out.Y = bounds.Y
	}
	return out
}

// Display describes one display at a point in time: its identity, full
// frame, and the visible frame left after menu bars and docks.
type Display struct {
	ID      int64 `json:"id"`
	Frame   Rect  `json:"frame"`
	Visible Rect  `json:"visible"`
}

// ResolveFrame computes the frame to apply to a restored window.
//
// A live display matching the saved display's id anchors the window at the
// same per-axis fractional offset it had on that display at save time, then
// clamps into the live visible frame; this keeps "near the left edge of its
// display" true even when displays were rearranged. Failing that, a saved
// frame that still intersects some live visible frame is kept as-is, first
// display in list order winning ties. Otherwise the window is offscreen and
// is centered on the fallback display, size preserved; a nil fallback means
// the first live display. Returns nil when the caller should use its default
// placement.
func ResolveFrame(saved *Rect, savedDisplay *Display, displays []Display, fallback *Display) *Rect {
	if saved == nil {
		return nil
	}

	if savedDisplay != nil {
		for _, d := range displays {
			if d.ID == savedDisplay.ID {
				out := remap(*saved, *savedDisplay, d).clampInto(d.Visible)
				return &out
			}
		}
	}

	for _, d := range displays {
		if saved.Intersects(d.Visible) {
			out := *saved
			return &out
		}
	}

	if fallback == nil {
		if len(displays) == 0 {
			return nil
		}
		fallback = &displays[0]
	}
	out := saved.CenterIn(fallback.Visible)
	return &out
}

// remap carries the window's per-axis fractional offset from its saved
// display over to the live display's frame. Size is preserved.
func remap(saved Rect, from, to Display) Rect {
	out := saved
	if from.Frame.Width > 0 {
		out.X = to.Frame.X + (saved.X-from.Frame.X)/from.Frame.Width*to.Frame.Width
	} else {
		out.X = to.Frame.X + (saved.X - from.Frame.X)
	}
	if from.Frame.Height > 0 {
		out.Y = to.Frame.Y + (saved.Y-from.Frame.Y)/from.Frame.Height*to.Frame.Height
	} else {
		out.Y = to.Frame.Y + (saved.Y - from.Frame.Y)
	}
	return out
}
