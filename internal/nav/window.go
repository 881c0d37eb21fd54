package nav

// Window is the contiguous row range [Start, End) that should be materialized.
type Window struct {
	Start       int
	End         int
	Virtualized bool
}

func (w Window) Len() int { return w.End - w.Start }

func (w Window) Contains(i int) bool { return i >= w.Start && i < w.End }

// SetViewport sets the number of rows the scroll viewport can show.
func (n *Navigator) SetViewport(height int) {
	if height < 1 {
		height = 1
	}
	n.height = height
	n.clampOffset()
	n.scrollIntoView()
}

// ScrollTo handles a scroll-position event. It is cheap enough to call on every event.
func (n *Navigator) ScrollTo(offset int) {
	n.offset = offset
	n.clampOffset()
}

// ScrollBy scrolls by delta rows.
func (n *Navigator) ScrollBy(delta int) {
	n.ScrollTo(n.offset + delta)
}

func (n *Navigator) Offset() int { return n.offset }
func (n *Navigator) Height() int { return n.height }

// Virtualized reports whether the row count is above the threshold.
func (n *Navigator) Virtualized() bool {
	return len(n.rows) > n.opts.VirtualizeThreshold
}

// Window returns the rows to materialize: everything below the threshold, otherwise the
// viewport plus overscan on both sides.
func (n *Navigator) Window() Window {
	total := len(n.rows)
	if !n.Virtualized() {
		return Window{Start: 0, End: total}
	}
	start := n.offset - n.opts.Overscan
	if start < 0 {
		start = 0
	}
	end := n.offset + n.height + n.opts.Overscan
	if end > total {
		end = total
	}
	return Window{Start: start, End: end, Virtualized: true}
}

// Viewport returns the rows currently inside the scroll viewport, a subrange of Window.
func (n *Navigator) Viewport() Window {
	total := len(n.rows)
	end := n.offset + n.height
	if end > total {
		end = total
	}
	return Window{Start: n.offset, End: end, Virtualized: n.Virtualized()}
}

// scrollIntoView moves the viewport so the active row is inside it.
func (n *Navigator) scrollIntoView() {
	i := n.ActiveIndex()
	if i < 0 {
		n.clampOffset()
		return
	}
	if i < n.offset {
		n.offset = i
	}
	if i >= n.offset+n.height {
		n.offset = i - n.height + 1
	}
	n.clampOffset()
}

func (n *Navigator) clampOffset() {
	maxOffset := len(n.rows) - n.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.offset > maxOffset {
		n.offset = maxOffset
	}
	if n.offset < 0 {
		n.offset = 0
	}
}
