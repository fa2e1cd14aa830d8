package layout

// Resize is a two-state machine: Idle and Dragging. Pointer-down on the
// handle starts a drag; every move recomputes the tool panel width from
// the pointer position; pointer-up anywhere ends it. Ending on any
// release is deliberate: it prevents a stuck drag when the pointer
// leaves the handle before release. There is no other exit.

// HandleX returns the leftmost column of the resize handle, the
// boundary between the document pane and the tool panel.
func (c *Controller) HandleX(container int, hasTOC bool) int {
	return container - c.ToolPanelWidth(container, hasTOC) - c.Constants.HandleThickness
}

// OverHandle reports whether a pointer X position is on the handle
func (c *Controller) OverHandle(container int, hasTOC bool, x int) bool {
	if c.State.DocumentHidden || c.State.Narrow {
		return false
	}
	hx := c.HandleX(container, hasTOC)
	return x >= hx && x < hx+c.Constants.HandleThickness
}

// BeginResize enters Dragging. Refused while narrow or with the
// document pane hidden.
func (c *Controller) BeginResize() bool {
	if c.State.Narrow || c.State.DocumentHidden {
		return false
	}
	c.State.Resizing = true
	return true
}

// DragTo recomputes the tool panel width for a pointer position while
// Dragging. The width never overshoots the clamp bounds.
func (c *Controller) DragTo(container, pointerX int) {
	if !c.State.Resizing {
		return
	}
	width := container - pointerX - c.Constants.HandleThickness
	c.State.ToolPanelWidth = c.ClampToolPanelWidth(container, width)
}

// EndResize returns to Idle. Safe to call when already Idle.
func (c *Controller) EndResize() {
	c.State.Resizing = false
}

// ResizeBy adjusts the tool panel width by a delta (keyboard resize),
// under the same clamp as dragging.
func (c *Controller) ResizeBy(container, delta int) {
	if c.State.Narrow || c.State.DocumentHidden {
		return
	}
	c.State.ToolPanelWidth = c.ClampToolPanelWidth(container, c.State.ToolPanelWidth+delta)
}
