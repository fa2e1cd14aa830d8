// Package layout derives pane geometry for the contents, document and
// tool panes from a small set of inputs, and tracks interactive
// resizing of the document/tool-panel split. The engine is unit
// agnostic: Constants carry the calibration, so the same rules serve
// pixel-exact tests and cell-based terminal rendering.
package layout

// Constants parameterize the geometry engine
type Constants struct {
	ContentsCollapsedWidth int
	ContentsExpandedWidth  int
	HandleThickness        int
	MinToolPanelWidth      int
	MaxToolPanelFrac       float64 // fraction of container width, document visible
	HiddenDocMargin        int     // max = container - margin when document hidden
	NarrowBreakpoint       int
	NarrowToolPanelWidth   int
}

// DefaultConstants keeps the pixel calibration of the original design
func DefaultConstants() Constants {
	return Constants{
		ContentsCollapsedWidth: 48,
		ContentsExpandedWidth:  240,
		HandleThickness:        8,
		MinToolPanelWidth:      280,
		MaxToolPanelFrac:       0.6,
		HiddenDocMargin:        100,
		NarrowBreakpoint:       768,
		NarrowToolPanelWidth:   320,
	}
}

// State are the stored layout inputs. Pane widths are derived, never
// stored, except for the tool panel width the user controls directly.
type State struct {
	ContentsCollapsed bool
	DocumentHidden    bool
	ToolPanelWidth    int
	Resizing          bool
	Narrow            bool
}

// Controller owns layout state and applies the derivation rules
type Controller struct {
	Constants Constants
	State     State
}

// NewController returns a controller with the given calibration and the
// starting tool panel width.
func NewController(c Constants, toolPanelWidth int) *Controller {
	return &Controller{
		Constants: c,
		State:     State{ToolPanelWidth: toolPanelWidth},
	}
}

// ContentsWidth derives the contents pane width: 0 without a TOC or
// with the document hidden, the collapsed width when collapsed, the
// expanded width otherwise.
func (c *Controller) ContentsWidth(hasTOC bool) int {
	if !hasTOC || c.State.DocumentHidden {
		return 0
	}
	if c.State.ContentsCollapsed {
		return c.Constants.ContentsCollapsedWidth
	}
	return c.Constants.ContentsExpandedWidth
}

// ToolPanelWidth returns the effective tool panel width. With the
// document hidden the panel takes all remaining container width.
func (c *Controller) ToolPanelWidth(container int, hasTOC bool) int {
	if c.State.DocumentHidden {
		return container - c.ContentsWidth(hasTOC)
	}
	if c.State.Narrow {
		return c.Constants.NarrowToolPanelWidth
	}
	return c.State.ToolPanelWidth
}

// DocumentWidth derives the document pane width from everything else.
// Returns 0 when the pane is hidden (unrendered).
func (c *Controller) DocumentWidth(container int, hasTOC bool) int {
	if c.State.DocumentHidden {
		return 0
	}
	w := container - c.ContentsWidth(hasTOC) - c.ToolPanelWidth(container, hasTOC) - c.Constants.HandleThickness
	if w < 0 {
		w = 0
	}
	return w
}

// MaxToolPanelWidth is the drag clamp ceiling: a fraction of the
// container normally, or nearly the full container when the document
// pane is hidden.
func (c *Controller) MaxToolPanelWidth(container int) int {
	if c.State.DocumentHidden {
		return container - c.Constants.HiddenDocMargin
	}
	return int(float64(container) * c.Constants.MaxToolPanelFrac)
}

// ClampToolPanelWidth forces a candidate width into
// [MinToolPanelWidth, MaxToolPanelWidth].
func (c *Controller) ClampToolPanelWidth(container, width int) int {
	min := c.Constants.MinToolPanelWidth
	max := c.MaxToolPanelWidth(container)
	if max < min {
		max = min
	}
	if width < min {
		return min
	}
	if width > max {
		return max
	}
	return width
}

// ApplyViewport re-runs the narrow-breakpoint policy. Called on every
// viewport resize and whenever DocumentHidden or ContentsCollapsed
// change, since the target widths differ per state.
func (c *Controller) ApplyViewport(container int) {
	narrow := container < c.Constants.NarrowBreakpoint
	c.State.Narrow = narrow
	if narrow {
		c.State.ContentsCollapsed = true
		c.State.Resizing = false
		return
	}
	c.State.ToolPanelWidth = c.ClampToolPanelWidth(container, c.State.ToolPanelWidth)
}

// SetDocumentHidden toggles the document pane and re-applies the
// breakpoint policy (the clamp ceiling depends on it).
func (c *Controller) SetDocumentHidden(hidden bool, container int) {
	c.State.DocumentHidden = hidden
	if hidden {
		c.State.Resizing = false
	}
	c.ApplyViewport(container)
}

// ToggleContents flips the sidebar collapse and re-applies the
// breakpoint policy. No-op while narrow: narrow mode pins the sidebar
// collapsed.
func (c *Controller) ToggleContents(container int) {
	if c.State.Narrow {
		return
	}
	c.State.ContentsCollapsed = !c.State.ContentsCollapsed
	c.ApplyViewport(container)
}
