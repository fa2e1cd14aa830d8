package layout

import "testing"

func newTestController() *Controller {
	return NewController(DefaultConstants(), 400)
}

func TestContentsWidth(t *testing.T) {
	tests := []struct {
		name      string
		hasTOC    bool
		collapsed bool
		docHidden bool
		want      int
	}{
		{"no toc", false, false, false, 0},
		{"expanded", true, false, false, 240},
		{"collapsed", true, true, false, 48},
		{"document hidden", true, false, true, 0},
		{"document hidden and collapsed", true, true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			c.State.ContentsCollapsed = tt.collapsed
			c.State.DocumentHidden = tt.docHidden
			if got := c.ContentsWidth(tt.hasTOC); got != tt.want {
				t.Errorf("ContentsWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToolPanelWidthDocumentHidden(t *testing.T) {
	c := newTestController()
	c.State.DocumentHidden = true

	// Hidden document gives the tool panel the full remainder
	if got := c.ToolPanelWidth(1200, true); got != 1200 {
		t.Errorf("ToolPanelWidth() = %d, want 1200", got)
	}
}

func TestClampToolPanelWidth(t *testing.T) {
	c := newTestController()

	tests := []struct {
		name      string
		container int
		width     int
		want      int
	}{
		{"below minimum", 1200, 100, 280},
		{"within range", 1200, 500, 500},
		{"above max fraction", 1200, 900, 720}, // 60% of 1200
		{"exactly minimum", 1200, 280, 280},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ClampToolPanelWidth(tt.container, tt.width); got != tt.want {
				t.Errorf("ClampToolPanelWidth(%d, %d) = %d, want %d",
					tt.container, tt.width, got, tt.want)
			}
		})
	}
}

func TestClampWhenDocumentHidden(t *testing.T) {
	c := newTestController()
	c.State.DocumentHidden = true

	// Max is container minus margin instead of the fraction
	if got := c.ClampToolPanelWidth(1200, 1150); got != 1100 {
		t.Errorf("ClampToolPanelWidth() = %d, want 1100", got)
	}
}

func TestApplyViewportNarrow(t *testing.T) {
	c := newTestController()
	c.State.Resizing = true

	c.ApplyViewport(700) // below the 768 breakpoint

	if !c.State.Narrow {
		t.Error("expected narrow state below breakpoint")
	}
	if !c.State.ContentsCollapsed {
		t.Error("narrow viewport must collapse contents")
	}
	if c.State.Resizing {
		t.Error("narrow viewport must end an active resize")
	}
}

func TestApplyViewportWideReclamps(t *testing.T) {
	c := newTestController()
	c.State.ToolPanelWidth = 900

	c.ApplyViewport(1000)

	if c.State.Narrow {
		t.Error("expected wide state above breakpoint")
	}
	if c.State.ToolPanelWidth != 600 { // 60% of 1000
		t.Errorf("ToolPanelWidth = %d, want 600 after re-clamp", c.State.ToolPanelWidth)
	}
}

func TestToggleContentsNoopWhileNarrow(t *testing.T) {
	c := newTestController()
	c.ApplyViewport(700)

	c.ToggleContents(700)
	if !c.State.ContentsCollapsed {
		t.Error("toggle must be a no-op while narrow")
	}
}

func TestSetDocumentHiddenReclampsOnReveal(t *testing.T) {
	c := newTestController()
	c.SetDocumentHidden(true, 1200)
	c.State.ToolPanelWidth = 1100 // legal while hidden

	c.SetDocumentHidden(false, 1200)
	if c.State.ToolPanelWidth != 720 {
		t.Errorf("ToolPanelWidth = %d, want 720 after reveal", c.State.ToolPanelWidth)
	}
}

func TestDocumentWidthIsRemainder(t *testing.T) {
	c := newTestController()
	c.State.ToolPanelWidth = 400

	got := c.DocumentWidth(1200, true)
	want := 1200 - 240 - 8 - 400
	if got != want {
		t.Errorf("DocumentWidth() = %d, want %d", got, want)
	}
}
