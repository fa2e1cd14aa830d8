package model

// Section is a single entry in a chapter with a page anchor
type Section struct {
	ID    string
	Title string
	Page  int
}

// Chapter groups an ordered list of sections. Sections may be empty.
type Chapter struct {
	ID       string
	Title    string
	Sections []Section
}

// TableOfContents is the chapter/section hierarchy for a document.
// Read-only once loaded. Section pages are not guaranteed to be sorted,
// so page lookups are linear scans.
type TableOfContents struct {
	Chapters []Chapter
}

// FallbackPageCount is used when no table of contents is available
const FallbackPageCount = 100

// MaxPage returns the highest section page across all chapters,
// or 0 when the TOC has no sections at all.
func (t *TableOfContents) MaxPage() int {
	if t == nil {
		return 0
	}
	max := 0
	for _, ch := range t.Chapters {
		for _, sec := range ch.Sections {
			if sec.Page > max {
				max = sec.Page
			}
		}
	}
	return max
}

// SectionForPage finds the section anchored at exactly the given page.
// First match wins; there is no nearest-match tolerance.
func (t *TableOfContents) SectionForPage(page int) (*Section, *Chapter, bool) {
	if t == nil {
		return nil, nil, false
	}
	for ci := range t.Chapters {
		ch := &t.Chapters[ci]
		for si := range ch.Sections {
			if ch.Sections[si].Page == page {
				return &ch.Sections[si], ch, true
			}
		}
	}
	return nil, nil, false
}

// Expandable reports whether a chapter gets an expand arrow in the
// contents pane. A chapter with no sections, or a single section that
// merely duplicates the chapter title, is directly clickable instead.
func (c *Chapter) Expandable() bool {
	if len(c.Sections) >= 2 {
		return true
	}
	return len(c.Sections) == 1 && c.Sections[0].Title != c.Title
}

// FirstSection returns the chapter's first section, or nil
func (c *Chapter) FirstSection() *Section {
	if len(c.Sections) == 0 {
		return nil
	}
	return &c.Sections[0]
}
