package model

// Position is the reader's current page plus optional section/chapter
// reference. Mutated only through Model.NavigateTo.
type Position struct {
	Page      int
	SectionID string
	ChapterID string
}

// TotalPages derives the page count from the table of contents, falling
// back to a fixed constant when no TOC was supplied.
func (m *Model) TotalPages() int {
	if m.Study == nil || m.Study.TOC == nil {
		return FallbackPageCount
	}
	if max := m.Study.TOC.MaxPage(); max > 0 {
		return max
	}
	return FallbackPageCount
}

// NavigateTo moves the reading position. The page is clamped into
// [1, TotalPages]; navigation never fails. Returns false when the
// clamped page equals the current page (the call is then a no-op for
// downstream state other than notification).
func (m *Model) NavigateTo(page int, sectionID, chapterID string) bool {
	total := m.TotalPages()
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	changed := page != m.Position.Page
	m.Position = Position{
		Page:      page,
		SectionID: sectionID,
		ChapterID: chapterID,
	}
	return changed
}
