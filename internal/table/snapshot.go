package table

import "github.com/noah-isme/adminui-api/internal/models"

// Snapshot is the serialisable form of a State, used by session stores that
// keep state outside the process.
type Snapshot struct {
	Members     []models.Member     `json:"members"`
	SearchTerm  string              `json:"search_term"`
	Selected    []int               `json:"selected"`
	CurrentPage int                 `json:"current_page"`
	PageSize    int                 `json:"page_size"`
	Draft       *models.MemberDraft `json:"draft,omitempty"`
}

// Snapshot captures the state. The result shares no memory with s.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Members:     s.Members(),
		SearchTerm:  s.searchTerm,
		Selected:    s.selection.IDs(),
		CurrentPage: s.currentPage,
		PageSize:    s.pageSize,
	}
	if draft, ok := s.edit.Draft(); ok {
		snap.Draft = &draft
	}
	return snap
}

// Restore rebuilds a State from a snapshot.
func Restore(snap Snapshot) *State {
	s := NewState(snap.PageSize)
	s.members = append([]models.Member(nil), snap.Members...)
	s.searchTerm = snap.SearchTerm
	s.selection = NewSelection(snap.Selected...)
	if snap.CurrentPage > 0 {
		s.currentPage = snap.CurrentPage
	}
	if snap.Draft != nil {
		s.edit = EditSession{open: true, draft: *snap.Draft}
	}
	return s
}
