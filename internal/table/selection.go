package table

import "sort"

// Selection is the set of checked member ids. It is independent of paging and
// filtering; callers are responsible for dropping ids of deleted members.
type Selection struct {
	ids map[int]struct{}
}

// NewSelection returns a selection holding ids.
func NewSelection(ids ...int) *Selection {
	s := &Selection{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle checks or unchecks a single id.
func (s *Selection) Toggle(id int, checked bool) {
	if checked {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// ToggleAllOnPage replaces the selection with exactly pageIDs when checked and
// clears it otherwise. Rows outside the visible page are never added.
func (s *Selection) ToggleAllOnPage(pageIDs []int, checked bool) {
	s.ids = make(map[int]struct{}, len(pageIDs))
	if !checked {
		return
	}
	for _, id := range pageIDs {
		s.ids[id] = struct{}{}
	}
}

// AllChecked is the derived state of the select-all checkbox: the selection
// size equals the visible row count and that count is non-zero.
func (s *Selection) AllChecked(visible int) bool {
	return visible != 0 && len(s.ids) == visible
}

// Has reports whether id is checked.
func (s *Selection) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Remove unchecks every given id.
func (s *Selection) Remove(ids ...int) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Retain drops every id for which keep returns false.
func (s *Selection) Retain(keep func(id int) bool) {
	for id := range s.ids {
		if !keep(id) {
			delete(s.ids, id)
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[int]struct{})
}

// Len is the number of checked ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the checked ids in ascending order.
func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
