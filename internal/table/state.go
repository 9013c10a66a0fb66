package table

import "github.com/noah-isme/adminui-api/internal/models"

// IntentType enumerates the discrete events a renderer (or the loader) can
// dispatch into a table state.
type IntentType string

const (
	IntentSearchTermChanged       IntentType = "search_term_changed"
	IntentRowCheckboxToggled      IntentType = "row_checkbox_toggled"
	IntentSelectAllToggled        IntentType = "select_all_toggled"
	IntentEditRequested           IntentType = "edit_requested"
	IntentDeleteRequested         IntentType = "delete_requested"
	IntentDeleteSelectedRequested IntentType = "delete_selected_requested"
	IntentPageChanged             IntentType = "page_changed"
	IntentEditFieldChanged        IntentType = "edit_field_changed"
	IntentEditConfirmed           IntentType = "edit_confirmed"
	IntentEditModalDismissed      IntentType = "edit_modal_dismissed"
	IntentRecordsLoaded           IntentType = "records_loaded"
)

// Intent is one event. Only the fields relevant to Type are read.
type Intent struct {
	Type    IntentType
	ID      int
	Checked bool
	Term    string
	Page    int
	Nav     PageNav
	Field   models.MemberField
	Value   string
	Members []models.Member
}

// State owns everything one admin table session holds: the record store, the
// search term, the selection, the current page and the edit session. All
// mutations go through its methods; derived values are recomputed on read.
// State is not safe for concurrent use.
type State struct {
	members     []models.Member
	searchTerm  string
	selection   *Selection
	currentPage int
	pageSize    int
	edit        EditSession
}

// NewState returns an empty state paging by pageSize.
func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{selection: NewSelection(), currentPage: 1, pageSize: pageSize}
}

// Apply dispatches a single intent. Intents never fail; ones that do not
// apply to the current state are ignored.
func (s *State) Apply(in Intent) {
	switch in.Type {
	case IntentSearchTermChanged:
		s.SetSearchTerm(in.Term)
	case IntentRowCheckboxToggled:
		s.Toggle(in.ID, in.Checked)
	case IntentSelectAllToggled:
		s.ToggleAllOnCurrentPage(in.Checked)
	case IntentEditRequested:
		s.OpenEdit(in.ID)
	case IntentDeleteRequested:
		s.Delete(in.ID)
	case IntentDeleteSelectedRequested:
		s.DeleteSelected()
	case IntentPageChanged:
		if in.Nav != "" {
			s.Navigate(in.Nav)
		} else {
			s.GotoPage(in.Page)
		}
	case IntentEditFieldChanged:
		s.SetEditField(in.Field, in.Value)
	case IntentEditConfirmed:
		s.CommitEdit()
	case IntentEditModalDismissed:
		s.DismissEdit()
	case IntentRecordsLoaded:
		s.Load(in.Members)
	}
}

// Load replaces the record store wholesale. Later duplicates of an id are
// dropped, the selection loses ids that no longer exist and the current page
// is pulled back into range.
func (s *State) Load(members []models.Member) {
	seen := make(map[int]struct{}, len(members))
	store := make([]models.Member, 0, len(members))
	for _, m := range members {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		store = append(store, m)
	}
	s.members = store
	s.selection.Retain(func(id int) bool {
		_, ok := seen[id]
		return ok
	})
	s.clampPage()
}

// SetSearchTerm changes the filter and always returns to the first page.
func (s *State) SetSearchTerm(term string) {
	s.searchTerm = term
	s.currentPage = 1
}

// Toggle checks or unchecks one row.
func (s *State) Toggle(id int, checked bool) {
	s.selection.Toggle(id, checked)
}

// ToggleAllOnCurrentPage is the page-scoped select-all.
func (s *State) ToggleAllOnCurrentPage(checked bool) {
	page := s.CurrentPageMembers()
	ids := make([]int, len(page))
	for i, m := range page {
		ids[i] = m.ID
	}
	s.selection.ToggleAllOnPage(ids, checked)
}

// Delete removes one member and unchecks it. Unknown ids are ignored.
func (s *State) Delete(id int) {
	s.members = removeWhere(s.members, func(m models.Member) bool { return m.ID == id })
	s.selection.Remove(id)
	s.clampPage()
}

// DeleteSelected removes every checked member and clears the selection.
func (s *State) DeleteSelected() {
	if s.selection.Len() == 0 {
		return
	}
	s.members = removeWhere(s.members, func(m models.Member) bool { return s.selection.Has(m.ID) })
	s.selection.Clear()
	s.clampPage()
}

// OpenEdit opens the edit modal on id. Unknown ids are ignored.
func (s *State) OpenEdit(id int) {
	for _, m := range s.members {
		if m.ID == id {
			s.edit.Open(m)
			return
		}
	}
}

// SetEditField updates the draft of the open edit session.
func (s *State) SetEditField(field models.MemberField, value string) {
	s.edit.SetField(field, value)
}

// CommitEdit writes the draft into the store and closes the modal.
func (s *State) CommitEdit() {
	s.members = s.edit.Commit(s.members)
}

// DismissEdit closes the modal without touching the store.
func (s *State) DismissEdit() {
	s.edit.Dismiss()
}

// Navigate moves relative to the current page.
func (s *State) Navigate(nav PageNav) {
	s.currentPage = s.paginator().Navigate(nav)
}

// GotoPage jumps to page when it exists.
func (s *State) GotoPage(page int) {
	s.currentPage = s.paginator().Goto(page)
}

// Members returns a copy of the record store.
func (s *State) Members() []models.Member {
	out := make([]models.Member, len(s.members))
	copy(out, s.members)
	return out
}

// Filtered is the current filtered view.
func (s *State) Filtered() []models.Member {
	return Filter(s.members, s.searchTerm)
}

// CurrentPageMembers is the slice of the filtered view on the current page.
func (s *State) CurrentPageMembers() []models.Member {
	filtered := s.Filtered()
	start, end := NewPaginator(len(filtered), s.pageSize, s.currentPage).Bounds()
	return filtered[start:end]
}

// CurrentPage returns the 1-based current page.
func (s *State) CurrentPage() int {
	return s.currentPage
}

// SearchTerm returns the active search term.
func (s *State) SearchTerm() string {
	return s.searchTerm
}

// Selection exposes the selected ids in ascending order.
func (s *State) Selection() []int {
	return s.selection.IDs()
}

// Draft returns the open edit draft, if any.
func (s *State) Draft() (models.MemberDraft, bool) {
	return s.edit.Draft()
}

// View derives the render payload from the current state.
func (s *State) View() models.TableView {
	filtered := s.Filtered()
	p := NewPaginator(len(filtered), s.pageSize, s.currentPage)
	start, end := p.Bounds()
	page := filtered[start:end]

	rows := make([]models.RowView, len(page))
	for i, m := range page {
		rows[i] = models.RowView{Member: m, Checked: s.selection.Has(m.ID)}
	}

	view := models.TableView{
		SearchTerm:            s.searchTerm,
		Rows:                  rows,
		SelectAllChecked:      s.selection.AllChecked(len(page)),
		SelectedIDs:           s.selection.IDs(),
		DeleteSelectedEnabled: s.selection.Len() > 0,
		Pagination: models.PageView{
			CurrentPage:      p.Current,
			PageSize:         p.PageSize,
			PageCount:        p.PageCount(),
			Pages:            p.Pages(),
			FilteredCount:    len(filtered),
			TotalCount:       len(s.members),
			FirstDisabled:    p.PreviousDisabled(),
			PreviousDisabled: p.PreviousDisabled(),
			NextDisabled:     p.NextDisabled(),
			LastDisabled:     p.NextDisabled(),
		},
	}
	if draft, ok := s.edit.Draft(); ok {
		view.Edit = models.EditView{Open: true, Draft: &draft}
	}
	return view
}

func (s *State) paginator() Paginator {
	return NewPaginator(len(s.Filtered()), s.pageSize, s.currentPage)
}

func (s *State) clampPage() {
	s.currentPage = s.paginator().Clamp()
}

func removeWhere(members []models.Member, drop func(models.Member) bool) []models.Member {
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		if !drop(m) {
			out = append(out, m)
		}
	}
	return out
}
