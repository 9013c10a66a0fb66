package models

// TableView is everything a renderer needs to draw one frame of the admin table.
type TableView struct {
	SearchTerm            string    `json:"search_term"`
	Rows                  []RowView `json:"rows"`
	SelectAllChecked      bool      `json:"select_all_checked"`
	SelectedIDs           []int     `json:"selected_ids"`
	DeleteSelectedEnabled bool      `json:"delete_selected_enabled"`
	Pagination            PageView  `json:"pagination"`
	Edit                  EditView  `json:"edit"`
}

// RowView is a visible member together with its checkbox state.
type RowView struct {
	Member
	Checked bool `json:"checked"`
}

// PageView describes the pagination bar.
type PageView struct {
	CurrentPage      int   `json:"current_page"`
	PageSize         int   `json:"page_size"`
	PageCount        int   `json:"page_count"`
	Pages            []int `json:"pages"`
	FilteredCount    int   `json:"filtered_count"`
	TotalCount       int   `json:"total_count"`
	FirstDisabled    bool  `json:"first_disabled"`
	PreviousDisabled bool  `json:"previous_disabled"`
	NextDisabled     bool  `json:"next_disabled"`
	LastDisabled     bool  `json:"last_disabled"`
}

// EditView exposes the edit modal state.
type EditView struct {
	Open  bool         `json:"open"`
	Draft *MemberDraft `json:"draft,omitempty"`
}

// SessionView pairs a session identifier with its current table view.
type SessionView struct {
	SessionID string    `json:"session_id"`
	View      TableView `json:"view"`
}
