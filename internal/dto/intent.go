package dto

import (
	"fmt"

	"github.com/noah-isme/adminui-api/internal/models"
	"github.com/noah-isme/adminui-api/internal/table"
)

// IntentRequest is the wire form of a single renderer event. Only the fields
// relevant to Type are read; Value is free text and never checked.
type IntentRequest struct {
	Type    string  `json:"type" validate:"required,oneof=search_term_changed row_checkbox_toggled select_all_toggled edit_requested delete_requested delete_selected_requested page_changed edit_field_changed edit_confirmed edit_modal_dismissed"`
	ID      *int    `json:"id,omitempty"`
	Checked *bool   `json:"checked,omitempty"`
	Term    *string `json:"term,omitempty"`
	Page    *int    `json:"page,omitempty" validate:"omitempty,min=1"`
	Nav     string  `json:"nav,omitempty" validate:"omitempty,oneof=first previous next last"`
	Field   string  `json:"field,omitempty" validate:"omitempty,oneof=name email role"`
	Value   *string `json:"value,omitempty"`
}

// ToIntent checks that the arguments required by Type are present and
// converts the request into a table intent.
func (r IntentRequest) ToIntent() (table.Intent, error) {
	in := table.Intent{Type: table.IntentType(r.Type)}
	switch in.Type {
	case table.IntentSearchTermChanged:
		if r.Term == nil {
			return in, missing("term")
		}
		in.Term = *r.Term
	case table.IntentRowCheckboxToggled:
		if r.ID == nil {
			return in, missing("id")
		}
		if r.Checked == nil {
			return in, missing("checked")
		}
		in.ID, in.Checked = *r.ID, *r.Checked
	case table.IntentSelectAllToggled:
		if r.Checked == nil {
			return in, missing("checked")
		}
		in.Checked = *r.Checked
	case table.IntentEditRequested, table.IntentDeleteRequested:
		if r.ID == nil {
			return in, missing("id")
		}
		in.ID = *r.ID
	case table.IntentPageChanged:
		switch {
		case r.Nav != "" && r.Page != nil:
			return in, fmt.Errorf("page and nav are mutually exclusive")
		case r.Nav != "":
			in.Nav = table.PageNav(r.Nav)
		case r.Page != nil:
			in.Page = *r.Page
		default:
			return in, missing("page or nav")
		}
	case table.IntentEditFieldChanged:
		if r.Field == "" {
			return in, missing("field")
		}
		if r.Value == nil {
			return in, missing("value")
		}
		in.Field, in.Value = models.MemberField(r.Field), *r.Value
	}
	return in, nil
}

func missing(field string) error {
	return fmt.Errorf("%s is required", field)
}

// ExportQuery selects the export format of a session's filtered view.
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=csv pdf"`
}
