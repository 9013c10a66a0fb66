package table

import "github.com/noah-isme/adminui-api/internal/models"

// EditSession is the two-state machine behind the edit modal. The zero value
// is closed.
type EditSession struct {
	open  bool
	draft models.MemberDraft
}

// Open starts editing m, replacing any draft in progress.
func (e *EditSession) Open(m models.Member) {
	e.open = true
	e.draft = models.DraftFromMember(m)
}

// IsOpen reports whether the modal is shown.
func (e *EditSession) IsOpen() bool {
	return e.open
}

// Draft returns the current draft and whether one exists.
func (e *EditSession) Draft() (models.MemberDraft, bool) {
	return e.draft, e.open
}

// SetField writes value into the draft. Values are free text and are never
// checked. It is a no-op while closed or for an unknown field.
func (e *EditSession) SetField(field models.MemberField, value string) {
	if !e.open {
		return
	}
	switch field {
	case models.MemberFieldName:
		e.draft.Name = value
	case models.MemberFieldEmail:
		e.draft.Email = value
	case models.MemberFieldRole:
		e.draft.Role = value
	}
}

// Dismiss closes the modal and throws the draft away.
func (e *EditSession) Dismiss() {
	e.open = false
	e.draft = models.MemberDraft{}
}

// Commit closes the modal and returns members with the record matching the
// draft id replaced wholesale. Other records, and the whole slice when the id
// no longer exists, are left untouched. Closed sessions return members as is.
func (e *EditSession) Commit(members []models.Member) []models.Member {
	if !e.open {
		return members
	}
	draft := e.draft
	e.Dismiss()

	out := make([]models.Member, len(members))
	for i, m := range members {
		if m.ID == draft.ID {
			out[i] = draft.Member()
			continue
		}
		out[i] = m
	}
	return out
}
