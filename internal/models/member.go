package models

// Member is a single row of the admin table as delivered by the member source.
type Member struct {
	ID    int    `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Role  string `db:"role" json:"role"`
}

// MemberField names an editable attribute of a member.
type MemberField string

const (
	MemberFieldName  MemberField = "name"
	MemberFieldEmail MemberField = "email"
	MemberFieldRole  MemberField = "role"
)

// MemberDraft holds the transient values of a member being edited.
type MemberDraft struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DraftFromMember copies a member verbatim into a draft.
func DraftFromMember(m Member) MemberDraft {
	return MemberDraft{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role}
}

// Member converts the draft back into a member record.
func (d MemberDraft) Member() Member {
	return Member{ID: d.ID, Name: d.Name, Email: d.Email, Role: d.Role}
}
