package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/adminui-api/internal/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLMemberSource reads members from a table. It only ever selects.
type SQLMemberSource struct {
	db    *sqlx.DB
	query string
}

// NewSQLMemberSource validates the table name and prepares the query text.
func NewSQLMemberSource(db *sqlx.DB, table string) (*SQLMemberSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid members table name %q", table)
	}
	return &SQLMemberSource{
		db:    db,
		query: fmt.Sprintf("SELECT id, name, email, role FROM %s ORDER BY id", table),
	}, nil
}

// Name identifies the source in logs and metrics.
func (s *SQLMemberSource) Name() string { return "sql" }

// Fetch selects every member row.
func (s *SQLMemberSource) Fetch(ctx context.Context) ([]models.Member, error) {
	members := make([]models.Member, 0)
	if err := s.db.SelectContext(ctx, &members, s.query); err != nil {
		return nil, fmt.Errorf("select members: %w", err)
	}
	return members, nil
}
