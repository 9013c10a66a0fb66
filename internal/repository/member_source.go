package repository

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/noah-isme/adminui-api/internal/models"
)

// maxMembersPayload bounds how much of a source body is read.
const maxMembersPayload = 32 << 20

// decodeMembers parses a JSON array of members. Anything else, including a
// JSON null, is rejected.
func decodeMembers(r io.Reader) ([]models.Member, error) {
	var members []models.Member
	dec := json.NewDecoder(io.LimitReader(r, maxMembersPayload))
	if err := dec.Decode(&members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	if members == nil {
		return nil, fmt.Errorf("decode members: expected a JSON array")
	}
	return members, nil
}
