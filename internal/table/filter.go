package table

import (
	"strconv"
	"strings"

	"github.com/noah-isme/adminui-api/internal/models"
)

// Filter returns the members for which at least one attribute, id included,
// contains term case-insensitively. An empty term keeps every member. The
// result preserves the input order and never aliases the input slice.
func Filter(members []models.Member, term string) []models.Member {
	needle := strings.ToLower(term)
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		if matches(m, needle) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m models.Member, needle string) bool {
	if needle == "" {
		return true
	}
	for _, value := range attributes(m) {
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

func attributes(m models.Member) [4]string {
	return [4]string{strconv.Itoa(m.ID), m.Name, m.Email, m.Role}
}
