package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/adminui-api/internal/models"
)

func TestPaginatorGeometry(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		current   int
		pageCount int
		start     int
		end       int
	}{
		{name: "empty", total: 0, current: 1, pageCount: 0, start: 0, end: 0},
		{name: "partial single page", total: 7, current: 1, pageCount: 1, start: 0, end: 7},
		{name: "exact pages", total: 20, current: 2, pageCount: 2, start: 10, end: 20},
		{name: "last partial page", total: 25, current: 3, pageCount: 3, start: 20, end: 25},
		{name: "out of range", total: 25, current: 5, pageCount: 3, start: 25, end: 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPaginator(tc.total, 10, tc.current)
			assert.Equal(t, tc.pageCount, p.PageCount())
			assert.Len(t, p.Pages(), tc.pageCount)
			start, end := p.Bounds()
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestPaginatorPagesReconstructFilteredView(t *testing.T) {
	members := make([]models.Member, 0, 47)
	for i := 1; i <= 47; i++ {
		members = append(members, models.Member{ID: i, Name: "user", Role: "member"})
	}
	for _, size := range []int{1, 3, 10, 47, 100} {
		filtered := Filter(members, "user")
		var rebuilt []models.Member
		count := NewPaginator(len(filtered), size, 1).PageCount()
		for page := 1; page <= count; page++ {
			start, end := NewPaginator(len(filtered), size, page).Bounds()
			rebuilt = append(rebuilt, filtered[start:end]...)
		}
		require.Equal(t, filtered, rebuilt, "page size %d", size)
	}
}

func TestPaginatorNavigation(t *testing.T) {
	p := NewPaginator(25, 10, 2)
	assert.Equal(t, 1, p.Navigate(NavFirst))
	assert.Equal(t, 1, p.Navigate(NavPrevious))
	assert.Equal(t, 3, p.Navigate(NavNext))
	assert.Equal(t, 3, p.Navigate(NavLast))
	assert.Equal(t, 3, p.Goto(3))
	assert.Equal(t, 2, p.Goto(4))
	assert.Equal(t, 2, p.Goto(0))
	assert.Equal(t, 2, p.Navigate(PageNav("sideways")))
}

func TestPaginatorDisabledRules(t *testing.T) {
	first := NewPaginator(25, 10, 1)
	assert.True(t, first.PreviousDisabled())
	assert.False(t, first.NextDisabled())
	assert.Equal(t, 1, first.Navigate(NavPrevious))

	last := NewPaginator(25, 10, 3)
	assert.False(t, last.PreviousDisabled())
	assert.True(t, last.NextDisabled())
	assert.Equal(t, 3, last.Navigate(NavNext))
}

func TestPaginatorWithNoRecords(t *testing.T) {
	p := NewPaginator(0, 10, 1)
	assert.Empty(t, p.Pages())
	assert.True(t, p.PreviousDisabled())
	assert.True(t, p.NextDisabled())
	assert.Equal(t, 1, p.Navigate(NavNext))
	assert.Equal(t, 1, p.Navigate(NavLast))
	assert.Equal(t, 1, p.Goto(1))
}

func TestPaginatorClamp(t *testing.T) {
	assert.Equal(t, 2, NewPaginator(20, 10, 3).Clamp())
	assert.Equal(t, 1, NewPaginator(0, 10, 4).Clamp())
	assert.Equal(t, 2, NewPaginator(25, 10, 2).Clamp())
}

func TestNewPaginatorNormalisesInputs(t *testing.T) {
	p := NewPaginator(-3, 0, -1)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 1, p.Current)
}
