package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  PageMeta
	}{
		{
			name: "first of three pages",
			page: 1, limit: 10, total: 25,
			want: PageMeta{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page",
			page: 2, limit: 10, total: 25,
			want: PageMeta{Page: 2, Limit: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "last page",
			page: 3, limit: 10, total: 25,
			want: PageMeta{Page: 3, Limit: 10, Total: 25, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "exact multiple",
			page: 2, limit: 5, total: 10,
			want: PageMeta{Page: 2, Limit: 5, Total: 10, TotalPages: 2, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result set",
			page: 1, limit: 10, total: 0,
			want: PageMeta{Page: 1, Limit: 10, Total: 0, TotalPages: 0, HasNext: false, HasPrev: false},
		},
		{
			name: "page past the end is not clamped",
			page: 9, limit: 10, total: 25,
			want: PageMeta{Page: 9, Limit: 10, Total: 25, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "single item",
			page: 1, limit: 10, total: 1,
			want: PageMeta{Page: 1, Limit: 10, Total: 1, TotalPages: 1, HasNext: false, HasPrev: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPageMeta(tt.page, tt.limit, tt.total))
		})
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 1, 2, 5)
	assert.Equal(t, []string{"a", "b"}, p.Items)
	assert.Equal(t, 3, p.Meta.TotalPages)
	assert.True(t, p.Meta.HasNext)
}
