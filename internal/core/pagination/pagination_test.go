package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		count    int64
		number   int
		numPages int
		offset   int
	}{
		{"missing token", "", 13, 1, 2, 0},
		{"second page", "2", 13, 2, 2, 10},
		{"past the end", "99", 13, 2, 2, 10},
		{"zero", "0", 13, 1, 2, 0},
		{"negative", "-3", 13, 1, 2, 0},
		{"garbage", "abc", 13, 1, 2, 0},
		{"empty listing", "5", 0, 1, 1, 0},
		{"exact fit", "3", 30, 3, 3, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(tt.token, tt.count, PageSize)
			assert.Equal(t, tt.number, p.Number)
			assert.Equal(t, tt.numPages, p.NumPages)
			assert.Equal(t, tt.offset, p.Offset())
			assert.Equal(t, tt.count, p.Count)
		})
	}
}

func TestPage_Navigation(t *testing.T) {
	p := Resolve("2", 25, PageSize)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())
	assert.Equal(t, 3, p.NextNumber())
	assert.Equal(t, 1, p.PreviousNumber())
	assert.Equal(t, []int{1, 2, 3}, p.Numbers())

	first := Resolve("", 5, PageSize)
	assert.False(t, first.HasNext())
	assert.False(t, first.HasPrevious())
}

func TestParseWindow(t *testing.T) {
	w, ok := ParseWindow("", "")
	assert.False(t, ok)
	assert.Equal(t, All, w)

	w, ok = ParseWindow("5", "")
	assert.True(t, ok)
	assert.Equal(t, Window{Limit: 5}, w)

	w, ok = ParseWindow("5", "-2")
	assert.True(t, ok)
	assert.Equal(t, 0, w.Offset)

	_, ok = ParseWindow("0", "3")
	assert.False(t, ok)

	w = Window{Limit: 5, Offset: 3}
	assert.True(t, w.HasNext(9))
	assert.False(t, w.HasNext(8))
	assert.True(t, w.HasPrevious())
	assert.Equal(t, Window{Limit: 5, Offset: 0}, w.Previous())
	assert.Equal(t, Window{Limit: 5, Offset: 8}, w.Next())
}
