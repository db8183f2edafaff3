// Package pagination implements the two paging styles: page numbers for the
// web listings and limit/offset windows for the API.
package pagination

import (
	"strconv"
	"strings"
)

// PageSize is the number of posts on one web listing page.
const PageSize = 10

// Page describes one resolved page of a listing.
type Page struct {
	Number   int   `json:"number"`
	NumPages int   `json:"num_pages"`
	Count    int64 `json:"count"`
	Size     int   `json:"size"`
}

// Resolve turns a raw page token into a valid page. Missing or non-numeric
// tokens give page 1, numbers below 1 clamp to the first page and numbers past
// the end clamp to the last one. An empty listing still has one page.
func Resolve(token string, count int64, size int) Page {
	if size <= 0 {
		size = PageSize
	}
	if count < 0 {
		count = 0
	}

	numPages := int((count + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	n := ParseNumber(token)
	if n > numPages {
		n = numPages
	}

	return Page{Number: n, NumPages: numPages, Count: count, Size: size}
}

// ParseNumber reads a 1-based page number, falling back to 1.
func ParseNumber(token string) int {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

func (p Page) HasNext() bool { return p.Number < p.NumPages }

func (p Page) HasPrevious() bool { return p.Number > 1 }

func (p Page) NextNumber() int { return p.Number + 1 }

func (p Page) PreviousNumber() int { return p.Number - 1 }

// Numbers lists every page number, for rendering the page links.
func (p Page) Numbers() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Window is a limit/offset slice of an API collection. Limit < 0 means the
// whole collection.
type Window struct {
	Limit  int
	Offset int
}

// All is the unpaginated window.
var All = Window{Limit: -1}

// ParseWindow reads the limit and offset query parameters. The second result
// is false when no usable limit was given, in which case the API answers with
// a plain list instead of a paginated envelope.
func ParseWindow(limit, offset string) (Window, bool) {
	l, err := strconv.Atoi(strings.TrimSpace(limit))
	if err != nil || l <= 0 {
		return All, false
	}
	o, err := strconv.Atoi(strings.TrimSpace(offset))
	if err != nil || o < 0 {
		o = 0
	}
	return Window{Limit: l, Offset: o}, true
}

// HasNext reports whether rows remain after this window.
func (w Window) HasNext(count int64) bool {
	return w.Limit >= 0 && int64(w.Offset+w.Limit) < count
}

// HasPrevious reports whether rows exist before this window.
func (w Window) HasPrevious() bool {
	return w.Limit >= 0 && w.Offset > 0
}

// Previous is the window before this one, clamped at offset 0.
func (w Window) Previous() Window {
	o := w.Offset - w.Limit
	if o < 0 {
		o = 0
	}
	return Window{Limit: w.Limit, Offset: o}
}

// Next is the window after this one.
func (w Window) Next() Window {
	return Window{Limit: w.Limit, Offset: w.Offset + w.Limit}
}
