// Package paginator splits an ordered result set into fixed-size pages.
package paginator

import (
	"errors"
	"strconv"
)

const DefaultPerPage = 10

// Page describes one page of a listing. Items are filled by the caller
// after fetching Limit rows starting at Offset.
type Page[T any] struct {
	Items      []T
	Number     int
	PerPage    int
	TotalCount int
	NumPages   int
}

// New resolves the raw "page" query value against count rows.
// A missing or malformed value gives the first page, anything out of
// range (zero, negatives and numbers too big for an int included) gives
// the last one. An empty listing still has a single empty page.
func New[T any](count, perPage int, rawPage string) *Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if count < 0 {
		count = 0
	}

	numPages := 1
	if count > 0 {
		numPages = (count + perPage - 1) / perPage
	}

	number, err := strconv.Atoi(rawPage)
	switch {
	case errors.Is(err, strconv.ErrRange):
		number = numPages
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	return &Page[T]{
		Number:     number,
		PerPage:    perPage,
		TotalCount: count,
		NumPages:   numPages,
	}
}

func (p *Page[T]) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p *Page[T]) Limit() int {
	return p.PerPage
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p *Page[T]) NextNumber() int {
	return p.Number + 1
}

func (p *Page[T]) PreviousNumber() int {
	return p.Number - 1
}

// PageRange lists every page number, used by the pagination block.
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
