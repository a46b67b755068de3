// Package paginator splits ordered result sets into fixed-size pages
// addressed by page number. A requested number that is not a positive
// integer resolves to the first page; one past the end resolves to the
// last page, never to an empty page.
package paginator

import "strconv"

const DefaultPerPage = 10

type Page struct {
	Number     int
	PerPage    int
	Total      int64
	TotalPages int
}

// New clamps the raw ?page= value against the total row count.
// An empty result set still has one (empty) page.
func New(rawPage string, total int64, perPage int) Page {
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(rawPage)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page) PrevNumber() int {
	if !p.HasPrev() {
		return p.Number
	}
	return p.Number - 1
}

func (p Page) NextNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}
