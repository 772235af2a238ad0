package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Page is the serialized shape of one page of a list endpoint.
type Page[T any] struct {
	CurrentPage  int     `json:"current_page"`
	PerPage      int     `json:"per_page"`
	Total        int64   `json:"total"`
	FirstPageURL string  `json:"first_page_url"`
	LastPageURL  string  `json:"last_page_url"`
	NextPageURL  *string `json:"next_page_url"`
	PrevPageURL  *string `json:"prev_page_url"`
	Data         []T     `json:"data"`
}

// LastPage is never below 1, so an empty listing still has a first page.
func LastPage(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Paginate builds a Page from items already sliced by the store. page and
// perPage must have been validated as positive by the caller.
func Paginate[T any](items []T, page, perPage int, total int64, baseURL string) Page[T] {
	return NewPage(items, page, perPage, total).WithLinks(baseURL)
}

// NewPage builds a Page without links. Cached pages are stored this way and
// get their links from the request that reads them.
func NewPage[T any](items []T, page, perPage int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		Data:        items,
	}
}

// WithLinks returns a copy of p with first/last/next/prev URLs under baseURL.
func (p Page[T]) WithLinks(baseURL string) Page[T] {
	last := LastPage(p.Total, p.PerPage)
	p.FirstPageURL = PageURL(baseURL, 1, p.PerPage)
	p.LastPageURL = PageURL(baseURL, last, p.PerPage)
	p.NextPageURL, p.PrevPageURL = nil, nil
	if p.CurrentPage < last {
		next := PageURL(baseURL, p.CurrentPage+1, p.PerPage)
		p.NextPageURL = &next
	}
	if p.CurrentPage > 1 {
		prev := PageURL(baseURL, p.CurrentPage-1, p.PerPage)
		p.PrevPageURL = &prev
	}
	return p
}

func PageURL(baseURL string, page, perPage int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return fmt.Sprintf("%s?%s", baseURL, q.Encode())
}

// Offset converts a 1-based page into a row offset.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// ParsePageParams reads page and per_page from raw query values, applying
// defaults for missing values. Anything that is not a positive integer is a
// validation error, as is a per_page above MaxPerPage or a page whose row
// offset does not fit in an int.
func ParsePageParams(rawPage, rawPerPage string) (int, int, error) {
	page, perPage := DefaultPage, DefaultPerPage
	fields := map[string][]string{}

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n <= 0 {
			fields["page"] = []string{"The page field must be a positive integer."}
		}
		page = n
	}
	if rawPerPage != "" {
		n, err := strconv.Atoi(rawPerPage)
		switch {
		case err != nil || n <= 0:
			fields["per_page"] = []string{"The per_page field must be a positive integer."}
		case n > MaxPerPage:
			fields["per_page"] = []string{fmt.Sprintf("The per_page field must not be greater than %d.", MaxPerPage)}
		}
		perPage = n
	}

	if len(fields) == 0 && page-1 > math.MaxInt/perPage {
		fields["page"] = []string{"The page field is too large."}
	}
	if len(fields) > 0 {
		return 0, 0, ValidationError("Invalid pagination parameters.", fields)
	}
	return page, perPage, nil
}
