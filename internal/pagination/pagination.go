// Package pagination provides the page/total-pages calculation shared by all
// catalog listings.
package pagination

// Defaults and bounds for listing requests.
const (
	// DefaultPerPage is the page size used when the caller does not specify one.
	DefaultPerPage = 20

	// MaxPerPage caps the page size a caller may request.
	MaxPerPage = 100
)

// Request carries the requested page and page size of a listing call.
type Request struct {
	// Page is the requested 1-based page number.
	Page int

	// PerPage is the requested page size.
	PerPage int
}

// Pagination describes the resolved position of a listing page.
type Pagination struct {
	// CurrentPage is the page actually served, after clamping.
	CurrentPage int `json:"current_page"`

	// TotalPages is the total number of pages, at least 1 even for an empty set.
	TotalPages int `json:"total_pages"`
}

// Normalize returns a copy of the request with out-of-range values clamped:
// page is floored to 1 and per_page is clamped to [1, MaxPerPage], with 0
// replaced by the default page size.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage == 0 {
		r.PerPage = DefaultPerPage
	}
	if r.PerPage < 1 {
		r.PerPage = 1
	}
	if r.PerPage > MaxPerPage {
		r.PerPage = MaxPerPage
	}
	return r
}

// Paginate computes the served page for a listing of totalCount rows.
// Total pages is the ceiling of totalCount/perPage but never less than 1, so
// an empty listing still reports one (empty) page. The current page is the
// requested page clamped into [1, total pages]; a request past the end is
// redirected to the last page rather than rejected.
//
// Callers run this between the count query and the page query and derive the
// page query's offset from the clamped CurrentPage, so the redirect governs
// the returned rows as well as the reported page number.
func Paginate(totalCount int, req Request) Pagination {
	req = req.Normalize()

	totalPages := (totalCount + req.PerPage - 1) / req.PerPage
	if totalPages < 1 {
		totalPages = 1
	}

	currentPage := req.Page
	if currentPage > totalPages {
		currentPage = totalPages
	}

	return Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
}

// Offset returns the row offset of the served page for the given page size.
func (p Pagination) Offset(perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	return (p.CurrentPage - 1) * perPage
}
