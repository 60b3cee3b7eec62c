package entity

// Pagination constants
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination describes where a page sits in the full result set
type Pagination struct {
	CurrentPage     int
	PageSize        int
	TotalItems      int64
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPagination computes page metadata. totalPages is ceil(totalItems/pageSize).
func NewPagination(page, pageSize int, totalItems int64) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}

	return Pagination{
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalItems:      totalItems,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// Offset returns the number of rows preceding the page
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PageSize
}

// TransactionPage is one page of an account's history
type TransactionPage struct {
	Items      []*Transaction
	Pagination Pagination
}
