package db

// Pagination describes one page of an ordered listing. Pages are 1-based.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

func newPagination(page int, pageSize int, totalCount int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: totalCount,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// offset converts the 1-based page into a row offset. SQLite serves OFFSET by
// walking the index, a linear skip; fine while collections stay in the low
// thousands of rows.
func (pagination Pagination) offset() int {
	return (pagination.Page - 1) * pagination.PageSize
}
