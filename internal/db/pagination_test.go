package db

import "testing"

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       int
		pageSize   int
		totalCount int64
		want       Pagination
	}{
		{
			name: "first of three pages",
			page: 1, pageSize: 10, totalCount: 25,
			want: Pagination{Page: 1, PageSize: 10, TotalPages: 3, TotalCount: 25, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page",
			page: 2, pageSize: 10, totalCount: 25,
			want: Pagination{Page: 2, PageSize: 10, TotalPages: 3, TotalCount: 25, HasNext: true, HasPrev: true},
		},
		{
			name: "last page",
			page: 3, pageSize: 10, totalCount: 25,
			want: Pagination{Page: 3, PageSize: 10, TotalPages: 3, TotalCount: 25, HasNext: false, HasPrev: true},
		},
		{
			name: "exact page boundary",
			page: 2, pageSize: 10, totalCount: 20,
			want: Pagination{Page: 2, PageSize: 10, TotalPages: 2, TotalCount: 20, HasNext: false, HasPrev: true},
		},
		{
			name: "empty collection",
			page: 1, pageSize: 10, totalCount: 0,
			want: Pagination{Page: 1, PageSize: 10, TotalPages: 0, TotalCount: 0, HasNext: false, HasPrev: false},
		},
		{
			name: "page and size clamped",
			page: 0, pageSize: -5, totalCount: 9,
			want: Pagination{Page: 1, PageSize: 10, TotalPages: 1, TotalCount: 9, HasNext: false, HasPrev: false},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := newPagination(test.page, test.pageSize, test.totalCount); got != test.want {
				t.Fatalf("newPagination(%d, %d, %d) = %+v, want %+v",
					test.page, test.pageSize, test.totalCount, got, test.want)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	t.Parallel()

	pagination := newPagination(3, 20, 100)
	if got := pagination.offset(); got != 40 {
		t.Fatalf("offset = %d, want 40", got)
	}
}
