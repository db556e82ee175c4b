package listutil

import (
	"net/url"
	"testing"
)

// TestParsePageParams_Absent verifies no paging is requested without query values.
func TestParsePageParams_Absent(t *testing.T) {
	if p := ParsePageParams(url.Values{}); !p.IsZero() {
		t.Errorf("expected zero params, got %+v", p)
	}
}

// TestParsePageParams covers defaults and clamping.
func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		q           url.Values
		wantPage    int
		wantPerPage int
	}{
		{"valid", url.Values{"page": {"3"}, "per_page": {"25"}}, 3, 25},
		{"page only", url.Values{"page": {"2"}}, 2, DefaultPerPage},
		{"per_page not offered", url.Values{"per_page": {"7"}}, 1, DefaultPerPage},
		{"negative page", url.Values{"page": {"-1"}, "per_page": {"5"}}, 1, 5},
		{"garbage", url.Values{"page": {"x"}}, 1, DefaultPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePageParams(tt.q)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("got %+v, want page %d per_page %d", p, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

// TestNewPageInfo verifies page count computation and clamping.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name           string
		page, per, tot int
		wantPage       int
		wantTotalPages int
	}{
		{"exact fit", 1, 5, 10, 1, 2},
		{"remainder", 2, 5, 11, 2, 3},
		{"empty", 1, 5, 0, 1, 1},
		{"page beyond end", 9, 5, 11, 3, 3},
		{"zero per page", 1, 0, 30, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.page, tt.per, tt.tot)
			if info.Page != tt.wantPage || info.TotalPages != tt.wantTotalPages {
				t.Errorf("got %+v, want page %d of %d", info, tt.wantPage, tt.wantTotalPages)
			}
		})
	}
}

// TestPaginate verifies slicing at the edges.
func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	all, info := Paginate(items, PageParams{})
	if len(all) != 7 || info.TotalPages != 1 {
		t.Errorf("unpaged = %v %+v", all, info)
	}

	page, info := Paginate(items, PageParams{Page: 2, PerPage: 5})
	if len(page) != 2 || page[0] != 6 || info.Total != 7 {
		t.Errorf("page 2 = %v %+v", page, info)
	}

	page, info = Paginate(items, PageParams{Page: 99, PerPage: 5})
	if info.Page != 2 || len(page) != 2 {
		t.Errorf("clamped page = %v %+v", page, info)
	}

	empty, info := Paginate([]int{}, PageParams{Page: 1, PerPage: 5})
	if len(empty) != 0 || info.TotalPages != 1 {
		t.Errorf("empty = %v %+v", empty, info)
	}
}
