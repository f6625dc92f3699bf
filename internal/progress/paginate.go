package progress

import "roadmap-cli/internal/model"

// DefaultPageSize matches the dashboard card grid.
const DefaultPageSize = 12

// Page is one page of a (filtered) week listing.
type Page struct {
	Weeks     []model.Week
	Number    int
	PageCount int
	Total     int
}

// Paginate slices weeks into fixed-size pages. Out-of-range page numbers
// clamp to [1, PageCount]; an empty input yields page 1 of 0 pages with no
// weeks.
func Paginate(weeks []model.Week, pageSize, page int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	count := (len(weeks) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if count > 0 && page > count {
		page = count
	}
	if count == 0 {
		return Page{Number: 1, PageCount: 0, Total: 0}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(weeks) {
		end = len(weeks)
	}
	return Page{
		Weeks:     weeks[start:end],
		Number:    page,
		PageCount: count,
		Total:     len(weeks),
	}
}
