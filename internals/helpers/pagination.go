package helper

import (
	"github.com/gofiber/fiber/v2"
)

// Paging: hasil normalisasi query ?page & ?per_page (alias ?limit)
type Paging struct {
	Page    int
	PerPage int
}

func (p Paging) Offset() int { return (p.Page - 1) * p.PerPage }
func (p Paging) Limit() int  { return p.PerPage }

// ResolvePaging: nilai ngawur → default, per_page di-clamp ke maxPerPage (0 = bebas)
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	p := Paging{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", c.QueryInt("limit", defaultPerPage)),
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if maxPerPage > 0 && p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

// BuildPaginationFromPage: meta list, total_pages minimal 1 supaya FE tidak bagi nol
func BuildPaginationFromPage(total int64, page, perPage int) Pagination {
	if perPage < 1 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	pages := int(total / int64(perPage))
	if total%int64(perPage) != 0 {
		pages++
	}
	pages = max(pages, 1)

	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}
