package dto

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	userModel "sponsorku_backend/internals/features/users/user/model"
	helper "sponsorku_backend/internals/helpers"
)

func TestParseListSponsorQuery(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		check  func(t *testing.T, q ListSponsorQuery)
	}{
		{"empty", "", 200, func(t *testing.T, q ListSponsorQuery) {
			if q.CategoryID != nil || q.Status != "" || q.Q != "" {
				t.Fatalf("expected zero filters, got %+v", q)
			}
		}},
		{"all filters", "?category_id=2&type_id=1&scope_id=3&status=open&q=%20kopi%20", 200, func(t *testing.T, q ListSponsorQuery) {
			if q.CategoryID == nil || *q.CategoryID != 2 || *q.TypeID != 1 || *q.ScopeID != 3 {
				t.Fatalf("ids not parsed: %+v", q)
			}
			if q.Status != userModel.SponsorStatusOpen || q.Q != "kopi" {
				t.Fatalf("status/q not normalized: %+v", q)
			}
		}},
		{"bad id", "?category_id=abc", 400, nil},
		{"zero id", "?scope_id=0", 400, nil},
		{"bad status", "?status=maybe", 400, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				q, err := ParseListSponsorQuery(c)
				if err != nil {
					return c.SendStatus(helper.StatusOf(err))
				}
				if tt.check != nil {
					tt.check(t, q)
				}
				return c.SendStatus(200)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestToSponsorItemResolvesMasterNames(t *testing.T) {
	cat := 4
	row := SponsorRow{UserName: "Sari"}
	row.SponsorProfileCompanyName = "PT Kopi"
	row.SponsorProfileCategoryID = &cat
	names := func(table string, id *int) string {
		if table == "cats" && id != nil && *id == 4 {
			return "Food & Beverage"
		}
		return ""
	}
	item := ToSponsorItem(row, names, [3]string{"cats", "types", "scopes"})
	if item.Category == nil || item.Category.Name != "Food & Beverage" {
		t.Fatalf("category = %+v", item.Category)
	}
	if item.Type != nil || item.Scope != nil {
		t.Fatal("nil ids must stay nil")
	}
}
