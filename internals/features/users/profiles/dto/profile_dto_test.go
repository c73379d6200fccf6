package dto

import (
	"testing"

	"sponsorku_backend/internals/constants"
	helper "sponsorku_backend/internals/helpers"
)

func TestParseUpdateProfileByRole(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		body   string
		status int
	}{
		{"eo fields for eo", constants.RoleEO, `{"name":"Ana","organization_name":"HMIF"}`, 0},
		{"sponsor fields for sponsor", constants.RoleSponsor, `{"company_name":"PT Maju","budget_min":1000,"status":"Open"}`, 0},
		{"sponsor field from eo", constants.RoleEO, `{"company_name":"PT Maju"}`, 400},
		{"eo field from sponsor", constants.RoleSponsor, `{"organization_name":"HMIF"}`, 400},
		{"unknown field", constants.RoleEO, `{"role":"SPONSOR"}`, 400},
		{"empty body", constants.RoleSponsor, ``, 0},
		{"broken json", constants.RoleEO, `{"name":`, 400},
		{"wrong type", constants.RoleSponsor, `{"budget_min":"banyak"}`, 400},
		{"no role", "", `{}`, 403},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseUpdateProfile(tt.role, []byte(tt.body))
			if tt.status == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if req.Profile == nil || req.Profile.Role() != tt.role {
					t.Fatalf("variant mismatch: %#v", req.Profile)
				}
				return
			}
			if got := helper.StatusOf(err); got != tt.status {
				t.Fatalf("status = %d, want %d (err=%v)", got, tt.status, err)
			}
		})
	}
}

func TestParseUpdateProfileKeepsTriState(t *testing.T) {
	req, err := ParseUpdateProfile(constants.RoleSponsor, []byte(`{"website":null,"budget_max":5000000}`))
	if err != nil {
		t.Fatal(err)
	}
	sp, ok := req.Profile.(SponsorProfileUpdate)
	if !ok {
		t.Fatalf("want SponsorProfileUpdate, got %T", req.Profile)
	}
	if v, present := sp.Website.Get(); !present || v != nil {
		t.Fatal("website should be present and null")
	}
	if v, present := sp.BudgetMax.Get(); !present || v == nil || *v != 5000000 {
		t.Fatal("budget_max not parsed")
	}
	if _, present := sp.CompanyName.Get(); present {
		t.Fatal("company_name should be absent")
	}
}

func TestFormToJSON(t *testing.T) {
	body, err := FormToJSON(map[string][]string{
		"name":        {"  Budi "},
		"category_id": {"3"},
		"website":     {""},
	})
	if err != nil {
		t.Fatal(err)
	}
	req, err := ParseUpdateProfile(constants.RoleSponsor, body)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := req.User.Name.Get(); v == nil || *v != "Budi" {
		t.Fatalf("name = %v", v)
	}
	sp := req.Profile.(SponsorProfileUpdate)
	if v, _ := sp.CategoryID.Get(); v == nil || *v != 3 {
		t.Fatal("category_id not numeric")
	}
	if v, present := sp.Website.Get(); !present || v != nil {
		t.Fatal("empty website should clear")
	}

	if _, err := FormToJSON(map[string][]string{"budget_min": {"abc"}}); helper.StatusOf(err) != 400 {
		t.Fatalf("non numeric budget should be 400, got %v", err)
	}
}
