package dto

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sponsorku_backend/internals/constants"
	helper "sponsorku_backend/internals/helpers"
)

/* =========================================================
   UPDATE PROFILE: field user + varian per role
   ========================================================= */

type UserUpdate struct {
	Name  helper.PatchField[string] `json:"name"`
	Phone helper.PatchField[string] `json:"phone"`
}

// RoleProfileUpdate: varian tertutup, hanya dua implementasi di bawah
type RoleProfileUpdate interface {
	Role() string
	isRoleProfileUpdate()
}

type EOProfileUpdate struct {
	OrganizationName    helper.PatchField[string] `json:"organization_name"`
	OrganizationAddress helper.PatchField[string] `json:"organization_address"`
	Website             helper.PatchField[string] `json:"website"`
}

func (EOProfileUpdate) Role() string         { return constants.RoleEO }
func (EOProfileUpdate) isRoleProfileUpdate() {}

type SponsorProfileUpdate struct {
	CompanyName    helper.PatchField[string] `json:"company_name"`
	CompanyAddress helper.PatchField[string] `json:"company_address"`
	Industry       helper.PatchField[string] `json:"industry"`
	Website        helper.PatchField[string] `json:"website"`
	SocialMedia    helper.PatchField[string] `json:"social_media"`
	CategoryID     helper.PatchField[int]    `json:"category_id"`
	TypeID         helper.PatchField[int]    `json:"type_id"`
	ScopeID        helper.PatchField[int]    `json:"scope_id"`
	BudgetMin      helper.PatchField[int64]  `json:"budget_min"`
	BudgetMax      helper.PatchField[int64]  `json:"budget_max"`
	Status         helper.PatchField[string] `json:"status"`
}

func (SponsorProfileUpdate) Role() string         { return constants.RoleSponsor }
func (SponsorProfileUpdate) isRoleProfileUpdate() {}

type UpdateProfileRequest struct {
	User    UserUpdate
	Profile RoleProfileUpdate
}

var (
	userFields    = []string{"name", "phone"}
	eoFields      = []string{"organization_name", "organization_address", "website"}
	sponsorFields = []string{
		"company_name", "company_address", "industry", "website", "social_media",
		"category_id", "type_id", "scope_id", "budget_min", "budget_max", "status",
	}
	numericFields = map[string]bool{
		"category_id": true, "type_id": true, "scope_id": true, "budget_min": true, "budget_max": true,
	}
)

func allowedFor(role string) (map[string]bool, error) {
	allowed := map[string]bool{}
	for _, f := range userFields {
		allowed[f] = true
	}
	switch role {
	case constants.RoleEO:
		for _, f := range eoFields {
			allowed[f] = true
		}
	case constants.RoleSponsor:
		for _, f := range sponsorFields {
			allowed[f] = true
		}
	default:
		return nil, helper.ErrForbidden("Invalid role")
	}
	return allowed, nil
}

// ParseUpdateProfile: body JSON → varian sesuai role. Field di luar role → 400.
func ParseUpdateProfile(role string, body []byte) (UpdateProfileRequest, error) {
	var out UpdateProfileRequest
	allowed, err := allowedFor(role)
	if err != nil {
		return out, err
	}

	var raw map[string]json.RawMessage
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return out, helper.ErrBadRequest("Invalid request body")
		}
	}

	var unknown []string
	for k := range raw {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return out, helper.ErrValidation(fmt.Sprintf("Field tidak diizinkan untuk role %s: %s", role, strings.Join(unknown, ", ")))
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(body, &out.User); err != nil {
			return out, helper.ErrValidation("Format field user tidak valid")
		}
	}

	switch role {
	case constants.RoleEO:
		var v EOProfileUpdate
		if len(raw) > 0 {
			if err := json.Unmarshal(body, &v); err != nil {
				return out, helper.ErrValidation("Format field profil EO tidak valid")
			}
		}
		out.Profile = v
	case constants.RoleSponsor:
		var v SponsorProfileUpdate
		if len(raw) > 0 {
			if err := json.Unmarshal(body, &v); err != nil {
				return out, helper.ErrValidation("Format field profil sponsor tidak valid")
			}
		}
		out.Profile = v
	}
	return out, nil
}

// FormToJSON: nilai multipart (string) → body JSON untuk ParseUpdateProfile.
// Field numerik kosong → null, string kosong → null.
func FormToJSON(values map[string][]string) ([]byte, error) {
	m := make(map[string]json.RawMessage, len(values))
	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		v := strings.TrimSpace(vs[0])
		switch {
		case v == "":
			m[k] = json.RawMessage("null")
		case numericFields[k]:
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				return nil, helper.ErrValidation(k + " harus berupa angka")
			}
			m[k] = json.RawMessage(v)
		default:
			b, _ := json.Marshal(v)
			m[k] = b
		}
	}
	return json.Marshal(m)
}
