package constants

import "fmt"

const (
	RoleEO      = "EO"
	RoleSponsor = "SPONSOR"
)

// Template pesan error role
const (
	ErrOnlyEOCanAccess      = "❌ Hanya Event Organizer (EO) yang boleh mengakses fitur %s."
	ErrOnlySponsorCanAccess = "❌ Hanya Sponsor yang boleh mengakses fitur %s."
)

func RoleErrorEO(feature string) string {
	return fmt.Sprintf(ErrOnlyEOCanAccess, feature)
}

func RoleErrorSponsor(feature string) string {
	return fmt.Sprintf(ErrOnlySponsorCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles    = []string{RoleEO, RoleSponsor}
	EOOnly      = []string{RoleEO}
	SponsorOnly = []string{RoleSponsor}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
