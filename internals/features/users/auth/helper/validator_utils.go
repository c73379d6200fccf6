package helpers

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var phoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)

// IsValidPhone: 10-15 digit, boleh diawali '+'
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
