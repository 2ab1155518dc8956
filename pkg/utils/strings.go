package utils

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// NormalizeName canonicalizes a display name for uniqueness checks:
// trimmed, inner whitespace collapsed, lowercased.
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// MatchTolerance returns the maximum edit distance at which a candidate still
// counts as a match for a query of the given (normalized) length: 30% of the
// query length, rounded up.
func MatchTolerance(query string) int {
	n := len([]rune(query))
	return (n*3 + 9) / 10
}

// Slugify turns a display name into a URL-safe slug
func Slugify(s string) string {
	return strings.ReplaceAll(NormalizeName(s), " ", "-")
}

// GenerateReference generates a unique reference number with the given prefix
func GenerateReference(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
