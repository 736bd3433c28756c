package cache

import "strings"

type EntityType string

const (
	EntityPayment EntityType = "payments"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, parts ...string) string {
	return strings.Join(append([]string{string(entity)}, parts...), ":")
}
