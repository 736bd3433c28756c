package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "payments:history", historyKey)
	assert.Equal(t, "payments:history:gen", historyGenKey)
	assert.Equal(t, "payments", GenerateKey(EntityPayment))
	assert.Equal(t, "payments:by_intent:pi_123", GenerateKey(EntityPayment, "by_intent", "pi_123"))
}
