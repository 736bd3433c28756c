package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Unwraps(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("create payment: %w", StoreFailure("connection refused", cause))

	domainErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, CodeStoreFailure, domainErr.Code)
	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeStoreFailure))
	assert.False(t, HasCode(err, CodeGatewayRejected))
}

func TestDomainError_Message(t *testing.T) {
	assert.Equal(t, "INVALID_REQUEST: paymentIntentId is required",
		InvalidRequest("paymentIntentId is required").Error())

	_, ok := As(stderrors.New("plain"))
	assert.False(t, ok)
}
