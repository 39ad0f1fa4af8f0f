package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindAndCodeSurviveWrapping(t *testing.T) {
	base := errors.New("connection reset")
	err := fmt.Errorf("fetch orders: %w", Remote("orders_fetch_failed", base))

	assert.True(t, IsKind(err, KindRemote))
	assert.False(t, IsKind(err, KindValidation))
	assert.True(t, HasCode(err, "orders_fetch_failed"))
	assert.Equal(t, "orders_fetch_failed", CodeOf(err))
	assert.ErrorIs(t, err, base)
}

func TestPlainErrorsHaveNoKind(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)
	assert.Equal(t, "", CodeOf(errors.New("boom")))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "scope_required", Validation("scope_required").Error())
	assert.Equal(t, "session_corrupted: bad json", Session("session_corrupted", errors.New("bad json")).Error())
}
