package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CarriesCodeAndMessage(t *testing.T) {
	err := New(ErrCodeListingNotFound, "listing lst_1 not found")
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeListingNotFound, err.Code)
	assert.Contains(t, err.Error(), "LST_001")
	assert.Contains(t, err.Error(), "listing lst_1 not found")
	assert.NotEmpty(t, err.Stack)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeDatabaseError, "query failed"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	inner := New(ErrCodeProfileNotFound, "no profile")
	wrapped := Wrap(inner, ErrCodeUnknown, "while serving request")
	assert.Equal(t, ErrCodeProfileNotFound, wrapped.Code)
	assert.True(t, stderrors.Is(wrapped, wrapped))
	assert.Equal(t, inner, stderrors.Unwrap(wrapped))
}

func TestIsCode_TraversesChain(t *testing.T) {
	inner := New(ErrCodeListingNotFound, "gone")
	outer := Wrap(fmt.Errorf("ctx: %w", inner), ErrCodeInternal, "compute failed")
	assert.True(t, IsCode(outer, ErrCodeListingNotFound))
	assert.False(t, IsCode(outer, ErrCodeCacheError))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(ErrCodeListingNotFound, "x")))
	assert.True(t, IsNotFound(New(ErrCodeProfileNotFound, "x")))
	assert.True(t, IsNotFound(NotFound("x")))
	assert.False(t, IsNotFound(New(ErrCodeComputationFailed, "x")))
	assert.False(t, IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, ErrCodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeCacheError, GetCode(New(ErrCodeCacheError, "x")))
}

func TestWithDetail(t *testing.T) {
	base := New(ErrCodeBadRequest, "bad input")
	detailed := base.WithDetail("field=city")
	assert.Empty(t, base.Detail)
	assert.Equal(t, "field=city", detailed.Detail)
	assert.Contains(t, detailed.Error(), "field=city")

	var nilErr *AppError
	assert.Nil(t, nilErr.WithDetail("ignored"))
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatusForCode(ErrCodeListingNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeInvalidContext))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("NOPE_999")))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "LST", ModuleForCode(ErrCodeListingNotFound))
	assert.Equal(t, "PRF", ModuleForCode(ErrCodeProfileStore))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
}
