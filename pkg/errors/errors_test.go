package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := New(ErrCodeEDCTypeInvalid, "unknown EDC type")
	assert.Equal(t, "[TOX_001] unknown EDC type", e.Error())

	withDetail := e.WithDetail("input=glitter")
	assert.Equal(t, "[TOX_001] unknown EDC type: input=glitter", withDetail.Error())
	// Original is not mutated.
	assert.Empty(t, e.Detail)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	e := Wrap(cause, ErrCodeCacheError, "failed to read hazard cache")
	require.NotNil(t, e)
	assert.True(t, stderrors.Is(e, cause))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	var e *AppError = Wrap(nil, ErrCodeInternal, "ignored")
	assert.Nil(t, e)
}

func TestWrap_PreservesCodeOnUnknown(t *testing.T) {
	inner := New(ErrCodeChemicalNotResolved, "no CAS for ingredient")
	outer := Wrap(inner, CodeUnknown, "resolution failed")
	assert.Equal(t, ErrCodeChemicalNotResolved, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeDataSourceUnavailable, "pubchem down")
	wrapped := fmt.Errorf("tier failed: %w", inner)

	assert.True(t, IsCode(wrapped, ErrCodeDataSourceUnavailable))
	assert.False(t, IsCode(wrapped, ErrCodeCacheError))
	assert.False(t, IsCode(nil, ErrCodeCacheError))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("no such record")))
	assert.True(t, IsNotFound(New(ErrCodeChemicalNotResolved, "unresolved")))
	assert.False(t, IsNotFound(New(ErrCodeCacheError, "boom")))
	assert.False(t, IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeValidation, GetCode(Validation("bad input")))
}

func TestWithCause(t *testing.T) {
	cause := stderrors.New("root")
	e := Validation("bad EDC type").WithCause(cause)
	assert.True(t, stderrors.Is(e, cause))

	var nilErr *AppError
	assert.Nil(t, nilErr.WithCause(cause))
	assert.Nil(t, nilErr.WithDetail("x"))
}

func TestStackCaptured(t *testing.T) {
	e := New(ErrCodeInternal, "boom")
	assert.Contains(t, e.Stack, "errors_test.go")
}
