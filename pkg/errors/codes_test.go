package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatusForCode(ErrCodeChemicalNotResolved))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatusForCode(ErrCodeValidation))
	assert.Equal(t, http.StatusBadGateway, HTTPStatusForCode(ErrCodeDataSourceParseError))
	// Unmapped codes default to 500.
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("NOPE_999")))
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "unknown EDC type", DefaultMessageForCode(ErrCodeEDCTypeInvalid))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("NOPE_999")))
}

func TestClientServerClassification(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeBadRequest))
	assert.False(t, IsServerError(ErrCodeBadRequest))
	assert.True(t, IsServerError(ErrCodeDatabaseError))
	assert.False(t, IsClientError(ErrCodeDatabaseError))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "CHEM", ModuleForCode(ErrCodeChemicalInvalidCAS))
	assert.Equal(t, "TOX", ModuleForCode(ErrCodeScoreInputInvalid))
	assert.Equal(t, "SRC", ModuleForCode(ErrCodeDataSourceRateLimited))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
}
