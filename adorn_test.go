package adorn_test

import (
	"errors"
	"testing"

	"github.com/dhalloran/adorn"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := adorn.Errorf(adorn.ENOTFOUND, "run %q not found", "test")

	assert.Equal(t, adorn.ENOTFOUND, adorn.ErrorCode(err))
	assert.Equal(t, "run \"test\" not found", adorn.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, adorn.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, adorn.EINTERNAL, adorn.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, adorn.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", adorn.ErrorMessage(errors.New("boom")))
}
