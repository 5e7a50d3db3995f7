package xerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, OK, CodeOf(nil))
	assert.Equal(t, NotFound, CodeOf(ErrNotFound))
	assert.Equal(t, Conflict, CodeOf(fmt.Errorf("save alert: %w", ErrConflict)))
	assert.Equal(t, InternalServerError, CodeOf(errors.New("boom")))
}

func TestParamError(t *testing.T) {
	assert.Same(t, ErrParam, ParamError(""))
	err := ParamError("severity")
	assert.Equal(t, BadRequest, err.Code)
	assert.Equal(t, "参数错误: severity", err.Message)
	assert.Equal(t, "Code: 400, Message: 参数错误: severity", err.Error())
}
