package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKindMarkers(t *testing.T) {
	err := NotFound("patient %s not found", "42")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "patient 42 not found", err.Error())

	wrapped := fmt.Errorf("loading: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.ErrorIs(t, wrapped, err)
}

func TestIsComparesMessageOfSentinels(t *testing.T) {
	a := Duplicate("uin already exists")
	b := Duplicate("egn already exists")

	assert.ErrorIs(t, a, Duplicate("uin already exists"))
	assert.NotErrorIs(t, a, b)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{Validation("bad"), KindValidation},
		{fmt.Errorf("ctx: %w", Forbidden("no")), KindForbidden},
		{Unauthorized("who"), KindUnauthorized},
		{errors.New("plain"), KindInternal},
		{nil, KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err))
	}
}
