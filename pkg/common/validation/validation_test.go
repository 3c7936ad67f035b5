package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name    string `validate:"required"`
	Workers int    `validate:"gte=1,lte=8"`
}

func TestIsRequestValid(t *testing.T) {
	ok, msg := IsRequestValid(sample{Name: "a", Workers: 2})
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = IsRequestValid(sample{Workers: 9})
	assert.False(t, ok)
	assert.Contains(t, msg, `sample.Name failed "required"`)
	assert.Contains(t, msg, `sample.Workers failed "lte" (param "8", got 9)`)

	ok, msg = IsRequestValid(42)
	assert.False(t, ok, "non-struct input is rejected")
	assert.NotEmpty(t, msg)
}
