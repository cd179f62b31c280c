package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	want := uuid.New()
	got, err := Parse(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParse_EmptyIsNil(t *testing.T) {
	got, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("xyz")
	assert.Error(t, err)
}

func TestShort(t *testing.T) {
	id := uuid.MustParse("9f3c2a1b-0000-4000-8000-000000000000")
	assert.Equal(t, "9f3c2a1b", Short(id))
	assert.Equal(t, "-", Short(uuid.Nil))
}
