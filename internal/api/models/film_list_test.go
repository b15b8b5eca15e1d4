package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListTypeRoundTrip(t *testing.T) {
	for _, lt := range AllListTypes {
		parsed, ok := ParseListType(lt.String())
		assert.True(t, ok)
		assert.Equal(t, lt, parsed)
	}
}

func TestListTypeValid(t *testing.T) {
	assert.True(t, ListTypePlanned.Valid())
	assert.True(t, ListTypeWatched.Valid())
	assert.True(t, ListTypeDropped.Valid())
	assert.False(t, ListType(0).Valid())
	assert.False(t, ListType(4).Valid())
}

func TestParseListTypeUnknown(t *testing.T) {
	_, ok := ParseListType("favourites")
	assert.False(t, ok)
}
