package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidFeeling(t *testing.T) {
	for _, f := range Feelings {
		assert.True(t, ValidFeeling(f), f)
	}
	assert.False(t, ValidFeeling("good"))
	assert.False(t, ValidFeeling("Happy"))
	assert.False(t, ValidFeeling(""))
}

func TestValidTag(t *testing.T) {
	assert.Len(t, AvailableTags, 13)
	for _, tag := range AvailableTags {
		assert.True(t, ValidTag(tag), tag)
	}
	assert.False(t, ValidTag("work"))
	assert.False(t, ValidTag("Gaming"))
	assert.False(t, ValidTag(""))
}
