package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDay(t *testing.T) {
	assert.Equal(t, "Wednesday", NormalizeDay("wednesday"))
	assert.Equal(t, "Wednesday", NormalizeDay("  WEDNESDAY "))
	assert.Equal(t, "Monday", NormalizeDay("Monday"))
	// unknown values pass through trimmed
	assert.Equal(t, "Funday", NormalizeDay(" Funday "))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay("monday", "Monday"))
	assert.True(t, SameDay(" Monday ", "MONDAY"))
	assert.False(t, SameDay("Monday", "Tuesday"))
}

func TestIsValidDay(t *testing.T) {
	assert.True(t, IsValidDay("sunday"))
	assert.True(t, IsValidDay("Wednesday"))
	assert.False(t, IsValidDay("Funday"))
	assert.False(t, IsValidDay(""))
}

func TestHasRequestedChange(t *testing.T) {
	start := "14:00"
	assert.False(t, (&ChangeRequestModel{}).HasRequestedChange())
	assert.True(t, (&ChangeRequestModel{RequestedStartTime: &start}).HasRequestedChange())
}
