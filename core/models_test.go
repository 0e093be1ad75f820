package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("https://example.org/policy/1|Carbon Pricing Act")
		b := IDFromContent("https://example.org/policy/1|Carbon Pricing Act")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		a := IDFromContent("policy one")
		b := IDFromContent("policy two")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content yields stable id", func(t *testing.T) {
		a := IDFromContent("")
		b := IDFromContent("")
		assert.Equal(t, a, b)
	})
}
