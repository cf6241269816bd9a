package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRestore(t *testing.T) {
	// Wednesday 2024-01-03 15:00 UTC.
	now := time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC)

	t.Run("later this week", func(t *testing.T) {
		next := nextRestore(now, time.Friday, 6)
		assert.Equal(t, time.Date(2024, 1, 5, 6, 0, 0, 0, time.UTC), next)
	})

	t.Run("same day earlier hour rolls a week", func(t *testing.T) {
		next := nextRestore(now, time.Wednesday, 6)
		assert.Equal(t, time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC), next)
	})

	t.Run("same day later hour fires today", func(t *testing.T) {
		next := nextRestore(now, time.Wednesday, 20)
		assert.Equal(t, time.Date(2024, 1, 3, 20, 0, 0, 0, time.UTC), next)
	})

	t.Run("monday midnight default", func(t *testing.T) {
		next := nextRestore(now, time.Monday, 0)
		assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), next)
		assert.Equal(t, time.Monday, next.Weekday())
	})

	t.Run("always strictly in the future", func(t *testing.T) {
		exact := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
		next := nextRestore(exact, time.Monday, 0)
		assert.True(t, next.After(exact))
	})
}
