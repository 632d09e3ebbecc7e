// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMathRandAlpha(t *testing.T) {
	assert.Len(t, MathRandAlpha(10), 10)

	isLetter := regexp.MustCompile(`^[a-zA-Z]+$`).MatchString
	assert.True(t, isLetter(MathRandAlpha(10)), "MathRandAlpha should be alpha only")
}

func TestRandUint32(t *testing.T) {
	seen := map[uint32]bool{}
	for i := 0; i < 10; i++ {
		seen[RandUint32()] = true
	}
	assert.Greater(t, len(seen), 1, "RandUint32 should not repeat constantly")
}
