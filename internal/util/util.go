// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

// Package util provides auxiliary functions internally used in the
// mediasoup package.
package util

import (
	"github.com/pion/randutil"
)

const runesAlpha = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Seeded at load time, keeps the same generator for the process lifetime.
var globalMathRandomGenerator = randutil.NewMathRandomGenerator() //nolint:gochecknoglobals

// MathRandAlpha generates a random alpha string of the requested length,
// used where uniqueness matters but secrecy does not.
func MathRandAlpha(n int) string {
	return globalMathRandomGenerator.GenerateString(n, runesAlpha)
}

// RandUint32 generates a random uint32.
func RandUint32() uint32 {
	return globalMathRandomGenerator.Uint32()
}
