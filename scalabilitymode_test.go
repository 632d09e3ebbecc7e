// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScalabilityMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ScalabilityMode
	}{
		{"L1T3", ScalabilityMode{SpatialLayers: 1, TemporalLayers: 3}},
		{"L3T2_KEY", ScalabilityMode{SpatialLayers: 3, TemporalLayers: 2, Ksvc: true}},
		{"S2T3", ScalabilityMode{SpatialLayers: 2, TemporalLayers: 3}},
		{"L10T7", ScalabilityMode{SpatialLayers: 10, TemporalLayers: 7}},
		{"L4T7_KEY_SHIFT", ScalabilityMode{SpatialLayers: 4, TemporalLayers: 7, Ksvc: true}},
		{"", ScalabilityMode{SpatialLayers: 1, TemporalLayers: 1}},
		{"invalid", ScalabilityMode{SpatialLayers: 1, TemporalLayers: 1}},
		{"L0T3", ScalabilityMode{SpatialLayers: 1, TemporalLayers: 1}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ParseScalabilityMode(tc.input), "input %q", tc.input)
	}
}
