// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"regexp"
	"strconv"
)

var scalabilityModeRegexp = regexp.MustCompile(`^[LS]([1-9]\d?)T([1-9]\d?)(_KEY)?`)

// ScalabilityMode is the parsed form of a scalability mode string as
// defined in the webrtc-svc spec ("L1T3", "S3T3", "L3T2_KEY", ...).
type ScalabilityMode struct {
	SpatialLayers  int  `json:"spatialLayers"`
	TemporalLayers int  `json:"temporalLayers"`
	Ksvc           bool `json:"ksvc"`
}

// ParseScalabilityMode parses a scalability mode string. Unparsable input
// yields a single spatial and temporal layer.
func ParseScalabilityMode(scalabilityMode string) ScalabilityMode {
	match := scalabilityModeRegexp.FindStringSubmatch(scalabilityMode)
	if match == nil {
		return ScalabilityMode{SpatialLayers: 1, TemporalLayers: 1}
	}

	spatialLayers, _ := strconv.Atoi(match[1])
	temporalLayers, _ := strconv.Atoi(match[2])

	return ScalabilityMode{
		SpatialLayers:  spatialLayers,
		TemporalLayers: temporalLayers,
		Ksvc:           match[3] == "_KEY",
	}
}
