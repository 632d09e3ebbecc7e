// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import "strconv"

// CodecParameters holds codec-specific parameters as they appear in an SDP
// a=fmtp line or in the signaling JSON. Values must be strings or integers;
// ValidateRtpCodecCapability and ValidateRtpParameters enforce this and
// normalize integral floats produced by JSON decoding into ints.
type CodecParameters map[string]interface{}

// Clone returns a copy of the parameters. Values are scalars, so a shallow
// copy of the map is a full copy.
func (p CodecParameters) Clone() CodecParameters {
	if p == nil {
		return nil
	}
	clone := make(CodecParameters, len(p))
	for k, v := range p {
		clone[k] = v
	}
	return clone
}

// GetInt returns the integer value of the given parameter. Integral floats
// left behind by a JSON decoder are accepted too. Strings are not coerced.
func (p CodecParameters) GetInt(key string) (int, bool) {
	value, ok := p[key]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
		return 0, false
	case float32:
		if v == float32(int(v)) {
			return int(v), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// GetString returns the string value of the given parameter.
func (p CodecParameters) GetString(key string) (string, bool) {
	value, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// OrInt returns the integer value of the given parameter, or def when the
// parameter is absent or not an integer.
func (p CodecParameters) OrInt(key string, def int) int {
	if v, ok := p.GetInt(key); ok {
		return v
	}
	return def
}

// Apt returns the "apt" parameter of an RTX codec: the payload type of the
// media codec it retransmits.
func (p CodecParameters) Apt() (byte, bool) {
	v, ok := p.GetInt("apt")
	if !ok || v < 0 || v > 255 {
		return 0, false
	}
	return byte(v), true
}

// PacketizationMode returns the H264 "packetization-mode" parameter,
// defaulting to 0 as RFC 6184 does.
func (p CodecParameters) PacketizationMode() int {
	return p.OrInt("packetization-mode", 0)
}

// ProfileId returns the VP9 "profile-id" parameter, defaulting to 0.
func (p CodecParameters) ProfileId() int {
	return p.OrInt("profile-id", 0)
}

// ProfileLevelId returns the H264 "profile-level-id" parameter, or the
// empty string when absent. An all digit id such as "640032" may have been
// parsed into an int; it is formatted back to its string form.
func (p CodecParameters) ProfileLevelId() string {
	if s, ok := p.GetString("profile-level-id"); ok {
		return s
	}
	if v, ok := p.GetInt("profile-level-id"); ok {
		return strconv.Itoa(v)
	}
	return ""
}
