// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"regexp"
	"strings"
)

var mimeTypeRegexp = regexp.MustCompile(`(?i)^(audio|video)/(.+)`)

// ValidateRtpCapabilities validates the capabilities in place, filling
// defaults. It fails with a ValidationError naming the offending field and
// never repairs semantic mismatches, only structural well-formedness.
func ValidateRtpCapabilities(caps *RtpCapabilities) error {
	if caps == nil {
		return newValidationError("", "missing capabilities")
	}
	for _, codec := range caps.Codecs {
		if err := ValidateRtpCodecCapability(codec); err != nil {
			return err
		}
	}
	for _, ext := range caps.HeaderExtensions {
		if err := ValidateRtpHeaderExtension(ext); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRtpCodecCapability validates the codec capability in place. The
// kind is derived from the MIME type major, audio channels default to 1 and
// are cleared for video.
func ValidateRtpCodecCapability(codec *RtpCodecCapability) error {
	if codec == nil {
		return newValidationError("codec", "missing codec")
	}

	match := mimeTypeRegexp.FindStringSubmatch(codec.MimeType)
	if match == nil {
		return newValidationError("codec.mimeType", "invalid value %q", codec.MimeType)
	}
	codec.Kind = MediaKind(strings.ToLower(match[1]))

	if codec.ClockRate == 0 {
		return newValidationError("codec.clockRate", "missing value")
	}

	if codec.Kind == MediaKindAudio {
		if codec.Channels == 0 {
			codec.Channels = 1
		}
	} else {
		codec.Channels = 0
	}

	if err := validateCodecParameters("codec.parameters", codec.Parameters); err != nil {
		return err
	}

	for i := range codec.RtcpFeedback {
		if err := ValidateRtcpFeedback(&codec.RtcpFeedback[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRtcpFeedback validates an RTCP feedback entry.
func ValidateRtcpFeedback(fb *RtcpFeedback) error {
	if fb == nil || fb.Type == "" {
		return newValidationError("rtcpFeedback.type", "missing value")
	}
	return nil
}

// ValidateRtpHeaderExtension validates the header extension in place. The
// direction defaults to "sendrecv".
func ValidateRtpHeaderExtension(ext *RtpHeaderExtension) error {
	if ext == nil {
		return newValidationError("headerExtension", "missing extension")
	}

	switch ext.Kind {
	case MediaKind(""), MediaKindAudio, MediaKindVideo:
	default:
		return newValidationError("headerExtension.kind", "invalid value %q", ext.Kind)
	}

	if ext.Uri == "" {
		return newValidationError("headerExtension.uri", "missing value")
	}
	if ext.PreferredId == 0 {
		return newValidationError("headerExtension.preferredId", "missing value")
	}

	switch ext.Direction {
	case DirectionSendrecv, DirectionSendonly, DirectionRecvonly, DirectionInactive:
	case Direction(""):
		ext.Direction = DirectionSendrecv
	default:
		return newValidationError("headerExtension.direction", "invalid value %q", ext.Direction)
	}
	return nil
}

// ValidateRtpParameters validates the parameters in place, filling
// defaults.
func ValidateRtpParameters(params *RtpParameters) error {
	if params == nil {
		return newValidationError("", "missing parameters")
	}
	for _, codec := range params.Codecs {
		if err := ValidateRtpCodecParameters(codec); err != nil {
			return err
		}
	}
	for _, ext := range params.HeaderExtensions {
		if err := ValidateRtpHeaderExtensionParameters(ext); err != nil {
			return err
		}
	}
	for _, encoding := range params.Encodings {
		if err := ValidateRtpEncodingParameters(encoding); err != nil {
			return err
		}
	}
	return ValidateRtcpParameters(params.Rtcp)
}

// ValidateRtpCodecParameters validates the codec in place.
func ValidateRtpCodecParameters(codec *RtpCodecParameters) error {
	if codec == nil {
		return newValidationError("codec", "missing codec")
	}

	match := mimeTypeRegexp.FindStringSubmatch(codec.MimeType)
	if match == nil {
		return newValidationError("codec.mimeType", "invalid value %q", codec.MimeType)
	}

	if codec.ClockRate == 0 {
		return newValidationError("codec.clockRate", "missing value")
	}

	if strings.EqualFold(match[1], string(MediaKindAudio)) {
		if codec.Channels == 0 {
			codec.Channels = 1
		}
	} else {
		codec.Channels = 0
	}

	if err := validateCodecParameters("codec.parameters", codec.Parameters); err != nil {
		return err
	}

	for i := range codec.RtcpFeedback {
		if err := ValidateRtcpFeedback(&codec.RtcpFeedback[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRtpHeaderExtensionParameters validates the extension in place.
func ValidateRtpHeaderExtensionParameters(ext *RtpHeaderExtensionParameters) error {
	if ext == nil {
		return newValidationError("headerExtension", "missing extension")
	}
	if ext.Uri == "" {
		return newValidationError("headerExtension.uri", "missing value")
	}
	if ext.Id == 0 {
		return newValidationError("headerExtension.id", "missing value")
	}
	return validateCodecParameters("headerExtension.parameters", ext.Parameters)
}

// ValidateRtpEncodingParameters validates the encoding. Dtx defaults to
// false by virtue of being a plain bool.
func ValidateRtpEncodingParameters(encoding *RtpEncodingParameters) error {
	if encoding == nil {
		return newValidationError("encoding", "missing encoding")
	}
	if encoding.Rtx != nil && encoding.Rtx.Ssrc == 0 {
		return newValidationError("encoding.rtx.ssrc", "missing value")
	}
	return nil
}

// ValidateRtcpParameters validates the RTCP settings. A nil value is valid,
// ReducedSize defaults to true through its accessor.
func ValidateRtcpParameters(rtcp *RtcpParameters) error {
	return nil
}

// ValidateSctpCapabilities validates the SCTP capabilities.
func ValidateSctpCapabilities(caps *SctpCapabilities) error {
	if caps == nil {
		return newValidationError("", "missing capabilities")
	}
	return ValidateNumSctpStreams(caps.NumStreams)
}

// ValidateNumSctpStreams validates the stream counts.
func ValidateNumSctpStreams(numStreams NumSctpStreams) error {
	if numStreams.OS == 0 {
		return newValidationError("numStreams.OS", "missing value")
	}
	if numStreams.MIS == 0 {
		return newValidationError("numStreams.MIS", "missing value")
	}
	return nil
}

// ValidateSctpParameters validates the SCTP association settings.
func ValidateSctpParameters(params *SctpParameters) error {
	if params == nil {
		return newValidationError("", "missing parameters")
	}
	if params.Port == 0 {
		return newValidationError("sctp.port", "missing value")
	}
	if params.OS == 0 {
		return newValidationError("sctp.OS", "missing value")
	}
	if params.MIS == 0 {
		return newValidationError("sctp.MIS", "missing value")
	}
	if params.MaxMessageSize == 0 {
		return newValidationError("sctp.maxMessageSize", "missing value")
	}
	return nil
}

// ValidateSctpStreamParameters validates the stream parameters in place.
// Ordered defaults to true and is forced false when a partial reliability
// option is set.
func ValidateSctpStreamParameters(params *SctpStreamParameters) error {
	if params == nil {
		return newValidationError("", "missing parameters")
	}

	orderedGiven := params.Ordered != nil
	if !orderedGiven {
		ordered := true
		params.Ordered = &ordered
	}

	if params.MaxPacketLifeTime > 0 && params.MaxRetransmits > 0 {
		return newValidationError("sctpStream", "cannot provide both maxPacketLifeTime and maxRetransmits")
	}

	switch {
	case orderedGiven && *params.Ordered && (params.MaxPacketLifeTime > 0 || params.MaxRetransmits > 0):
		return newValidationError("sctpStream.ordered", "cannot be ordered with maxPacketLifeTime or maxRetransmits")
	case !orderedGiven && (params.MaxPacketLifeTime > 0 || params.MaxRetransmits > 0):
		ordered := false
		params.Ordered = &ordered
	}
	return nil
}

// validateCodecParameters enforces that every parameter value is a string
// or an integer, normalizing integral floats produced by JSON decoding into
// ints. The "apt" parameter must be an integer when present.
func validateCodecParameters(field string, params CodecParameters) error {
	for key, value := range params {
		switch v := value.(type) {
		case string:
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			if n, ok := params.GetInt(key); ok {
				params[key] = n
			}
		case float64:
			if v != float64(int(v)) {
				return newValidationError(field+"."+key, "must be a string or integer")
			}
			params[key] = int(v)
		case float32:
			if v != float32(int(v)) {
				return newValidationError(field+"."+key, "must be a string or integer")
			}
			params[key] = int(v)
		default:
			return newValidationError(field+"."+key, "must be a string or integer")
		}

		if key == "apt" {
			if _, ok := params[key].(int); !ok {
				return newValidationError(field+".apt", "must be an integer")
			}
		}
	}
	return nil
}
