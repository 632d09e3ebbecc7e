// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import "strings"

// RtpCapabilities define what an endpoint can receive: its supported codecs
// and RTP header extensions.
type RtpCapabilities struct {
	// Codecs is the list of supported media and RTX codecs.
	Codecs []*RtpCodecCapability `json:"codecs,omitempty"`

	// HeaderExtensions is the list of supported RTP header extensions.
	HeaderExtensions []*RtpHeaderExtension `json:"headerExtensions,omitempty"`
}

// RtpCodecCapability provides information on the capabilities of a codec
// within the RTP capabilities. Exact criteria for codec matching are
// described in GetExtendedRtpCapabilities.
type RtpCodecCapability struct {
	// Kind is the media kind ("audio" or "video").
	Kind MediaKind `json:"kind"`

	// MimeType is the codec MIME type ("audio/opus", "video/VP8", ...).
	// Matching is case insensitive.
	MimeType string `json:"mimeType"`

	// PreferredPayloadType is the preferred RTP payload type.
	PreferredPayloadType byte `json:"preferredPayloadType,omitempty"`

	// ClockRate is the codec clock rate expressed in Hertz.
	ClockRate int `json:"clockRate"`

	// Channels is the number of channels supported. Just for audio,
	// default 1.
	Channels int `json:"channels,omitempty"`

	// Parameters are codec-specific parameters available for signaling,
	// such as "packetization-mode" and "profile-level-id" in H264 or
	// "profile-id" in VP9.
	Parameters CodecParameters `json:"parameters,omitempty"`

	// RtcpFeedback are the supported RTCP feedback mechanisms.
	RtcpFeedback []RtcpFeedback `json:"rtcpFeedback,omitempty"`
}

func (c *RtpCodecCapability) isRtxCodec() bool {
	return strings.HasSuffix(strings.ToLower(c.MimeType), "/rtx")
}

// RtcpFeedback provides information on an RTCP feedback message supported
// by a codec.
type RtcpFeedback struct {
	// Type is the feedback message type ("nack", "ccm", "goog-remb",
	// "transport-cc", ...).
	Type string `json:"type"`

	// Parameter is the optional feedback message parameter ("pli" or "fir"
	// for "ccm", ...).
	Parameter string `json:"parameter,omitempty"`
}

// RtpHeaderExtension provides information on a supported RTP header
// extension within the RTP capabilities.
type RtpHeaderExtension struct {
	// Kind is the media kind the extension applies to. Empty means both.
	Kind MediaKind `json:"kind,omitempty"`

	// Uri is the extension URI as defined in RFC 5285.
	Uri string `json:"uri"`

	// PreferredId is the preferred numeric id that goes in the packet.
	PreferredId int `json:"preferredId"`

	// PreferredEncrypt indicates whether the extension is preferred to be
	// encrypted as per RFC 6904.
	PreferredEncrypt bool `json:"preferredEncrypt,omitempty"`

	// Direction is the direction in which the extension is used, from the
	// perspective of the endpoint advertising it. Default "sendrecv".
	Direction Direction `json:"direction,omitempty"`
}

// RtpParameters describe a media stream to be sent or received: the
// negotiated codec set, header extensions, encoding layers and RTCP
// settings.
type RtpParameters struct {
	// Mid is the MID RTP extension value, unique per RtpParameters within
	// one transport.
	Mid string `json:"mid,omitempty"`

	// Codecs are the negotiated media and RTX codecs.
	Codecs []*RtpCodecParameters `json:"codecs"`

	// HeaderExtensions are the negotiated RTP header extensions.
	HeaderExtensions []*RtpHeaderExtensionParameters `json:"headerExtensions,omitempty"`

	// Encodings are the simulcast or SVC layers of the stream.
	Encodings []*RtpEncodingParameters `json:"encodings,omitempty"`

	// Rtcp holds the stream RTCP settings.
	Rtcp *RtcpParameters `json:"rtcp,omitempty"`
}

// Clone returns a deep copy of the parameters.
func (p *RtpParameters) Clone() *RtpParameters {
	if p == nil {
		return nil
	}
	clone := &RtpParameters{Mid: p.Mid}
	for _, codec := range p.Codecs {
		clone.Codecs = append(clone.Codecs, codec.Clone())
	}
	for _, ext := range p.HeaderExtensions {
		extClone := *ext
		extClone.Parameters = ext.Parameters.Clone()
		clone.HeaderExtensions = append(clone.HeaderExtensions, &extClone)
	}
	for _, encoding := range p.Encodings {
		encodingClone := *encoding
		if encoding.Rtx != nil {
			rtx := *encoding.Rtx
			encodingClone.Rtx = &rtx
		}
		clone.Encodings = append(clone.Encodings, &encodingClone)
	}
	if p.Rtcp != nil {
		rtcp := *p.Rtcp
		clone.Rtcp = &rtcp
	}
	return clone
}

// RtpCodecParameters provide information on codec settings negotiated for a
// sending or receiving media stream.
type RtpCodecParameters struct {
	// MimeType is the codec MIME type. Matching is case insensitive.
	MimeType string `json:"mimeType"`

	// PayloadType is the RTP payload type bound to this codec.
	PayloadType byte `json:"payloadType"`

	// ClockRate is the codec clock rate expressed in Hertz.
	ClockRate int `json:"clockRate"`

	// Channels is the number of channels. Just for audio, default 1.
	Channels int `json:"channels,omitempty"`

	// Parameters are the codec-specific parameters.
	Parameters CodecParameters `json:"parameters,omitempty"`

	// RtcpFeedback are the negotiated RTCP feedback mechanisms.
	RtcpFeedback []RtcpFeedback `json:"rtcpFeedback,omitempty"`
}

func (c *RtpCodecParameters) isRtxCodec() bool {
	return strings.HasSuffix(strings.ToLower(c.MimeType), "/rtx")
}

// Clone returns a deep copy of the codec parameters.
func (c *RtpCodecParameters) Clone() *RtpCodecParameters {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Parameters = c.Parameters.Clone()
	clone.RtcpFeedback = append([]RtcpFeedback(nil), c.RtcpFeedback...)
	return &clone
}

// RtpHeaderExtensionParameters provide information on a negotiated RTP
// header extension.
type RtpHeaderExtensionParameters struct {
	// Uri is the extension URI as defined in RFC 5285.
	Uri string `json:"uri"`

	// Id is the numeric id that goes in the packet.
	Id int `json:"id"`

	// Encrypt indicates whether the extension is encrypted as per RFC 6904.
	Encrypt bool `json:"encrypt,omitempty"`

	// Parameters are extension-specific parameters.
	Parameters CodecParameters `json:"parameters,omitempty"`
}

// RtpEncodingParameters provide information on one encoding layer of a
// stream: a simulcast stream or an SVC encoding.
type RtpEncodingParameters struct {
	// Ssrc is the media SSRC of the layer.
	Ssrc uint32 `json:"ssrc,omitempty"`

	// Rid is the RID RTP extension value of the layer.
	Rid string `json:"rid,omitempty"`

	// CodecPayloadType is the payload type of the codec used by the layer.
	CodecPayloadType byte `json:"codecPayloadType,omitempty"`

	// Rtx holds the RTX retransmission stream of the layer.
	Rtx *RtpEncodingRtx `json:"rtx,omitempty"`

	// Dtx indicates whether discontinuous transmission is used. Default
	// false.
	Dtx bool `json:"dtx,omitempty"`

	// ScalabilityMode is the spatial and temporal layer string ("S3T3",
	// "L1T3", ...).
	ScalabilityMode string `json:"scalabilityMode,omitempty"`

	// ScaleResolutionDownBy is the factor the layer resolution is scaled
	// down by.
	ScaleResolutionDownBy float64 `json:"scaleResolutionDownBy,omitempty"`

	// MaxBitrate is the maximum bitrate of the layer in bps.
	MaxBitrate int `json:"maxBitrate,omitempty"`

	// MaxFramerate is the maximum framerate of the layer.
	MaxFramerate int `json:"maxFramerate,omitempty"`

	// Active indicates whether the layer is being sent.
	Active bool `json:"active,omitempty"`
}

// RtpEncodingRtx holds the SSRC of the RTX retransmission stream paired
// with an encoding layer.
type RtpEncodingRtx struct {
	Ssrc uint32 `json:"ssrc"`
}

// RtcpParameters provide information on the RTCP settings of a stream.
type RtcpParameters struct {
	// Cname is the canonical name used in RTCP SDES items.
	Cname string `json:"cname,omitempty"`

	// ReducedSize indicates whether reduced size RTCP (RFC 5506) is used.
	// Default true.
	ReducedSize *bool `json:"reducedSize,omitempty"`

	// Mux indicates whether RTCP is multiplexed with RTP. Default true.
	Mux *bool `json:"mux,omitempty"`
}

// GetReducedSize returns the ReducedSize value, defaulting to true.
func (r *RtcpParameters) GetReducedSize() bool {
	if r == nil || r.ReducedSize == nil {
		return true
	}
	return *r.ReducedSize
}
