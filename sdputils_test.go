// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRtpCapabilities(t *testing.T) {
	obj, err := ParseSdp(browserOfferSdp)
	require.NoError(t, err)

	caps := ExtractRtpCapabilities(obj)

	require.Len(t, caps.Codecs, 4)

	opus := caps.Codecs[0]
	assert.Equal(t, MediaKindAudio, opus.Kind)
	assert.Equal(t, "audio/opus", opus.MimeType)
	assert.Equal(t, byte(111), opus.PreferredPayloadType)
	assert.Equal(t, 48000, opus.ClockRate)
	assert.Equal(t, 2, opus.Channels)
	assert.Equal(t, CodecParameters{"minptime": 10, "useinbandfec": 1}, opus.Parameters)
	assert.Equal(t, []RtcpFeedback{{Type: "transport-cc"}}, opus.RtcpFeedback)

	isac := caps.Codecs[1]
	assert.Equal(t, "audio/ISAC", isac.MimeType)
	assert.Equal(t, byte(103), isac.PreferredPayloadType)
	assert.Empty(t, isac.Parameters)
	assert.Empty(t, isac.RtcpFeedback)

	vp8 := caps.Codecs[2]
	assert.Equal(t, MediaKindVideo, vp8.Kind)
	assert.Equal(t, "video/VP8", vp8.MimeType)
	// The wildcard rtcp-fb entry names no payload type, so it contributes
	// nothing.
	assert.Equal(t, []RtcpFeedback{
		{Type: "nack"},
		{Type: "nack", Parameter: "pli"},
	}, vp8.RtcpFeedback)

	rtx := caps.Codecs[3]
	assert.Equal(t, "video/rtx", rtx.MimeType)
	assert.Equal(t, CodecParameters{"apt": 96}, rtx.Parameters)

	// The encrypted audio level extension is not usable and gets skipped.
	require.Len(t, caps.HeaderExtensions, 4)
	assert.Equal(t, &RtpHeaderExtension{
		Kind:        MediaKindAudio,
		Uri:         "urn:ietf:params:rtp-hdrext:ssrc-audio-level",
		PreferredId: 1,
	}, caps.HeaderExtensions[0])
	assert.Equal(t, &RtpHeaderExtension{
		Kind:        MediaKindVideo,
		Uri:         "http://www.ietf.org/id/draft-holmer-rmcat-transport-wide-cc-extensions-01",
		PreferredId: 5,
	}, caps.HeaderExtensions[3])
}

func TestExtractRtpCapabilitiesFirstSectionPerKind(t *testing.T) {
	raw := `v=0
o=- 1 1 IN IP4 127.0.0.1
s=-
t=0 0
m=audio 9 UDP/TLS/RTP/SAVPF 111
a=mid:0
a=rtpmap:111 opus/48000/2
m=audio 9 UDP/TLS/RTP/SAVPF 9
a=mid:1
a=rtpmap:9 G722/8000
`
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	caps := ExtractRtpCapabilities(obj)
	require.Len(t, caps.Codecs, 1)
	assert.Equal(t, "audio/opus", caps.Codecs[0].MimeType)
}

func TestExtractRtpCapabilitiesProfileLevelId(t *testing.T) {
	// An all-digit profile-level-id parses as an integer but always means a
	// hex string.
	raw := `v=0
o=- 1 1 IN IP4 127.0.0.1
s=-
t=0 0
m=video 9 UDP/TLS/RTP/SAVPF 102
a=mid:0
a=rtpmap:102 H264/90000
a=fmtp:102 packetization-mode=1;profile-level-id=420034
`
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	caps := ExtractRtpCapabilities(obj)
	require.Len(t, caps.Codecs, 1)
	assert.Equal(t, "420034", caps.Codecs[0].Parameters["profile-level-id"])
	assert.Equal(t, 1, caps.Codecs[0].Parameters.OrInt("packetization-mode", 0))
}

func TestExtractDtlsParameters(t *testing.T) {
	obj, err := ParseSdp(browserOfferSdp)
	require.NoError(t, err)

	dtlsParameters, err := ExtractDtlsParameters(obj)
	require.NoError(t, err)

	assert.Equal(t, DtlsRoleAuto, dtlsParameters.Role)
	require.Len(t, dtlsParameters.Fingerprints, 1)
	assert.Equal(t, "sha-256", dtlsParameters.Fingerprints[0].Algorithm)
	assert.NotEmpty(t, dtlsParameters.Fingerprints[0].Value)
}

func TestExtractDtlsParametersActiveSetup(t *testing.T) {
	raw := `v=0
o=- 1 1 IN IP4 127.0.0.1
s=-
t=0 0
a=fingerprint:sha-256 AA:BB:CC:DD
m=audio 9 UDP/TLS/RTP/SAVPF 111
a=mid:0
a=ice-ufrag:ufrag1
a=ice-pwd:pwdpwdpwdpwdpwdpwdpwd1
a=setup:active
a=rtpmap:111 opus/48000/2
`
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	dtlsParameters, err := ExtractDtlsParameters(obj)
	require.NoError(t, err)

	// The fingerprint comes from the session level here.
	assert.Equal(t, DtlsRoleClient, dtlsParameters.Role)
	assert.Equal(t, "AA:BB:CC:DD", dtlsParameters.Fingerprints[0].Value)
}

func TestExtractDtlsParametersErrors(t *testing.T) {
	raw := `v=0
o=- 1 1 IN IP4 127.0.0.1
s=-
t=0 0
m=audio 0 UDP/TLS/RTP/SAVPF 111
a=mid:0
a=rtpmap:111 opus/48000/2
`
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	_, err = ExtractDtlsParameters(obj)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	raw = `v=0
o=- 1 1 IN IP4 127.0.0.1
s=-
t=0 0
m=audio 9 UDP/TLS/RTP/SAVPF 111
a=mid:0
a=ice-ufrag:ufrag1
a=ice-pwd:pwdpwdpwdpwdpwdpwdpwd1
a=rtpmap:111 opus/48000/2
`
	obj, err = ParseSdp(raw)
	require.NoError(t, err)

	_, err = ExtractDtlsParameters(obj)
	assert.ErrorIs(t, err, ErrMissingFingerprint)
}

func TestGetCname(t *testing.T) {
	media := &MediaObject{
		Ssrcs: []*SsrcLine{
			{Id: 1111, Attribute: "msid", Value: "stream track"},
			{Id: 1111, Attribute: "cname", Value: "thecname"},
		},
	}
	assert.Equal(t, "thecname", GetCname(media))

	assert.Equal(t, "", GetCname(&MediaObject{}))
}

func TestApplyCodecParameters(t *testing.T) {
	offerRtpParameters := &RtpParameters{
		Codecs: []*RtpCodecParameters{
			{
				MimeType:    "audio/opus",
				PayloadType: 111,
				ClockRate:   48000,
				Channels:    2,
				Parameters: CodecParameters{
					"sprop-stereo": 1,
				},
			},
		},
	}
	answerMediaObject := &MediaObject{
		Rtp: []*RtpMap{
			{PayloadType: 111, Codec: "opus", ClockRate: 48000, Channels: 2},
		},
	}

	ApplyCodecParameters(offerRtpParameters, answerMediaObject)

	require.Len(t, answerMediaObject.Fmtp, 1)
	assert.Equal(t, byte(111), answerMediaObject.Fmtp[0].PayloadType)
	assert.Equal(t, 1, answerMediaObject.Fmtp[0].Parameters.OrInt("stereo", -1))
}

func TestApplyCodecParametersMonoAndMissing(t *testing.T) {
	offerRtpParameters := &RtpParameters{
		Codecs: []*RtpCodecParameters{
			{
				MimeType:    "audio/opus",
				PayloadType: 111,
				ClockRate:   48000,
				Parameters: CodecParameters{
					"sprop-stereo": 0,
				},
			},
		},
	}
	answerMediaObject := &MediaObject{
		Rtp: []*RtpMap{
			{PayloadType: 111, Codec: "opus", ClockRate: 48000, Channels: 2},
		},
		Fmtp: []*Fmtp{
			{PayloadType: 111, Parameters: CodecParameters{"useinbandfec": 1}},
		},
	}

	ApplyCodecParameters(offerRtpParameters, answerMediaObject)

	// The existing fmtp entry is extended, not replaced.
	require.Len(t, answerMediaObject.Fmtp, 1)
	assert.Equal(t, CodecParameters{"useinbandfec": 1, "stereo": 0}, answerMediaObject.Fmtp[0].Parameters)

	// A codec the answer does not carry is left alone.
	other := &MediaObject{}
	ApplyCodecParameters(offerRtpParameters, other)
	assert.Empty(t, other.Fmtp)
}
