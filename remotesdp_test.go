// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRemoteSdp() *RemoteSdp {
	return NewRemoteSdp(RemoteSdpOptions{
		IceParameters:  testIceParameters(),
		IceCandidates:  testIceCandidates(),
		DtlsParameters: testDtlsParameters(),
		SctpParameters: testSctpParameters(),
	})
}

func sendAudioSection(t *testing.T, remoteSdp *RemoteSdp, mid, reuseMid string) {
	t.Helper()

	offerRtpParameters := audioOfferRtpParameters()
	offerRtpParameters.Mid = mid

	err := remoteSdp.Send(SendOptions{
		OfferMediaObject: &MediaObject{
			Mid:       mid,
			Kind:      MediaKindAudio,
			Protocol:  "UDP/TLS/RTP/SAVPF",
			Direction: DirectionSendonly,
			Ext: []*Extmap{
				{Value: 1, Uri: "urn:ietf:params:rtp-hdrext:sdes:mid"},
			},
		},
		ReuseMid:            reuseMid,
		OfferRtpParameters:  offerRtpParameters,
		AnswerRtpParameters: audioOfferRtpParameters(),
	})
	require.NoError(t, err)
}

func TestNewRemoteSdpScaffold(t *testing.T) {
	remoteSdp := NewRemoteSdp(RemoteSdpOptions{
		IceParameters: testIceParameters(),
		IceCandidates: testIceCandidates(),
		DtlsParameters: &DtlsParameters{
			Role: DtlsRoleAuto,
			Fingerprints: []DtlsFingerprint{
				{Algorithm: "sha-1", Value: "11:22:33"},
				{Algorithm: "sha-256", Value: "AA:BB:CC"},
			},
		},
	})

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)

	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	assert.Equal(t, "mediasoup-client-go", obj.Origin.Username)
	assert.Equal(t, uint64(10000), obj.Origin.SessionId)
	assert.Equal(t, uint64(1), obj.Origin.SessionVersion)
	assert.Equal(t, "-", obj.Name)
	assert.True(t, obj.IceLite)
	assert.Equal(t, "WMS *", obj.MsidSemantic)

	// The strongest fingerprint is the last announced one.
	require.NotNil(t, obj.Fingerprint)
	assert.Equal(t, "sha-256", obj.Fingerprint.Algorithm)
	assert.Equal(t, "AA:BB:CC", obj.Fingerprint.Value)

	require.Len(t, obj.Groups, 1)
	assert.Equal(t, "BUNDLE", obj.Groups[0].Type)
	assert.Empty(t, obj.Groups[0].Mids)
	assert.Empty(t, obj.Media)

	// Every rendering bumps the origin version.
	raw, err = remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err = ParseSdp(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), obj.Origin.SessionVersion)
}

func TestNewRemoteSdpPlainRtp(t *testing.T) {
	remoteSdp := NewRemoteSdp(RemoteSdpOptions{
		PlainRtpParameters: &PlainRtpParameters{Ip: "1.2.3.4", IpVersion: 4, Port: 9999},
	})

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	assert.Equal(t, "1.2.3.4", obj.Origin.Address)
	assert.Nil(t, obj.Fingerprint)
	assert.Empty(t, obj.Groups)
	assert.Empty(t, obj.MsidSemantic)
}

func TestRemoteSdpSendFlow(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	sendAudioSection(t, remoteSdp, "0", "")
	sendAudioSection(t, remoteSdp, "1", "")

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	require.Len(t, obj.Media, 2)
	assert.Equal(t, "0", obj.Media[0].Mid)
	assert.Equal(t, "1", obj.Media[1].Mid)
	assert.Equal(t, []string{"0", "1"}, obj.Groups[0].Mids)

	for _, media := range obj.Media {
		assert.Equal(t, DirectionRecvonly, media.Direction)
		assert.Equal(t, "testufrag", media.IceUfrag)
		assert.Equal(t, "testpassword", media.IcePwd)
		assert.Equal(t, "actpass", media.Setup)
		assert.True(t, media.EndOfCandidates)
		require.Len(t, media.Candidates, 2)
	}
}

func TestRemoteSdpSendReuseUnknownMid(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	err := remoteSdp.Send(SendOptions{
		OfferMediaObject: &MediaObject{
			Mid:       "5",
			Kind:      MediaKindAudio,
			Protocol:  "UDP/TLS/RTP/SAVPF",
			Direction: DirectionSendonly,
		},
		ReuseMid:            "9",
		OfferRtpParameters:  audioOfferRtpParameters(),
		AnswerRtpParameters: audioOfferRtpParameters(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestRemoteSdpCloseAndReuse(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	sendAudioSection(t, remoteSdp, "0", "")
	sendAudioSection(t, remoteSdp, "1", "")

	assert.Equal(t, MediaSectionIdx{Idx: 2}, remoteSdp.GetNextMediaSectionIdx())

	assert.True(t, remoteSdp.CloseMediaSection("1"))

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	// The closed slot stays in the document with a zeroed port, but leaves
	// the BUNDLE group.
	require.Len(t, obj.Media, 2)
	assert.Equal(t, 0, obj.Media[1].Port)
	assert.Equal(t, DirectionInactive, obj.Media[1].Direction)
	assert.Equal(t, []string{"0"}, obj.Groups[0].Mids)

	// The next section goes into the closed slot.
	next := remoteSdp.GetNextMediaSectionIdx()
	assert.Equal(t, MediaSectionIdx{Idx: 1, ReuseMid: "1"}, next)

	sendAudioSection(t, remoteSdp, "2", next.ReuseMid)

	assert.Len(t, remoteSdp.mediaSections, 2)

	raw, err = remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err = ParseSdp(raw)
	require.NoError(t, err)

	require.Len(t, obj.Media, 2)
	assert.Equal(t, "2", obj.Media[1].Mid)
	assert.NotEqual(t, 0, obj.Media[1].Port)
	assert.Equal(t, []string{"0", "2"}, obj.Groups[0].Mids)

	assert.Equal(t, MediaSectionIdx{Idx: 2}, remoteSdp.GetNextMediaSectionIdx())
}

func TestRemoteSdpCloseFirstSection(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	sendAudioSection(t, remoteSdp, "0", "")
	sendAudioSection(t, remoteSdp, "1", "")

	// Closing the first section would break the bundled transport, so it is
	// disabled instead.
	assert.False(t, remoteSdp.CloseMediaSection("0"))

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	assert.Equal(t, DirectionInactive, obj.Media[0].Direction)
	assert.NotEqual(t, 0, obj.Media[0].Port)
	assert.Equal(t, []string{"0", "1"}, obj.Groups[0].Mids)

	// Unknown mids are reported, not acted on.
	assert.False(t, remoteSdp.CloseMediaSection("99"))
}

func TestRemoteSdpReceiveFlow(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	offerRtpParameters := &RtpParameters{
		Mid: "0",
		Codecs: []*RtpCodecParameters{
			{
				MimeType:    "audio/opus",
				PayloadType: 100,
				ClockRate:   48000,
				Channels:    2,
			},
		},
	}

	err := remoteSdp.Receive(ReceiveOptions{
		Mid:                "0",
		Kind:               MediaKindAudio,
		OfferRtpParameters: offerRtpParameters,
		StreamId:           "streamid",
		TrackId:            "trackid",
	})
	require.NoError(t, err)

	// The input parameters are not touched, completion works on a clone.
	assert.Empty(t, offerRtpParameters.Encodings)
	assert.Nil(t, offerRtpParameters.Rtcp)

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	require.Len(t, obj.Media, 1)
	media := obj.Media[0]
	assert.Equal(t, "0", media.Mid)
	assert.Equal(t, DirectionSendonly, media.Direction)
	assert.Equal(t, "streamid trackid", media.Msid)

	// An SSRC was allocated and a CNAME synthesized.
	require.NotEmpty(t, media.Ssrcs)
	cname := GetCname(media)
	assert.Len(t, cname, 16)
	assert.NotZero(t, media.Ssrcs[0].Id)
	assert.Empty(t, media.SsrcGroups)

	// A second receiver on a live mid is refused.
	err = remoteSdp.Receive(ReceiveOptions{
		Mid:                "0",
		Kind:               MediaKindAudio,
		OfferRtpParameters: offerRtpParameters,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoteSdpReceiveAllocatesRtxSsrc(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	err := remoteSdp.Receive(ReceiveOptions{
		Mid:  "0",
		Kind: MediaKindVideo,
		OfferRtpParameters: &RtpParameters{
			Mid: "0",
			Codecs: []*RtpCodecParameters{
				{MimeType: "video/VP8", PayloadType: 101, ClockRate: 90000},
				{MimeType: "video/rtx", PayloadType: 102, ClockRate: 90000, Parameters: CodecParameters{"apt": 101}},
			},
		},
		StreamId: "streamid",
		TrackId:  "trackid",
	})
	require.NoError(t, err)

	media := remoteSdp.mediaSections[0].GetObject()

	// Media plus RTX stream paired through a FID group.
	require.Len(t, media.SsrcGroups, 1)
	group := media.SsrcGroups[0]
	assert.Equal(t, "FID", group.Semantics)
	require.Len(t, group.Ssrcs, 2)
	assert.NotZero(t, group.Ssrcs[0])
	assert.NotZero(t, group.Ssrcs[1])
	assert.NotEqual(t, group.Ssrcs[0], group.Ssrcs[1])
}

func TestRemoteSdpReceiveReusesClosedSlot(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	receive := func(mid string) error {
		return remoteSdp.Receive(ReceiveOptions{
			Mid:  mid,
			Kind: MediaKindAudio,
			OfferRtpParameters: &RtpParameters{
				Mid: mid,
				Codecs: []*RtpCodecParameters{
					{MimeType: "audio/opus", PayloadType: 100, ClockRate: 48000, Channels: 2},
				},
			},
			StreamId: "streamid",
			TrackId:  "track-" + mid,
		})
	}

	require.NoError(t, receive("0"))
	require.NoError(t, receive("1"))
	require.True(t, remoteSdp.CloseMediaSection("1"))

	require.NoError(t, receive("2"))

	assert.Len(t, remoteSdp.mediaSections, 2)
	assert.Equal(t, "2", remoteSdp.mediaSections[1].Mid())

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	require.Len(t, obj.Media, 2)
	assert.Equal(t, []string{"0", "2"}, obj.Groups[0].Mids)
}

func TestRemoteSdpSctpAssociation(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	remoteSdp.ReceiveSctpAssociation(false)

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	require.Len(t, obj.Media, 1)
	media := obj.Media[0]
	assert.Equal(t, MediaKindApplication, media.Kind)
	assert.Equal(t, "datachannel", media.Mid)
	assert.Equal(t, "UDP/DTLS/SCTP", media.Protocol)
	assert.Equal(t, "webrtc-datachannel", media.Payloads)
	assert.Equal(t, 5000, media.SctpPort)
	assert.Equal(t, 262144, media.MaxMessageSize)
	assert.Equal(t, []string{"datachannel"}, obj.Groups[0].Mids)
}

func TestRemoteSdpSctpAssociationLegacy(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	remoteSdp.ReceiveSctpAssociation(true)

	media := remoteSdp.mediaSections[0].GetObject()
	assert.Equal(t, "5000", media.Payloads)
	require.NotNil(t, media.Sctpmap)
	assert.Equal(t, 5000, media.Sctpmap.Port)
}

func TestRemoteSdpSendSctpAssociation(t *testing.T) {
	remoteSdp := newTestRemoteSdp()

	remoteSdp.SendSctpAssociation(&MediaObject{
		Mid:      "dc",
		Kind:     MediaKindApplication,
		Protocol: "UDP/DTLS/SCTP",
		SctpPort: 5000,
	})

	media := remoteSdp.mediaSections[0].GetObject()
	assert.Equal(t, "dc", media.Mid)
	assert.Equal(t, "webrtc-datachannel", media.Payloads)
	assert.Equal(t, 5000, media.SctpPort)
}

func TestRemoteSdpUpdateIceParameters(t *testing.T) {
	remoteSdp := newTestRemoteSdp()
	sendAudioSection(t, remoteSdp, "0", "")

	remoteSdp.UpdateIceParameters(&IceParameters{
		UsernameFragment: "newufrag",
		Password:         "newpassword",
	})

	raw, err := remoteSdp.GetSdp()
	require.NoError(t, err)
	obj, err := ParseSdp(raw)
	require.NoError(t, err)

	assert.False(t, obj.IceLite)
	assert.Equal(t, "newufrag", obj.Media[0].IceUfrag)
	assert.Equal(t, "newpassword", obj.Media[0].IcePwd)
}

func TestRemoteSdpUpdateDtlsRole(t *testing.T) {
	remoteSdp := newTestRemoteSdp()
	sendAudioSection(t, remoteSdp, "0", "")

	remoteSdp.UpdateDtlsRole(DtlsRoleClient)
	assert.Equal(t, "active", remoteSdp.mediaSections[0].GetObject().Setup)

	remoteSdp.UpdateDtlsRole(DtlsRoleServer)
	assert.Equal(t, "passive", remoteSdp.mediaSections[0].GetObject().Setup)
}

func TestRemoteSdpPauseResume(t *testing.T) {
	remoteSdp := newTestRemoteSdp()
	sendAudioSection(t, remoteSdp, "0", "")

	remoteSdp.PauseMediaSection("0")
	assert.Equal(t, DirectionInactive, remoteSdp.mediaSections[0].GetObject().Direction)

	remoteSdp.ResumeSendingMediaSection("0")
	assert.Equal(t, DirectionRecvonly, remoteSdp.mediaSections[0].GetObject().Direction)

	err := remoteSdp.Receive(ReceiveOptions{
		Mid:  "1",
		Kind: MediaKindAudio,
		OfferRtpParameters: &RtpParameters{
			Mid: "1",
			Codecs: []*RtpCodecParameters{
				{MimeType: "audio/opus", PayloadType: 100, ClockRate: 48000, Channels: 2},
			},
		},
		TrackId: "trackid",
	})
	require.NoError(t, err)

	remoteSdp.PauseMediaSection("1")
	assert.Equal(t, DirectionInactive, remoteSdp.mediaSections[1].GetObject().Direction)

	remoteSdp.ResumeReceivingMediaSection("1")
	assert.Equal(t, DirectionSendonly, remoteSdp.mediaSections[1].GetObject().Direction)

	// Unknown mids are logged and skipped.
	remoteSdp.PauseMediaSection("99")
	remoteSdp.ResumeSendingMediaSection("99")
	remoteSdp.ResumeReceivingMediaSection("99")
	remoteSdp.DisableMediaSection("99")
}

func TestSsrcAllocator(t *testing.T) {
	allocator := NewSsrcAllocator()
	allocator.Reserve(12345)

	seen := map[uint32]bool{}
	for i := 0; i < 100; i++ {
		ssrc := allocator.Allocate()
		assert.NotZero(t, ssrc)
		assert.NotEqual(t, uint32(12345), ssrc)
		assert.False(t, seen[ssrc])
		seen[ssrc] = true
	}
}
