// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"strconv"
	"strings"
)

// ProducerCodecOptions tweaks the fmtp configuration that is answered for a
// sending media section. Nil fields leave the negotiated value untouched.
type ProducerCodecOptions struct {
	OpusStereo            *bool `json:"opusStereo,omitempty"`
	OpusFec               *bool `json:"opusFec,omitempty"`
	OpusDtx               *bool `json:"opusDtx,omitempty"`
	OpusMaxPlaybackRate   *int  `json:"opusMaxPlaybackRate,omitempty"`
	OpusMaxAverageBitrate *int  `json:"opusMaxAverageBitrate,omitempty"`
	OpusPtime             *int  `json:"opusPtime,omitempty"`

	VideoGoogleStartBitrate *int `json:"videoGoogleStartBitrate,omitempty"`
	VideoGoogleMaxBitrate   *int `json:"videoGoogleMaxBitrate,omitempty"`
	VideoGoogleMinBitrate   *int `json:"videoGoogleMinBitrate,omitempty"`
}

// MediaSection wraps one m= section of the synthesized remote description.
// A section is created in either offer or answer flavor and mutated in place
// as the stream it represents is paused, resumed or closed.
type MediaSection struct {
	mediaObject *MediaObject
	offer       bool
}

// OfferMediaSectionOptions configures NewOfferMediaSection.
type OfferMediaSectionOptions struct {
	IceParameters      *IceParameters
	IceCandidates      []*IceCandidate
	DtlsParameters     *DtlsParameters
	PlainRtpParameters *PlainRtpParameters
	SctpParameters     *SctpParameters

	Mid                string
	Kind               MediaKind
	OfferRtpParameters *RtpParameters
	StreamId           string
	TrackId            string
	OldDataChannelSpec bool
}

// AnswerMediaSectionOptions configures NewAnswerMediaSection.
type AnswerMediaSectionOptions struct {
	IceParameters      *IceParameters
	IceCandidates      []*IceCandidate
	DtlsParameters     *DtlsParameters
	PlainRtpParameters *PlainRtpParameters
	SctpParameters     *SctpParameters

	OfferMediaObject    *MediaObject
	OfferRtpParameters  *RtpParameters
	AnswerRtpParameters *RtpParameters
	CodecOptions        *ProducerCodecOptions
	ExtmapAllowMixed    bool
}

func newMediaSection(
	iceParameters *IceParameters,
	iceCandidates []*IceCandidate,
	dtlsParameters *DtlsParameters,
	offer bool,
) *MediaSection {
	section := &MediaSection{
		mediaObject: &MediaObject{},
		offer:       offer,
	}

	if iceParameters != nil {
		section.SetIceParameters(iceParameters)
	}

	for _, candidate := range iceCandidates {
		// mediasoup mandates rtcp-mux, so candidates are RTP component only.
		candidateCopy := *candidate
		section.mediaObject.Candidates = append(section.mediaObject.Candidates, &candidateCopy)
	}
	if len(iceCandidates) > 0 {
		section.mediaObject.EndOfCandidates = true
		section.mediaObject.IceOptions = "renomination"
	}

	if dtlsParameters != nil {
		section.SetDtlsRole(dtlsParameters.Role)
	}
	return section
}

// NewOfferMediaSection builds a media section announcing a remotely produced
// stream, or the remote end of an SCTP association, inside the offer that is
// handed to the local peer connection.
func NewOfferMediaSection(opts OfferMediaSectionOptions) *MediaSection {
	section := newMediaSection(opts.IceParameters, opts.IceCandidates, opts.DtlsParameters, true)
	media := section.mediaObject

	media.Mid = opts.Mid
	media.Kind = opts.Kind

	if opts.PlainRtpParameters == nil {
		media.Connection = &SdpConnection{NetworkType: "IN", AddressType: "IP4", Address: "127.0.0.1"}
		media.Port = 7
		if opts.SctpParameters == nil {
			media.Protocol = "UDP/TLS/RTP/SAVPF"
		} else {
			media.Protocol = "UDP/DTLS/SCTP"
		}
	} else {
		media.Connection = plainRtpConnection(opts.PlainRtpParameters)
		media.Port = opts.PlainRtpParameters.Port
		media.Protocol = "RTP/AVP"
	}

	switch opts.Kind {
	case MediaKindAudio, MediaKindVideo:
		media.Direction = DirectionSendonly
		if opts.TrackId != "" {
			media.Msid = msidValue(opts.StreamId, opts.TrackId)
		}

		offerRtpParameters := opts.OfferRtpParameters
		payloads := make([]string, 0, len(offerRtpParameters.Codecs))
		for _, codec := range offerRtpParameters.Codecs {
			payloads = append(payloads, strconv.Itoa(int(codec.PayloadType)))

			media.Rtp = append(media.Rtp, &RtpMap{
				PayloadType: codec.PayloadType,
				Codec:       codecName(codec.MimeType),
				ClockRate:   codec.ClockRate,
				Channels:    codec.Channels,
			})
			if len(codec.Parameters) > 0 {
				media.Fmtp = append(media.Fmtp, &Fmtp{
					PayloadType: codec.PayloadType,
					Parameters:  codec.Parameters.Clone(),
				})
			}
			for _, fb := range codec.RtcpFeedback {
				media.RtcpFb = append(media.RtcpFb, &RtcpFb{
					PayloadType: strconv.Itoa(int(codec.PayloadType)),
					Type:        fb.Type,
					Parameter:   fb.Parameter,
				})
			}
		}
		media.Payloads = strings.Join(payloads, " ")

		for _, ext := range offerRtpParameters.HeaderExtensions {
			media.Ext = append(media.Ext, &Extmap{Value: ext.Id, Uri: ext.Uri})
		}

		media.RtcpMux = true
		media.RtcpRsize = true

		if len(offerRtpParameters.Encodings) > 0 {
			encoding := offerRtpParameters.Encodings[0]
			ssrc := encoding.Ssrc
			var rtxSsrc uint32
			if encoding.Rtx != nil {
				rtxSsrc = encoding.Rtx.Ssrc
			}

			if ssrc != 0 {
				cname := ""
				if offerRtpParameters.Rtcp != nil {
					cname = offerRtpParameters.Rtcp.Cname
				}
				appendSsrcLines(media, ssrc, cname, opts.StreamId, opts.TrackId)
				if rtxSsrc != 0 {
					appendSsrcLines(media, rtxSsrc, cname, opts.StreamId, opts.TrackId)
					media.SsrcGroups = append(media.SsrcGroups, &SsrcGroup{
						Semantics: "FID",
						Ssrcs:     []uint32{ssrc, rtxSsrc},
					})
				}
			}
		}

	case MediaKindApplication:
		if !opts.OldDataChannelSpec {
			media.Payloads = "webrtc-datachannel"
			media.SctpPort = opts.SctpParameters.Port
			media.MaxMessageSize = opts.SctpParameters.MaxMessageSize
		} else {
			media.Payloads = strconv.Itoa(opts.SctpParameters.Port)
			media.Sctpmap = &Sctpmap{
				Port:           opts.SctpParameters.Port,
				App:            "webrtc-datachannel",
				MaxMessageSize: opts.SctpParameters.MaxMessageSize,
			}
		}
	}
	return section
}

// NewAnswerMediaSection builds the answer counterpart of a local offer media
// section, advertising what the remote router accepts for it.
func NewAnswerMediaSection(opts AnswerMediaSectionOptions) *MediaSection {
	section := newMediaSection(opts.IceParameters, opts.IceCandidates, opts.DtlsParameters, false)
	media := section.mediaObject
	offerMediaObject := opts.OfferMediaObject

	media.Mid = offerMediaObject.Mid
	media.Kind = offerMediaObject.Kind
	media.Protocol = offerMediaObject.Protocol

	if opts.PlainRtpParameters == nil {
		media.Connection = &SdpConnection{NetworkType: "IN", AddressType: "IP4", Address: "127.0.0.1"}
		media.Port = 7
	} else {
		media.Connection = plainRtpConnection(opts.PlainRtpParameters)
		media.Port = opts.PlainRtpParameters.Port
	}

	switch offerMediaObject.Kind {
	case MediaKindAudio, MediaKindVideo:
		switch offerMediaObject.Direction {
		case DirectionRecvonly, DirectionInactive:
			media.Direction = DirectionInactive
		default:
			media.Direction = DirectionRecvonly
		}

		answerRtpParameters := opts.AnswerRtpParameters
		payloads := make([]string, 0, len(answerRtpParameters.Codecs))
		for _, codec := range answerRtpParameters.Codecs {
			payloads = append(payloads, strconv.Itoa(int(codec.PayloadType)))

			media.Rtp = append(media.Rtp, &RtpMap{
				PayloadType: codec.PayloadType,
				Codec:       codecName(codec.MimeType),
				ClockRate:   codec.ClockRate,
				Channels:    codec.Channels,
			})

			codecParameters := codec.Parameters.Clone()
			if codecParameters == nil {
				codecParameters = CodecParameters{}
			}
			if opts.CodecOptions != nil {
				applyCodecOptions(codecParameters, codec, opts.OfferRtpParameters, opts.CodecOptions)
			}
			if len(codecParameters) > 0 {
				media.Fmtp = append(media.Fmtp, &Fmtp{
					PayloadType: codec.PayloadType,
					Parameters:  codecParameters,
				})
			}

			for _, fb := range codec.RtcpFeedback {
				media.RtcpFb = append(media.RtcpFb, &RtcpFb{
					PayloadType: strconv.Itoa(int(codec.PayloadType)),
					Type:        fb.Type,
					Parameter:   fb.Parameter,
				})
			}
		}
		media.Payloads = strings.Join(payloads, " ")

		// Answer only the header extensions present in the offer.
		for _, ext := range answerRtpParameters.HeaderExtensions {
			found := false
			for _, offerExt := range offerMediaObject.Ext {
				if offerExt.Uri == ext.Uri {
					found = true
					break
				}
			}
			if !found {
				continue
			}
			media.Ext = append(media.Ext, &Extmap{Value: ext.Id, Uri: ext.Uri})
		}

		if opts.ExtmapAllowMixed && offerMediaObject.ExtmapAllowMixed {
			media.ExtmapAllowMixed = true
		}

		if offerMediaObject.Simulcast != nil {
			media.Simulcast = &Simulcast{
				Dir1:  "recv",
				List1: offerMediaObject.Simulcast.List1,
			}
			for _, rid := range offerMediaObject.Rids {
				if rid.Direction != "send" {
					continue
				}
				media.Rids = append(media.Rids, &Rid{Id: rid.Id, Direction: "recv"})
			}
		}

		media.RtcpMux = true
		media.RtcpRsize = true

	case MediaKindApplication:
		if offerMediaObject.SctpPort > 0 {
			media.Payloads = "webrtc-datachannel"
			media.SctpPort = opts.SctpParameters.Port
			media.MaxMessageSize = opts.SctpParameters.MaxMessageSize
		} else if offerMediaObject.Sctpmap != nil {
			media.Payloads = strconv.Itoa(opts.SctpParameters.Port)
			media.Sctpmap = &Sctpmap{
				Port:           opts.SctpParameters.Port,
				App:            "webrtc-datachannel",
				MaxMessageSize: opts.SctpParameters.MaxMessageSize,
			}
		}
	}
	return section
}

// Mid returns the section mid.
func (m *MediaSection) Mid() string {
	return m.mediaObject.Mid
}

// Closed reports whether the section has been closed. The zeroed port is the
// closed marker, matching how the section is rendered.
func (m *MediaSection) Closed() bool {
	return m.mediaObject.Port == 0
}

// GetObject returns the underlying media object.
func (m *MediaSection) GetObject() *MediaObject {
	return m.mediaObject
}

// SetIceParameters rewrites the ICE credentials of the section.
func (m *MediaSection) SetIceParameters(iceParameters *IceParameters) {
	m.mediaObject.IceUfrag = iceParameters.UsernameFragment
	m.mediaObject.IcePwd = iceParameters.Password
}

// SetDtlsRole rewrites the a=setup attribute. Offer sections always leave
// the choice to the answerer.
func (m *MediaSection) SetDtlsRole(role DtlsRole) {
	if m.offer {
		m.mediaObject.Setup = "actpass"
		return
	}
	m.mediaObject.Setup = role.setupAttribute()
}

// Disable forces the section inactive while keeping its negotiated content,
// so a later send or receive on the same mid can revive it.
func (m *MediaSection) Disable() {
	m.mediaObject.Direction = DirectionInactive
}

// Pause removes the media flow of the section.
func (m *MediaSection) Pause() {
	m.mediaObject.Direction = DirectionInactive
}

// ResumeSending restores the flow of a section that carries a local
// producer. The remote end receives again.
func (m *MediaSection) ResumeSending() {
	m.mediaObject.Direction = DirectionRecvonly
}

// ResumeReceiving restores the flow of a section that carries a remote
// producer. The remote end sends again.
func (m *MediaSection) ResumeReceiving() {
	m.mediaObject.Direction = DirectionSendonly
}

// Close clears the section content and zeroes its port. The slot stays in
// the document so its index can be reused.
func (m *MediaSection) Close() {
	m.mediaObject.Direction = DirectionInactive
	m.mediaObject.Port = 0

	m.mediaObject.Rtp = nil
	m.mediaObject.Fmtp = nil
	m.mediaObject.RtcpFb = nil
	m.mediaObject.Ext = nil
	m.mediaObject.Ssrcs = nil
	m.mediaObject.SsrcGroups = nil
	m.mediaObject.Simulcast = nil
	m.mediaObject.Rids = nil
	m.mediaObject.ExtmapAllowMixed = false
}

func applyCodecOptions(
	codecParameters CodecParameters,
	codec *RtpCodecParameters,
	offerRtpParameters *RtpParameters,
	codecOptions *ProducerCodecOptions,
) {
	var offerCodec *RtpCodecParameters
	for _, offered := range offerRtpParameters.Codecs {
		if offered.PayloadType == codec.PayloadType {
			offerCodec = offered
			break
		}
	}
	if offerCodec != nil && offerCodec.Parameters == nil {
		offerCodec.Parameters = CodecParameters{}
	}

	switch strings.ToLower(codec.MimeType) {
	case "audio/opus":
		if codecOptions.OpusStereo != nil {
			stereo := boolFlag(*codecOptions.OpusStereo)
			codecParameters["stereo"] = stereo
			if offerCodec != nil {
				offerCodec.Parameters["sprop-stereo"] = stereo
			}
		}
		if codecOptions.OpusFec != nil {
			fec := boolFlag(*codecOptions.OpusFec)
			codecParameters["useinbandfec"] = fec
			if offerCodec != nil {
				offerCodec.Parameters["useinbandfec"] = fec
			}
		}
		if codecOptions.OpusDtx != nil {
			dtx := boolFlag(*codecOptions.OpusDtx)
			codecParameters["usedtx"] = dtx
			if offerCodec != nil {
				offerCodec.Parameters["usedtx"] = dtx
			}
		}
		if codecOptions.OpusMaxPlaybackRate != nil {
			codecParameters["maxplaybackrate"] = *codecOptions.OpusMaxPlaybackRate
		}
		if codecOptions.OpusMaxAverageBitrate != nil {
			codecParameters["maxaveragebitrate"] = *codecOptions.OpusMaxAverageBitrate
		}
		if codecOptions.OpusPtime != nil {
			codecParameters["ptime"] = *codecOptions.OpusPtime
		}

	case "video/vp8", "video/vp9", "video/h264", "video/h265":
		if codecOptions.VideoGoogleStartBitrate != nil {
			codecParameters["x-google-start-bitrate"] = *codecOptions.VideoGoogleStartBitrate
		}
		if codecOptions.VideoGoogleMaxBitrate != nil {
			codecParameters["x-google-max-bitrate"] = *codecOptions.VideoGoogleMaxBitrate
		}
		if codecOptions.VideoGoogleMinBitrate != nil {
			codecParameters["x-google-min-bitrate"] = *codecOptions.VideoGoogleMinBitrate
		}
	}
}

func appendSsrcLines(media *MediaObject, ssrc uint32, cname, streamId, trackId string) {
	if cname != "" {
		media.Ssrcs = append(media.Ssrcs, &SsrcLine{Id: ssrc, Attribute: "cname", Value: cname})
	}
	if trackId != "" {
		media.Ssrcs = append(media.Ssrcs, &SsrcLine{Id: ssrc, Attribute: "msid", Value: msidValue(streamId, trackId)})
	}
}

func msidValue(streamId, trackId string) string {
	if streamId == "" {
		streamId = "-"
	}
	return streamId + " " + trackId
}

func plainRtpConnection(plainRtpParameters *PlainRtpParameters) *SdpConnection {
	addressType := "IP4"
	if plainRtpParameters.IpVersion == 6 {
		addressType = "IP6"
	}
	return &SdpConnection{
		NetworkType: "IN",
		AddressType: addressType,
		Address:     plainRtpParameters.Ip,
	}
}

func boolFlag(value bool) int {
	if value {
		return 1
	}
	return 0
}

func codecName(mimeType string) string {
	match := mimeTypeRegexp.FindStringSubmatch(mimeType)
	if match == nil {
		return ""
	}
	return match[2]
}
