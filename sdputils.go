// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractRtpCapabilities builds RtpCapabilities from the first audio and
// first video section of a parsed SDP. Sections beyond the first of each
// kind describe the same endpoint capabilities, so they are skipped.
func ExtractRtpCapabilities(sdpObject *SdpObject) *RtpCapabilities {
	caps := &RtpCapabilities{}
	codecsByPayloadType := map[byte]*RtpCodecCapability{}
	gotAudio := false
	gotVideo := false

	for _, media := range sdpObject.Media {
		kind := media.Kind
		switch kind {
		case MediaKindAudio:
			if gotAudio {
				continue
			}
			gotAudio = true
		case MediaKindVideo:
			if gotVideo {
				continue
			}
			gotVideo = true
		default:
			continue
		}

		for _, rtp := range media.Rtp {
			codec := &RtpCodecCapability{
				Kind:                 kind,
				MimeType:             string(kind) + "/" + rtp.Codec,
				PreferredPayloadType: rtp.PayloadType,
				ClockRate:            rtp.ClockRate,
				Channels:             rtp.Channels,
				Parameters:           CodecParameters{},
			}
			codecsByPayloadType[rtp.PayloadType] = codec
			caps.Codecs = append(caps.Codecs, codec)
		}

		for _, entry := range media.Fmtp {
			codec, ok := codecsByPayloadType[entry.PayloadType]
			if !ok {
				continue
			}
			parameters := entry.Parameters.Clone()
			if id, ok := parameters["profile-level-id"].(int); ok {
				parameters["profile-level-id"] = strconv.Itoa(id)
			}
			codec.Parameters = parameters
		}

		for _, fb := range media.RtcpFb {
			payloadType, err := strconv.Atoi(fb.PayloadType)
			if err != nil || payloadType < 0 || payloadType > 255 {
				continue
			}
			codec, ok := codecsByPayloadType[byte(payloadType)]
			if !ok {
				continue
			}
			codec.RtcpFeedback = append(codec.RtcpFeedback,
				RtcpFeedback{Type: fb.Type, Parameter: fb.Parameter})
		}

		for _, ext := range media.Ext {
			if ext.EncryptUri != "" {
				continue
			}
			caps.HeaderExtensions = append(caps.HeaderExtensions, &RtpHeaderExtension{
				Kind:        kind,
				Uri:         ext.Uri,
				PreferredId: ext.Value,
			})
		}
	}
	return caps
}

// ExtractDtlsParameters reads the DTLS role and fingerprint from the first
// active media section of a parsed SDP.
func ExtractDtlsParameters(sdpObject *SdpObject) (*DtlsParameters, error) {
	var mediaObject *MediaObject
	for _, media := range sdpObject.Media {
		if media.IceUfrag != "" && media.Port != 0 {
			mediaObject = media
			break
		}
	}
	if mediaObject == nil {
		return nil, fmt.Errorf("%w: no active media section", ErrSectionNotFound)
	}

	fingerprint := mediaObject.Fingerprint
	if fingerprint == nil {
		fingerprint = sdpObject.Fingerprint
	}
	if fingerprint == nil {
		return nil, ErrMissingFingerprint
	}

	return &DtlsParameters{
		Role: dtlsRoleFromSetup(mediaObject.Setup),
		Fingerprints: []DtlsFingerprint{
			{Algorithm: fingerprint.Algorithm, Value: fingerprint.Value},
		},
	}, nil
}

// GetCname returns the CNAME announced in the ssrc lines of the given media
// section, or an empty string when there is none.
func GetCname(offerMediaObject *MediaObject) string {
	for _, line := range offerMediaObject.Ssrcs {
		if line.Attribute == "cname" {
			return line.Value
		}
	}
	return ""
}

// ApplyCodecParameters copies sending side Opus preferences from the offer
// parameters into the fmtp of the answer media section.
func ApplyCodecParameters(offerRtpParameters *RtpParameters, answerMediaObject *MediaObject) {
	for _, codec := range offerRtpParameters.Codecs {
		mimeType := strings.ToLower(codec.MimeType)
		if mimeType != "audio/opus" {
			continue
		}

		var rtp *RtpMap
		for _, entry := range answerMediaObject.Rtp {
			if entry.PayloadType == codec.PayloadType {
				rtp = entry
				break
			}
		}
		if rtp == nil {
			continue
		}

		var fmtpEntry *Fmtp
		for _, entry := range answerMediaObject.Fmtp {
			if entry.PayloadType == codec.PayloadType {
				fmtpEntry = entry
				break
			}
		}
		if fmtpEntry == nil {
			fmtpEntry = &Fmtp{PayloadType: codec.PayloadType, Parameters: CodecParameters{}}
			answerMediaObject.Fmtp = append(answerMediaObject.Fmtp, fmtpEntry)
		}
		if fmtpEntry.Parameters == nil {
			fmtpEntry.Parameters = CodecParameters{}
		}

		if spropStereo, ok := codec.Parameters.GetInt("sprop-stereo"); ok {
			if spropStereo != 0 {
				fmtpEntry.Parameters["stereo"] = 1
			} else {
				fmtpEntry.Parameters["stereo"] = 0
			}
		}
	}
}
