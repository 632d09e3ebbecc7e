// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"strings"

	"github.com/jiyeyuran/mediasoup-go/h264"
)

const (
	transportWideCCUri = "http://www.ietf.org/id/draft-holmer-rmcat-transport-wide-cc-extensions-01"
	absSendTimeUri     = "http://www.webrtc.org/experiments/rtp-hdrext/abs-send-time"
)

// ExtendedRtpCapabilities is the intersection of local and remote RTP
// capabilities, carrying both sides' payload types and parameters for each
// matched codec and header extension. It is computed once per session and
// read only afterwards.
type ExtendedRtpCapabilities struct {
	Codecs           []*ExtendedCodec           `json:"codecs,omitempty"`
	HeaderExtensions []*ExtendedHeaderExtension `json:"headerExtensions,omitempty"`
}

// ExtendedCodec is one codec supported by both endpoints.
type ExtendedCodec struct {
	Kind                 MediaKind       `json:"kind"`
	MimeType             string          `json:"mimeType"`
	ClockRate            int             `json:"clockRate"`
	Channels             int             `json:"channels,omitempty"`
	LocalPayloadType     byte            `json:"localPayloadType"`
	LocalRtxPayloadType  byte            `json:"localRtxPayloadType,omitempty"`
	RemotePayloadType    byte            `json:"remotePayloadType"`
	RemoteRtxPayloadType byte            `json:"remoteRtxPayloadType,omitempty"`
	LocalParameters      CodecParameters `json:"localParameters,omitempty"`
	RemoteParameters     CodecParameters `json:"remoteParameters,omitempty"`
	RtcpFeedback         []RtcpFeedback  `json:"rtcpFeedback,omitempty"`
}

// ExtendedHeaderExtension is one header extension supported by both
// endpoints. Direction is resolved from the perspective of this endpoint.
type ExtendedHeaderExtension struct {
	Kind      MediaKind `json:"kind,omitempty"`
	Uri       string    `json:"uri"`
	SendId    int       `json:"sendId"`
	RecvId    int       `json:"recvId"`
	Encrypt   bool      `json:"encrypt,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// GetExtendedRtpCapabilities intersects local and remote RTP capabilities.
// Both inputs are validated and normalized in place.
//
// Matching walks the local codec list in order, so the extended codec list
// (and therefore payload type ordering in generated SDP) is deterministic
// given the local capabilities. A codec matches on equal MIME type (case
// insensitive), equal clock rate and, for audio with both sides set, equal
// channel count. H264 requires equal packetization-mode and, under the
// strict rules applied here, the same profile with a derivable answer
// profile-level-id, which is written into the local side parameters. VP9
// requires an equal profile-id. An empty intersection is not an error.
func GetExtendedRtpCapabilities(localCaps, remoteCaps *RtpCapabilities) (*ExtendedRtpCapabilities, error) {
	if err := ValidateRtpCapabilities(localCaps); err != nil {
		return nil, err
	}
	if err := ValidateRtpCapabilities(remoteCaps); err != nil {
		return nil, err
	}

	extended := &ExtendedRtpCapabilities{}

	for _, localCodec := range localCaps.Codecs {
		if localCodec.isRtxCodec() {
			continue
		}

		var matchingRemoteCodec *RtpCodecCapability
		for _, remoteCodec := range remoteCaps.Codecs {
			if remoteCodec.isRtxCodec() {
				continue
			}
			if matchCodecs(localCodec, remoteCodec, true, true) {
				matchingRemoteCodec = remoteCodec
				break
			}
		}
		if matchingRemoteCodec == nil {
			continue
		}

		extended.Codecs = append(extended.Codecs, &ExtendedCodec{
			Kind:              localCodec.Kind,
			MimeType:          localCodec.MimeType,
			ClockRate:         localCodec.ClockRate,
			Channels:          localCodec.Channels,
			LocalPayloadType:  localCodec.PreferredPayloadType,
			RemotePayloadType: matchingRemoteCodec.PreferredPayloadType,
			LocalParameters:   localCodec.Parameters,
			RemoteParameters:  matchingRemoteCodec.Parameters,
			RtcpFeedback:      reduceRtcpFeedback(localCodec, matchingRemoteCodec),
		})
	}

	for _, extendedCodec := range extended.Codecs {
		localRtxCodec := findRtxCodec(localCaps.Codecs, extendedCodec.LocalPayloadType)
		remoteRtxCodec := findRtxCodec(remoteCaps.Codecs, extendedCodec.RemotePayloadType)
		if localRtxCodec != nil && remoteRtxCodec != nil {
			extendedCodec.LocalRtxPayloadType = localRtxCodec.PreferredPayloadType
			extendedCodec.RemoteRtxPayloadType = remoteRtxCodec.PreferredPayloadType
		}
	}

	for _, localExt := range localCaps.HeaderExtensions {
		var matchingRemoteExt *RtpHeaderExtension
		for _, remoteExt := range remoteCaps.HeaderExtensions {
			if matchHeaderExtensions(localExt, remoteExt) {
				matchingRemoteExt = remoteExt
				break
			}
		}
		if matchingRemoteExt == nil {
			continue
		}

		kind := matchingRemoteExt.Kind
		if kind == "" {
			kind = localExt.Kind
		}

		extendedExt := &ExtendedHeaderExtension{
			Kind:    kind,
			Uri:     matchingRemoteExt.Uri,
			SendId:  localExt.PreferredId,
			RecvId:  matchingRemoteExt.PreferredId,
			Encrypt: localExt.PreferredEncrypt,
		}

		switch matchingRemoteExt.Direction {
		case DirectionSendonly:
			extendedExt.Direction = DirectionRecvonly
		case DirectionRecvonly:
			extendedExt.Direction = DirectionSendonly
		case DirectionInactive:
			extendedExt.Direction = DirectionInactive
		default:
			extendedExt.Direction = DirectionSendrecv
		}

		extended.HeaderExtensions = append(extended.HeaderExtensions, extendedExt)
	}

	return extended, nil
}

// GetRecvRtpCapabilities generates the RTP capabilities for receiving media
// from the remote endpoint: remote payload types, local side parameters and
// every extension valid for receiving.
func GetRecvRtpCapabilities(extendedRtpCapabilities *ExtendedRtpCapabilities) *RtpCapabilities {
	caps := &RtpCapabilities{}

	for _, extendedCodec := range extendedRtpCapabilities.Codecs {
		caps.Codecs = append(caps.Codecs, &RtpCodecCapability{
			Kind:                 extendedCodec.Kind,
			MimeType:             extendedCodec.MimeType,
			PreferredPayloadType: extendedCodec.RemotePayloadType,
			ClockRate:            extendedCodec.ClockRate,
			Channels:             extendedCodec.Channels,
			Parameters:           extendedCodec.LocalParameters.Clone(),
			RtcpFeedback:         append([]RtcpFeedback(nil), extendedCodec.RtcpFeedback...),
		})

		if extendedCodec.RemoteRtxPayloadType == 0 {
			continue
		}
		caps.Codecs = append(caps.Codecs, &RtpCodecCapability{
			Kind:                 extendedCodec.Kind,
			MimeType:             string(extendedCodec.Kind) + "/rtx",
			PreferredPayloadType: extendedCodec.RemoteRtxPayloadType,
			ClockRate:            extendedCodec.ClockRate,
			Parameters: CodecParameters{
				"apt": int(extendedCodec.RemotePayloadType),
			},
		})
	}

	for _, extendedExt := range extendedRtpCapabilities.HeaderExtensions {
		if extendedExt.Direction != DirectionSendrecv && extendedExt.Direction != DirectionRecvonly {
			continue
		}
		caps.HeaderExtensions = append(caps.HeaderExtensions, &RtpHeaderExtension{
			Kind:             extendedExt.Kind,
			Uri:              extendedExt.Uri,
			PreferredId:      extendedExt.RecvId,
			PreferredEncrypt: extendedExt.Encrypt,
			Direction:        extendedExt.Direction,
		})
	}

	return caps
}

// GetSendingRtpParameters generates the RTP parameters of the given kind
// for sending media: local payload types and the remote side codec
// parameters, since these are sent to the remote endpoint and must be
// echoed by it.
func GetSendingRtpParameters(kind MediaKind, extendedRtpCapabilities *ExtendedRtpCapabilities) *RtpParameters {
	return generateSendingRtpParameters(kind, extendedRtpCapabilities, false)
}

// GetSendingRemoteRtpParameters generates the RTP parameters of the given
// kind as the remote endpoint sees them, with the local side codec
// parameters this endpoint will declare in its answer. RTCP feedback is
// reduced to one congestion control mechanism: transport-cc when the
// transport wide CC extension was negotiated, goog-remb when only
// abs-send-time was, neither otherwise.
func GetSendingRemoteRtpParameters(kind MediaKind, extendedRtpCapabilities *ExtendedRtpCapabilities) *RtpParameters {
	return generateSendingRtpParameters(kind, extendedRtpCapabilities, true)
}

func generateSendingRtpParameters(kind MediaKind, extendedRtpCapabilities *ExtendedRtpCapabilities, remote bool) *RtpParameters {
	params := &RtpParameters{}

	for _, extendedCodec := range extendedRtpCapabilities.Codecs {
		if extendedCodec.Kind != kind {
			continue
		}

		parameters := extendedCodec.RemoteParameters
		if remote {
			parameters = extendedCodec.LocalParameters
		}

		params.Codecs = append(params.Codecs, &RtpCodecParameters{
			MimeType:     extendedCodec.MimeType,
			PayloadType:  extendedCodec.LocalPayloadType,
			ClockRate:    extendedCodec.ClockRate,
			Channels:     extendedCodec.Channels,
			Parameters:   parameters.Clone(),
			RtcpFeedback: append([]RtcpFeedback(nil), extendedCodec.RtcpFeedback...),
		})

		if extendedCodec.LocalRtxPayloadType == 0 {
			continue
		}
		params.Codecs = append(params.Codecs, &RtpCodecParameters{
			MimeType:    string(extendedCodec.Kind) + "/rtx",
			PayloadType: extendedCodec.LocalRtxPayloadType,
			ClockRate:   extendedCodec.ClockRate,
			Parameters: CodecParameters{
				"apt": int(extendedCodec.LocalPayloadType),
			},
		})
	}

	for _, extendedExt := range extendedRtpCapabilities.HeaderExtensions {
		if extendedExt.Kind != "" && extendedExt.Kind != kind {
			continue
		}
		if extendedExt.Direction != DirectionSendrecv && extendedExt.Direction != DirectionSendonly {
			continue
		}
		params.HeaderExtensions = append(params.HeaderExtensions, &RtpHeaderExtensionParameters{
			Uri:     extendedExt.Uri,
			Id:      extendedExt.SendId,
			Encrypt: extendedExt.Encrypt,
		})
	}

	if remote {
		reduceCongestionFeedback(params)
	}

	return params
}

// reduceCongestionFeedback keeps a single congestion control feedback
// mechanism, preferring transport-cc over goog-remb.
func reduceCongestionFeedback(params *RtpParameters) {
	var dropTypes []string

	switch {
	case hasHeaderExtensionUri(params.HeaderExtensions, transportWideCCUri):
		dropTypes = []string{"goog-remb"}
	case hasHeaderExtensionUri(params.HeaderExtensions, absSendTimeUri):
		dropTypes = []string{"transport-cc"}
	default:
		dropTypes = []string{"transport-cc", "goog-remb"}
	}

	for _, codec := range params.Codecs {
		filtered := codec.RtcpFeedback[:0]
		for _, fb := range codec.RtcpFeedback {
			dropped := false
			for _, dropType := range dropTypes {
				if fb.Type == dropType {
					dropped = true
					break
				}
			}
			if !dropped {
				filtered = append(filtered, fb)
			}
		}
		codec.RtcpFeedback = filtered
	}
}

func hasHeaderExtensionUri(exts []*RtpHeaderExtensionParameters, uri string) bool {
	for _, ext := range exts {
		if ext.Uri == uri {
			return true
		}
	}
	return false
}

// ReduceCodecs reduces the given codec list to one media codec and its RTX
// companion. Without capCodec the first codec wins; with capCodec the first
// codec matching it wins, or the call fails with a NoMatchingCodecError.
// The RTX companion is included only when it immediately follows its media
// codec.
func ReduceCodecs(codecs []*RtpCodecParameters, capCodec *RtpCodecCapability) ([]*RtpCodecParameters, error) {
	filteredCodecs := []*RtpCodecParameters{}

	if capCodec == nil {
		if len(codecs) == 0 {
			return filteredCodecs, nil
		}
		filteredCodecs = append(filteredCodecs, codecs[0])
		if len(codecs) > 1 && codecs[1].isRtxCodec() {
			filteredCodecs = append(filteredCodecs, codecs[1])
		}
		return filteredCodecs, nil
	}

	for idx, codec := range codecs {
		if matchCodecs(codecToCapability(codec), capCodec, false, false) {
			filteredCodecs = append(filteredCodecs, codec)
			if idx+1 < len(codecs) && codecs[idx+1].isRtxCodec() {
				filteredCodecs = append(filteredCodecs, codecs[idx+1])
			}
			break
		}
	}

	if len(filteredCodecs) == 0 {
		return nil, &NoMatchingCodecError{MimeType: capCodec.MimeType}
	}
	return filteredCodecs, nil
}

// CanSend reports whether media of the given kind can be sent with the
// extended capabilities.
func CanSend(kind MediaKind, extendedRtpCapabilities *ExtendedRtpCapabilities) bool {
	for _, codec := range extendedRtpCapabilities.Codecs {
		if codec.Kind == kind {
			return true
		}
	}
	return false
}

// CanReceive reports whether a stream described by the given RTP parameters
// can be received with the extended capabilities. The parameters are
// validated first.
func CanReceive(rtpParameters *RtpParameters, extendedRtpCapabilities *ExtendedRtpCapabilities) (bool, error) {
	if err := ValidateRtpParameters(rtpParameters); err != nil {
		return false, err
	}
	if len(rtpParameters.Codecs) == 0 {
		return false, nil
	}

	firstMediaCodec := rtpParameters.Codecs[0]
	for _, codec := range extendedRtpCapabilities.Codecs {
		if codec.RemotePayloadType == firstMediaCodec.PayloadType {
			return true, nil
		}
	}
	return false, nil
}

func codecToCapability(codec *RtpCodecParameters) *RtpCodecCapability {
	return &RtpCodecCapability{
		MimeType:             codec.MimeType,
		PreferredPayloadType: codec.PayloadType,
		ClockRate:            codec.ClockRate,
		Channels:             codec.Channels,
		Parameters:           codec.Parameters,
		RtcpFeedback:         codec.RtcpFeedback,
	}
}

func findRtxCodec(codecs []*RtpCodecCapability, payloadType byte) *RtpCodecCapability {
	for _, codec := range codecs {
		if !codec.isRtxCodec() {
			continue
		}
		if apt, ok := codec.Parameters.Apt(); ok && apt == payloadType {
			return codec
		}
	}
	return nil
}

func matchCodecs(aCodec, bCodec *RtpCodecCapability, strict, modify bool) bool {
	aMimeType := strings.ToLower(aCodec.MimeType)
	bMimeType := strings.ToLower(bCodec.MimeType)

	if aMimeType != bMimeType {
		return false
	}

	if aCodec.ClockRate != bCodec.ClockRate {
		return false
	}

	if strings.HasPrefix(aMimeType, "audio/") &&
		aCodec.Channels > 0 &&
		bCodec.Channels > 0 &&
		aCodec.Channels != bCodec.Channels {
		return false
	}

	switch aMimeType {
	case "video/h264":
		if aCodec.Parameters.PacketizationMode() != bCodec.Parameters.PacketizationMode() {
			return false
		}

		if strict {
			selectedProfileLevelId, err := h264.GenerateProfileLevelIdForAnswer(
				h264Parameters(aCodec.Parameters), h264Parameters(bCodec.Parameters))
			if err != nil {
				return false
			}

			if modify {
				if aCodec.Parameters == nil {
					aCodec.Parameters = CodecParameters{}
				}
				if selectedProfileLevelId != "" {
					aCodec.Parameters["profile-level-id"] = selectedProfileLevelId
				} else {
					delete(aCodec.Parameters, "profile-level-id")
				}
			}
		}

	case "video/vp9":
		if strict {
			if aCodec.Parameters.ProfileId() != bCodec.Parameters.ProfileId() {
				return false
			}
		}
	}

	return true
}

func matchHeaderExtensions(aExt, bExt *RtpHeaderExtension) bool {
	if aExt.Kind != "" && bExt.Kind != "" && aExt.Kind != bExt.Kind {
		return false
	}
	return aExt.Uri == bExt.Uri
}

// reduceRtcpFeedback intersects both sides' feedback lists by type and
// parameter, keeping the local entry.
func reduceRtcpFeedback(localCodec, remoteCodec *RtpCodecCapability) []RtcpFeedback {
	var reduced []RtcpFeedback

	for _, localFb := range localCodec.RtcpFeedback {
		for _, remoteFb := range remoteCodec.RtcpFeedback {
			if remoteFb.Type == localFb.Type && remoteFb.Parameter == localFb.Parameter {
				reduced = append(reduced, localFb)
				break
			}
		}
	}
	return reduced
}

func h264Parameters(params CodecParameters) h264.RtpParameter {
	return h264.RtpParameter{
		ProfileLevelId:        params.ProfileLevelId(),
		PacketizationMode:     uint8(params.PacketizationMode()),
		LevelAsymmetryAllowed: uint8(params.OrInt("level-asymmetry-allowed", 0)),
	}
}
