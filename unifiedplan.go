// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"strings"

	"github.com/elcreme/mediasoup-client-go/internal/util"
)

// GetRtpEncodings derives the RTP encodings announced by a local offer media
// section. FID groups pair a primary SSRC with its retransmission SSRC, any
// remaining SSRC becomes a plain encoding. A section without usable ssrc
// lines yields a single encoding with a generated SSRC, since some engines
// omit ssrc lines until media actually flows.
func GetRtpEncodings(offerMediaObject *MediaObject) []*RtpEncodingParameters {
	inSection := make(map[uint32]bool)
	order := make([]uint32, 0, len(offerMediaObject.Ssrcs))
	for _, line := range offerMediaObject.Ssrcs {
		if inSection[line.Id] {
			continue
		}
		inSection[line.Id] = true
		order = append(order, line.Id)
	}

	if len(order) == 0 {
		ssrc := util.RandUint32()
		for ssrc == 0 {
			ssrc = util.RandUint32()
		}
		return []*RtpEncodingParameters{{Ssrc: ssrc}}
	}

	handled := make(map[uint32]bool)
	encodings := make([]*RtpEncodingParameters, 0, len(order))

	for _, group := range offerMediaObject.SsrcGroups {
		if group.Semantics != "FID" || len(group.Ssrcs) < 2 {
			continue
		}
		primary := group.Ssrcs[0]
		rtxSsrc := group.Ssrcs[1]
		if !inSection[primary] || handled[primary] {
			continue
		}
		handled[primary] = true
		handled[rtxSsrc] = true

		encoding := &RtpEncodingParameters{Ssrc: primary}
		if rtxSsrc != 0 {
			encoding.Rtx = &RtpEncodingRtx{Ssrc: rtxSsrc}
		}
		encodings = append(encodings, encoding)
	}

	for _, ssrc := range order {
		if handled[ssrc] {
			continue
		}
		encodings = append(encodings, &RtpEncodingParameters{Ssrc: ssrc})
	}
	return encodings
}

// AddLegacySimulcast rewrites the ssrc lines of a local offer media section
// into numStreams consecutive simulcast streams, announced through a SIM
// group plus one FID group per stream when the section already pairs RTX.
// This is the pre-rid simulcast style some engines still require.
func AddLegacySimulcast(offerMediaObject *MediaObject, numStreams int) error {
	if numStreams <= 1 {
		return &MalformedSimulcastError{Reason: "numStreams must be greater than 1"}
	}

	var msidLine *SsrcLine
	for _, line := range offerMediaObject.Ssrcs {
		if line.Attribute == "msid" {
			msidLine = line
			break
		}
	}
	if msidLine == nil {
		return &MalformedSimulcastError{Reason: "ssrc line with msid information not found"}
	}

	msidParts := strings.SplitN(msidLine.Value, " ", 2)
	streamId := msidParts[0]
	trackId := ""
	if len(msidParts) > 1 {
		trackId = msidParts[1]
	}
	firstSsrc := msidLine.Id

	var firstRtxSsrc uint32
	for _, group := range offerMediaObject.SsrcGroups {
		if group.Semantics != "FID" || len(group.Ssrcs) < 2 {
			continue
		}
		if group.Ssrcs[0] == firstSsrc {
			firstRtxSsrc = group.Ssrcs[1]
			break
		}
	}

	cname := ""
	for _, line := range offerMediaObject.Ssrcs {
		if line.Attribute == "cname" {
			cname = line.Value
			break
		}
	}
	if cname == "" {
		return &MalformedSimulcastError{Reason: "ssrc line with cname information not found"}
	}

	ssrcs := make([]uint32, 0, numStreams)
	rtxSsrcs := make([]uint32, 0, numStreams)
	for i := 0; i < numStreams; i++ {
		ssrcs = append(ssrcs, firstSsrc+uint32(i))
		if firstRtxSsrc != 0 {
			rtxSsrcs = append(rtxSsrcs, firstRtxSsrc+uint32(i))
		}
	}

	offerMediaObject.Ssrcs = nil
	offerMediaObject.SsrcGroups = nil

	offerMediaObject.SsrcGroups = append(offerMediaObject.SsrcGroups, &SsrcGroup{
		Semantics: "SIM",
		Ssrcs:     ssrcs,
	})

	msid := streamId + " " + trackId
	for _, ssrc := range ssrcs {
		offerMediaObject.Ssrcs = append(offerMediaObject.Ssrcs,
			&SsrcLine{Id: ssrc, Attribute: "cname", Value: cname},
			&SsrcLine{Id: ssrc, Attribute: "msid", Value: msid})
	}
	for i, rtxSsrc := range rtxSsrcs {
		offerMediaObject.Ssrcs = append(offerMediaObject.Ssrcs,
			&SsrcLine{Id: rtxSsrc, Attribute: "cname", Value: cname},
			&SsrcLine{Id: rtxSsrc, Attribute: "msid", Value: msid})
		offerMediaObject.SsrcGroups = append(offerMediaObject.SsrcGroups, &SsrcGroup{
			Semantics: "FID",
			Ssrcs:     []uint32{ssrcs[i], rtxSsrc},
		})
	}
	return nil
}
