// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

// Package mediasoup implements the signaling core of a mediasoup WebRTC
// client: ORTC style capability matching between a local media engine and a
// remote router, and the incremental construction of the remote SDP handed
// to the local peer connection as streams are added, paused and closed.
package mediasoup

import (
	"time"

	"github.com/pion/logging"

	"github.com/elcreme/mediasoup-client-go/internal/util"
)

// RemoteSdpOptions configures NewRemoteSdp. IceParameters, IceCandidates and
// DtlsParameters describe the remote transport; SctpParameters are required
// before the SCTP association methods may be used. PlainRtpParameters
// switches the session to plain RTP instead of WebRTC.
type RemoteSdpOptions struct {
	IceParameters      *IceParameters
	IceCandidates      []*IceCandidate
	DtlsParameters     *DtlsParameters
	SctpParameters     *SctpParameters
	PlainRtpParameters *PlainRtpParameters

	LoggerFactory logging.LoggerFactory
}

// MediaSectionIdx tells where the next media section should be placed.
// ReuseMid is set when a closed slot can be recycled.
type MediaSectionIdx struct {
	Idx      int
	ReuseMid string
}

// SendOptions configures RemoteSdp.Send.
type SendOptions struct {
	OfferMediaObject    *MediaObject
	ReuseMid            string
	OfferRtpParameters  *RtpParameters
	AnswerRtpParameters *RtpParameters
	CodecOptions        *ProducerCodecOptions
	ExtmapAllowMixed    bool
}

// ReceiveOptions configures RemoteSdp.Receive.
type ReceiveOptions struct {
	Mid                string
	Kind               MediaKind
	OfferRtpParameters *RtpParameters
	StreamId           string
	TrackId            string
}

// RemoteSdp incrementally builds the SDP of the remote endpoint. Every
// mutation keeps the BUNDLE group, the mid to index map and the section
// list consistent, so GetSdp can be called after each step. The session is
// not safe for concurrent use, callers serialize access.
type RemoteSdp struct {
	iceParameters      *IceParameters
	iceCandidates      []*IceCandidate
	dtlsParameters     *DtlsParameters
	sctpParameters     *SctpParameters
	plainRtpParameters *PlainRtpParameters

	sdpObject     *SdpObject
	mediaSections []*MediaSection
	midToIndex    map[string]int
	firstMid      string

	ssrcAllocator *SsrcAllocator
	log           logging.LeveledLogger
}

// NewRemoteSdp creates a remote session scaffold with no media sections.
func NewRemoteSdp(opts RemoteSdpOptions) *RemoteSdp {
	loggerFactory := opts.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	remoteSdp := &RemoteSdp{
		iceParameters:      opts.IceParameters,
		iceCandidates:      opts.IceCandidates,
		dtlsParameters:     opts.DtlsParameters,
		sctpParameters:     opts.SctpParameters,
		plainRtpParameters: opts.PlainRtpParameters,
		midToIndex:         map[string]int{},
		ssrcAllocator:      NewSsrcAllocator(),
		log:                loggerFactory.NewLogger("remotesdp"),
	}

	remoteSdp.sdpObject = &SdpObject{
		Version: 0,
		Origin: SdpOrigin{
			Username:       "mediasoup-client-go",
			SessionId:      10000,
			SessionVersion: 0,
			NetworkType:    "IN",
			AddressType:    "IP4",
			Address:        "0.0.0.0",
		},
		Name:   "-",
		Timing: SdpTiming{Start: 0, Stop: 0},
	}

	if opts.IceParameters != nil && opts.IceParameters.IceLite {
		remoteSdp.sdpObject.IceLite = true
	}

	if opts.DtlsParameters != nil {
		remoteSdp.sdpObject.MsidSemantic = "WMS *"

		// The latest fingerprint is the strongest one.
		fingerprints := opts.DtlsParameters.Fingerprints
		if len(fingerprints) > 0 {
			last := fingerprints[len(fingerprints)-1]
			remoteSdp.sdpObject.Fingerprint = &DtlsFingerprint{
				Algorithm: last.Algorithm,
				Value:     last.Value,
			}
		}

		remoteSdp.sdpObject.Groups = []SdpGroup{{Type: "BUNDLE"}}
	}

	if opts.PlainRtpParameters != nil {
		remoteSdp.sdpObject.Origin.Address = opts.PlainRtpParameters.Ip
		if opts.PlainRtpParameters.IpVersion == 6 {
			remoteSdp.sdpObject.Origin.AddressType = "IP6"
		}
	}
	return remoteSdp
}

// UpdateIceParameters replaces the ICE credentials of the session and of
// every live media section, typically after an ICE restart.
func (s *RemoteSdp) UpdateIceParameters(iceParameters *IceParameters) {
	s.log.Debugf("UpdateIceParameters() [usernameFragment:%s]", iceParameters.UsernameFragment)

	s.iceParameters = iceParameters
	s.sdpObject.IceLite = iceParameters.IceLite

	for _, mediaSection := range s.mediaSections {
		mediaSection.SetIceParameters(iceParameters)
	}
}

// UpdateDtlsRole rewrites the DTLS setup role of every media section, used
// when the DTLS client/server decision changes on reconnection.
func (s *RemoteSdp) UpdateDtlsRole(role DtlsRole) {
	s.log.Debugf("UpdateDtlsRole() [role:%s]", role)

	if s.dtlsParameters != nil {
		s.dtlsParameters.Role = role
	}
	for _, mediaSection := range s.mediaSections {
		mediaSection.SetDtlsRole(role)
	}
}

// GetNextMediaSectionIdx returns the placement for the next media section:
// the first closed slot when one exists, the append position otherwise.
func (s *RemoteSdp) GetNextMediaSectionIdx() MediaSectionIdx {
	for idx, mediaSection := range s.mediaSections {
		if mediaSection.Closed() {
			return MediaSectionIdx{Idx: idx, ReuseMid: mediaSection.Mid()}
		}
	}
	return MediaSectionIdx{Idx: len(s.mediaSections)}
}

// Send adds or replaces the answer media section for a local producer.
func (s *RemoteSdp) Send(opts SendOptions) error {
	mediaSection := NewAnswerMediaSection(AnswerMediaSectionOptions{
		IceParameters:       s.iceParameters,
		IceCandidates:       s.iceCandidates,
		DtlsParameters:      s.dtlsParameters,
		PlainRtpParameters:  s.plainRtpParameters,
		OfferMediaObject:    opts.OfferMediaObject,
		OfferRtpParameters:  opts.OfferRtpParameters,
		AnswerRtpParameters: opts.AnswerRtpParameters,
		CodecOptions:        opts.CodecOptions,
		ExtmapAllowMixed:    opts.ExtmapAllowMixed,
	})

	s.reserveEncodingSsrcs(opts.OfferRtpParameters)

	if opts.ReuseMid != "" {
		return s.replaceMediaSection(mediaSection, opts.ReuseMid)
	}
	s.addMediaSection(mediaSection)
	return nil
}

// Receive adds the offer media section for a remotely produced stream. When
// the given parameters carry no encodings, an SSRC (plus an RTX SSRC if the
// codec set includes RTX) is allocated, and a CNAME is synthesized when the
// parameters carry none.
func (s *RemoteSdp) Receive(opts ReceiveOptions) error {
	if _, ok := s.midToIndex[opts.Mid]; ok {
		return newValidationError("mid", "%q is already handled by a live media section", opts.Mid)
	}

	offerRtpParameters := s.completeOfferRtpParameters(opts.OfferRtpParameters)

	mediaSection := NewOfferMediaSection(OfferMediaSectionOptions{
		IceParameters:      s.iceParameters,
		IceCandidates:      s.iceCandidates,
		DtlsParameters:     s.dtlsParameters,
		PlainRtpParameters: s.plainRtpParameters,
		Mid:                opts.Mid,
		Kind:               opts.Kind,
		OfferRtpParameters: offerRtpParameters,
		StreamId:           opts.StreamId,
		TrackId:            opts.TrackId,
	})

	// Recycle a closed slot when one exists. A closed audio slot may carry
	// a new video section.
	for _, oldMediaSection := range s.mediaSections {
		if oldMediaSection.Closed() {
			return s.replaceMediaSection(mediaSection, oldMediaSection.Mid())
		}
	}
	s.addMediaSection(mediaSection)
	return nil
}

// SendSctpAssociation adds the answer media section for a locally initiated
// SCTP association.
func (s *RemoteSdp) SendSctpAssociation(offerMediaObject *MediaObject) {
	mediaSection := NewAnswerMediaSection(AnswerMediaSectionOptions{
		IceParameters:      s.iceParameters,
		IceCandidates:      s.iceCandidates,
		DtlsParameters:     s.dtlsParameters,
		SctpParameters:     s.sctpParameters,
		PlainRtpParameters: s.plainRtpParameters,
		OfferMediaObject:   offerMediaObject,
	})
	s.addMediaSection(mediaSection)
}

// ReceiveSctpAssociation adds the offer media section for a remotely
// initiated SCTP association. oldDataChannelSpec selects the legacy sctpmap
// form still expected by some engines.
func (s *RemoteSdp) ReceiveSctpAssociation(oldDataChannelSpec bool) {
	mediaSection := NewOfferMediaSection(OfferMediaSectionOptions{
		IceParameters:      s.iceParameters,
		IceCandidates:      s.iceCandidates,
		DtlsParameters:     s.dtlsParameters,
		SctpParameters:     s.sctpParameters,
		PlainRtpParameters: s.plainRtpParameters,
		Mid:                "datachannel",
		Kind:               MediaKindApplication,
		OldDataChannelSpec: oldDataChannelSpec,
	})
	s.addMediaSection(mediaSection)
}

// PauseMediaSection stops the media flow of the section, best effort.
func (s *RemoteSdp) PauseMediaSection(mid string) {
	mediaSection, ok := s.findMediaSection(mid)
	if !ok {
		s.log.Warnf("PauseMediaSection() | no media section found [mid:%s]", mid)
		return
	}
	mediaSection.Pause()
}

// ResumeSendingMediaSection restores the flow of a sending section, best
// effort.
func (s *RemoteSdp) ResumeSendingMediaSection(mid string) {
	mediaSection, ok := s.findMediaSection(mid)
	if !ok {
		s.log.Warnf("ResumeSendingMediaSection() | no media section found [mid:%s]", mid)
		return
	}
	mediaSection.ResumeSending()
}

// ResumeReceivingMediaSection restores the flow of a receiving section, best
// effort.
func (s *RemoteSdp) ResumeReceivingMediaSection(mid string) {
	mediaSection, ok := s.findMediaSection(mid)
	if !ok {
		s.log.Warnf("ResumeReceivingMediaSection() | no media section found [mid:%s]", mid)
		return
	}
	mediaSection.ResumeReceiving()
}

// DisableMediaSection forces the section inactive keeping its content, best
// effort.
func (s *RemoteSdp) DisableMediaSection(mid string) {
	mediaSection, ok := s.findMediaSection(mid)
	if !ok {
		s.log.Warnf("DisableMediaSection() | no media section found [mid:%s]", mid)
		return
	}
	mediaSection.Disable()
}

// CloseMediaSection clears the section, marks its slot reusable and drops
// the mid from the BUNDLE group. Closing the first section would invalidate
// the bundled transport, so it is disabled instead. The return value
// reports whether the section was actually closed.
func (s *RemoteSdp) CloseMediaSection(mid string) bool {
	idx, ok := s.midToIndex[mid]
	if !ok {
		s.log.Warnf("CloseMediaSection() | no media section found [mid:%s]", mid)
		return false
	}

	if mid == s.firstMid {
		s.log.Debugf("CloseMediaSection() | cannot close first media section, disabling it instead [mid:%s]", mid)
		s.mediaSections[idx].Disable()
		return false
	}

	s.mediaSections[idx].Close()
	delete(s.midToIndex, mid)
	s.regenerateBundleMids()
	return true
}

// GetSdp serializes the current session state, bumping the origin version.
func (s *RemoteSdp) GetSdp() (string, error) {
	s.sdpObject.Origin.SessionVersion++
	return s.sdpObject.Marshal()
}

func (s *RemoteSdp) addMediaSection(newMediaSection *MediaSection) {
	if s.firstMid == "" {
		s.firstMid = newMediaSection.Mid()
	}

	s.mediaSections = append(s.mediaSections, newMediaSection)
	s.midToIndex[newMediaSection.Mid()] = len(s.mediaSections) - 1
	s.sdpObject.Media = append(s.sdpObject.Media, newMediaSection.GetObject())

	s.regenerateBundleMids()
}

func (s *RemoteSdp) replaceMediaSection(newMediaSection *MediaSection, reuseMid string) error {
	// Closed sections have no mid mapping anymore, locate the slot by the
	// mid the section keeps carrying.
	idx := -1
	for i, mediaSection := range s.mediaSections {
		if mediaSection.Mid() == reuseMid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &SectionNotFoundError{Mid: reuseMid}
	}

	oldMediaSection := s.mediaSections[idx]
	s.mediaSections[idx] = newMediaSection

	delete(s.midToIndex, oldMediaSection.Mid())
	s.midToIndex[newMediaSection.Mid()] = idx
	s.sdpObject.Media[idx] = newMediaSection.GetObject()

	s.regenerateBundleMids()
	return nil
}

func (s *RemoteSdp) findMediaSection(mid string) (*MediaSection, bool) {
	idx, ok := s.midToIndex[mid]
	if !ok {
		return nil, false
	}
	return s.mediaSections[idx], true
}

// regenerateBundleMids rewrites the BUNDLE group with the mids of the
// sections that are not closed, in section order.
func (s *RemoteSdp) regenerateBundleMids() {
	if s.dtlsParameters == nil || len(s.sdpObject.Groups) == 0 {
		return
	}

	mids := make([]string, 0, len(s.mediaSections))
	for _, mediaSection := range s.mediaSections {
		if !mediaSection.Closed() {
			mids = append(mids, mediaSection.Mid())
		}
	}
	s.sdpObject.Groups[0].Mids = mids
}

// completeOfferRtpParameters fills in the pieces a router does not always
// announce for a consumer: encoding SSRCs and the RTCP CNAME. The input is
// cloned before being modified.
func (s *RemoteSdp) completeOfferRtpParameters(offerRtpParameters *RtpParameters) *RtpParameters {
	s.reserveEncodingSsrcs(offerRtpParameters)

	needsEncodings := len(offerRtpParameters.Encodings) == 0
	needsCname := offerRtpParameters.Rtcp == nil || offerRtpParameters.Rtcp.Cname == ""
	if !needsEncodings && !needsCname {
		return offerRtpParameters
	}

	completed := offerRtpParameters.Clone()
	if needsEncodings {
		encoding := &RtpEncodingParameters{Ssrc: s.ssrcAllocator.Allocate()}
		for _, codec := range completed.Codecs {
			if codec.isRtxCodec() {
				encoding.Rtx = &RtpEncodingRtx{Ssrc: s.ssrcAllocator.Allocate()}
				break
			}
		}
		completed.Encodings = []*RtpEncodingParameters{encoding}
	}
	if needsCname {
		if completed.Rtcp == nil {
			completed.Rtcp = &RtcpParameters{}
		}
		completed.Rtcp.Cname = util.MathRandAlpha(16)
	}
	return completed
}

func (s *RemoteSdp) reserveEncodingSsrcs(rtpParameters *RtpParameters) {
	if rtpParameters == nil {
		return
	}
	for _, encoding := range rtpParameters.Encodings {
		if encoding.Ssrc != 0 {
			s.ssrcAllocator.Reserve(encoding.Ssrc)
		}
		if encoding.Rtx != nil && encoding.Rtx.Ssrc != 0 {
			s.ssrcAllocator.Reserve(encoding.Rtx.Ssrc)
		}
	}
}

// SsrcAllocator issues SSRC values that are unique within one session.
type SsrcAllocator struct {
	used map[uint32]bool
}

// NewSsrcAllocator creates an empty allocator.
func NewSsrcAllocator() *SsrcAllocator {
	return &SsrcAllocator{used: map[uint32]bool{}}
}

// Reserve marks an externally issued SSRC as taken.
func (a *SsrcAllocator) Reserve(ssrc uint32) {
	a.used[ssrc] = true
}

// Allocate returns a fresh SSRC. After too many random collisions it falls
// back to a time derived value bumped past any taken one, so allocation
// never fails.
func (a *SsrcAllocator) Allocate() uint32 {
	for attempt := 0; attempt < 100; attempt++ {
		ssrc := util.RandUint32()
		if ssrc == 0 || a.used[ssrc] {
			continue
		}
		a.used[ssrc] = true
		return ssrc
	}

	ssrc := uint32(time.Now().UnixNano())
	for ssrc == 0 || a.used[ssrc] {
		ssrc++
	}
	a.used[ssrc] = true
	return ssrc
}
