// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"

	"github.com/elcreme/mediasoup-client-go/internal/fmtp"
)

// SdpObject is a typed in-memory representation of an SDP session: the
// session level attributes this package interprets plus the ordered media
// section list. Attributes the package does not understand are preserved
// verbatim in Attributes and written back on marshal.
type SdpObject struct {
	Version          int
	Origin           SdpOrigin
	Name             string
	Timing           SdpTiming
	IceLite          bool
	IceUfrag         string
	IcePwd           string
	Fingerprint      *DtlsFingerprint
	MsidSemantic     string
	ExtmapAllowMixed bool
	Groups           []SdpGroup
	Media            []*MediaObject

	// Attributes holds session attributes not interpreted here.
	Attributes []sdp.Attribute
}

// SdpOrigin is the o= line.
type SdpOrigin struct {
	Username       string
	SessionId      uint64
	SessionVersion uint64
	NetworkType    string
	AddressType    string
	Address        string
}

// SdpTiming is the t= line.
type SdpTiming struct {
	Start uint64
	Stop  uint64
}

// SdpGroup is an a=group line, such as the BUNDLE group.
type SdpGroup struct {
	Type string
	Mids []string
}

// SdpConnection is a c= line.
type SdpConnection struct {
	NetworkType string
	AddressType string
	Address     string
}

// MediaObject is a typed representation of one m= section.
type MediaObject struct {
	Kind       MediaKind
	Port       int
	Protocol   string
	Payloads   string
	Connection *SdpConnection

	Mid       string
	Direction Direction
	Msid      string

	IceUfrag        string
	IcePwd          string
	IceOptions      string
	Candidates      []*IceCandidate
	EndOfCandidates bool
	Setup           string
	Fingerprint     *DtlsFingerprint

	Rtp              []*RtpMap
	Fmtp             []*Fmtp
	RtcpFb           []*RtcpFb
	Ext              []*Extmap
	ExtmapAllowMixed bool
	Ssrcs            []*SsrcLine
	SsrcGroups       []*SsrcGroup
	Rids             []*Rid
	Simulcast        *Simulcast

	RtcpMux   bool
	RtcpRsize bool

	SctpPort       int
	MaxMessageSize int
	Sctpmap        *Sctpmap

	// Attributes holds media attributes not interpreted here, including
	// any that failed to parse into their typed form.
	Attributes []sdp.Attribute
}

// RtpMap is an a=rtpmap line.
type RtpMap struct {
	PayloadType byte
	Codec       string
	ClockRate   int
	Channels    int
}

// Fmtp is an a=fmtp line with its config parsed into a parameter map.
type Fmtp struct {
	PayloadType byte
	Parameters  CodecParameters
}

// RtcpFb is an a=rtcp-fb line. PayloadType is kept textual since it may be
// the "*" wildcard.
type RtcpFb struct {
	PayloadType string
	Type        string
	Parameter   string
}

// Extmap is an a=extmap line. EncryptUri is set for the encrypted form of
// RFC 6904 where the real URI follows the encrypt indicator.
type Extmap struct {
	Value      int
	Direction  string
	EncryptUri string
	Uri        string
}

// SsrcLine is one a=ssrc line.
type SsrcLine struct {
	Id        uint32
	Attribute string
	Value     string
}

// SsrcGroup is an a=ssrc-group line.
type SsrcGroup struct {
	Semantics string
	Ssrcs     []uint32
}

// Rid is an a=rid line.
type Rid struct {
	Id        string
	Direction string
	Params    string
}

// Simulcast is an a=simulcast line.
type Simulcast struct {
	Dir1  string
	List1 string
	Dir2  string
	List2 string
}

// Sctpmap is the legacy a=sctpmap line of the old datachannel spec.
type Sctpmap struct {
	Port           int
	App            string
	MaxMessageSize int
}

// ParseSdp parses SDP text into an SdpObject.
func ParseSdp(raw string) (*SdpObject, error) {
	sessionDescription := &sdp.SessionDescription{}
	if err := sessionDescription.Unmarshal([]byte(raw)); err != nil {
		return nil, err
	}

	obj := &SdpObject{}
	if err := obj.FromPion(sessionDescription); err != nil {
		return nil, err
	}
	return obj, nil
}

// Marshal serializes the SdpObject to SDP text.
func (s *SdpObject) Marshal() (string, error) {
	raw, err := s.ToPion().Marshal()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// FromPion fills the SdpObject from a pion session description.
func (s *SdpObject) FromPion(sessionDescription *sdp.SessionDescription) error {
	s.Version = int(sessionDescription.Version)
	s.Origin = SdpOrigin{
		Username:       sessionDescription.Origin.Username,
		SessionId:      sessionDescription.Origin.SessionID,
		SessionVersion: sessionDescription.Origin.SessionVersion,
		NetworkType:    sessionDescription.Origin.NetworkType,
		AddressType:    sessionDescription.Origin.AddressType,
		Address:        sessionDescription.Origin.UnicastAddress,
	}
	s.Name = string(sessionDescription.SessionName)
	if len(sessionDescription.TimeDescriptions) > 0 {
		timing := sessionDescription.TimeDescriptions[0].Timing
		s.Timing = SdpTiming{Start: timing.StartTime, Stop: timing.StopTime}
	}

	for _, attr := range sessionDescription.Attributes {
		switch attr.Key {
		case "ice-lite":
			s.IceLite = true
		case "ice-ufrag":
			s.IceUfrag = attr.Value
		case "ice-pwd":
			s.IcePwd = attr.Value
		case "fingerprint":
			if fingerprint, ok := parseFingerprint(attr.Value); ok {
				s.Fingerprint = fingerprint
			} else {
				s.Attributes = append(s.Attributes, attr)
			}
		case "msid-semantic":
			s.MsidSemantic = strings.TrimSpace(attr.Value)
		case "extmap-allow-mixed":
			s.ExtmapAllowMixed = true
		case "group":
			fields := strings.Fields(attr.Value)
			if len(fields) == 0 {
				s.Attributes = append(s.Attributes, attr)
				continue
			}
			s.Groups = append(s.Groups, SdpGroup{Type: fields[0], Mids: fields[1:]})
		default:
			s.Attributes = append(s.Attributes, attr)
		}
	}

	for _, mediaDescription := range sessionDescription.MediaDescriptions {
		media := &MediaObject{}
		if err := media.FromPion(mediaDescription); err != nil {
			return err
		}
		s.Media = append(s.Media, media)
	}
	return nil
}

// ToPion lowers the SdpObject into a pion session description.
func (s *SdpObject) ToPion() *sdp.SessionDescription {
	sessionDescription := &sdp.SessionDescription{
		Version: sdp.Version(s.Version),
		Origin: sdp.Origin{
			Username:       s.Origin.Username,
			SessionID:      s.Origin.SessionId,
			SessionVersion: s.Origin.SessionVersion,
			NetworkType:    s.Origin.NetworkType,
			AddressType:    s.Origin.AddressType,
			UnicastAddress: s.Origin.Address,
		},
		SessionName: sdp.SessionName(s.Name),
		TimeDescriptions: []sdp.TimeDescription{
			{Timing: sdp.Timing{StartTime: s.Timing.Start, StopTime: s.Timing.Stop}},
		},
	}

	if s.IceLite {
		sessionDescription.Attributes = append(sessionDescription.Attributes, sdp.Attribute{Key: "ice-lite"})
	}
	if s.IceUfrag != "" {
		sessionDescription.Attributes = append(sessionDescription.Attributes,
			sdp.Attribute{Key: "ice-ufrag", Value: s.IceUfrag})
	}
	if s.IcePwd != "" {
		sessionDescription.Attributes = append(sessionDescription.Attributes,
			sdp.Attribute{Key: "ice-pwd", Value: s.IcePwd})
	}
	if s.Fingerprint != nil {
		sessionDescription.Attributes = append(sessionDescription.Attributes,
			sdp.Attribute{Key: "fingerprint", Value: s.Fingerprint.Algorithm + " " + s.Fingerprint.Value})
	}
	if s.MsidSemantic != "" {
		sessionDescription.Attributes = append(sessionDescription.Attributes,
			sdp.Attribute{Key: "msid-semantic", Value: s.MsidSemantic})
	}
	for _, group := range s.Groups {
		value := group.Type
		if len(group.Mids) > 0 {
			value += " " + strings.Join(group.Mids, " ")
		}
		sessionDescription.Attributes = append(sessionDescription.Attributes,
			sdp.Attribute{Key: "group", Value: value})
	}
	if s.ExtmapAllowMixed {
		sessionDescription.Attributes = append(sessionDescription.Attributes,
			sdp.Attribute{Key: "extmap-allow-mixed"})
	}
	sessionDescription.Attributes = append(sessionDescription.Attributes, s.Attributes...)

	for _, media := range s.Media {
		sessionDescription.MediaDescriptions = append(sessionDescription.MediaDescriptions, media.ToPion())
	}
	return sessionDescription
}

// FromPion fills the MediaObject from a pion media description.
func (m *MediaObject) FromPion(mediaDescription *sdp.MediaDescription) error {
	m.Kind = MediaKind(mediaDescription.MediaName.Media)
	m.Port = mediaDescription.MediaName.Port.Value
	m.Protocol = strings.Join(mediaDescription.MediaName.Protos, "/")
	m.Payloads = strings.Join(mediaDescription.MediaName.Formats, " ")

	if conn := mediaDescription.ConnectionInformation; conn != nil && conn.Address != nil {
		m.Connection = &SdpConnection{
			NetworkType: conn.NetworkType,
			AddressType: conn.AddressType,
			Address:     conn.Address.Address,
		}
	}

	for _, attr := range mediaDescription.Attributes {
		ok := true
		switch attr.Key {
		case "mid":
			m.Mid = attr.Value
		case "sendrecv", "sendonly", "recvonly", "inactive":
			m.Direction = Direction(attr.Key)
		case "msid":
			m.Msid = attr.Value
		case "ice-ufrag":
			m.IceUfrag = attr.Value
		case "ice-pwd":
			m.IcePwd = attr.Value
		case "ice-options":
			m.IceOptions = attr.Value
		case "end-of-candidates":
			m.EndOfCandidates = true
		case "setup":
			m.Setup = attr.Value
		case "fingerprint":
			var fingerprint *DtlsFingerprint
			if fingerprint, ok = parseFingerprint(attr.Value); ok {
				m.Fingerprint = fingerprint
			}
		case "rtpmap":
			var rtpMap *RtpMap
			if rtpMap, ok = parseRtpMap(attr.Value); ok {
				m.Rtp = append(m.Rtp, rtpMap)
			}
		case "fmtp":
			var entry *Fmtp
			if entry, ok = parseFmtpLine(attr.Value); ok {
				m.Fmtp = append(m.Fmtp, entry)
			}
		case "rtcp-fb":
			var fb *RtcpFb
			if fb, ok = parseRtcpFb(attr.Value); ok {
				m.RtcpFb = append(m.RtcpFb, fb)
			}
		case "extmap":
			var ext *Extmap
			if ext, ok = parseExtmap(attr.Value); ok {
				m.Ext = append(m.Ext, ext)
			}
		case "extmap-allow-mixed":
			m.ExtmapAllowMixed = true
		case "ssrc":
			var line *SsrcLine
			if line, ok = parseSsrcLine(attr.Value); ok {
				m.Ssrcs = append(m.Ssrcs, line)
			}
		case "ssrc-group":
			var group *SsrcGroup
			if group, ok = parseSsrcGroup(attr.Value); ok {
				m.SsrcGroups = append(m.SsrcGroups, group)
			}
		case "rid":
			var rid *Rid
			if rid, ok = parseRid(attr.Value); ok {
				m.Rids = append(m.Rids, rid)
			}
		case "simulcast":
			var simulcast *Simulcast
			if simulcast, ok = parseSimulcast(attr.Value); ok {
				m.Simulcast = simulcast
			}
		case "rtcp-mux":
			m.RtcpMux = true
		case "rtcp-rsize":
			m.RtcpRsize = true
		case "sctp-port":
			var port int
			var err error
			if port, err = strconv.Atoi(attr.Value); err == nil {
				m.SctpPort = port
			} else {
				ok = false
			}
		case "max-message-size":
			var size int
			var err error
			if size, err = strconv.Atoi(attr.Value); err == nil {
				m.MaxMessageSize = size
			} else {
				ok = false
			}
		case "sctpmap":
			var sctpmap *Sctpmap
			if sctpmap, ok = parseSctpmap(attr.Value); ok {
				m.Sctpmap = sctpmap
			}
		default:
			ok = false
		}
		if !ok {
			m.Attributes = append(m.Attributes, attr)
		}
	}
	return nil
}

// ToPion lowers the MediaObject into a pion media description.
func (m *MediaObject) ToPion() *sdp.MediaDescription {
	mediaDescription := &sdp.MediaDescription{
		MediaName: sdp.MediaName{
			Media:   string(m.Kind),
			Port:    sdp.RangedPort{Value: m.Port},
			Protos:  strings.Split(m.Protocol, "/"),
			Formats: strings.Fields(m.Payloads),
		},
	}

	if m.Connection != nil {
		mediaDescription.ConnectionInformation = &sdp.ConnectionInformation{
			NetworkType: m.Connection.NetworkType,
			AddressType: m.Connection.AddressType,
			Address:     &sdp.Address{Address: m.Connection.Address},
		}
	}

	addValue := func(key, value string) {
		mediaDescription.Attributes = append(mediaDescription.Attributes, sdp.Attribute{Key: key, Value: value})
	}
	addProperty := func(key string) {
		mediaDescription.Attributes = append(mediaDescription.Attributes, sdp.Attribute{Key: key})
	}

	for _, rtpMap := range m.Rtp {
		value := fmt.Sprintf("%d %s/%d", rtpMap.PayloadType, rtpMap.Codec, rtpMap.ClockRate)
		if rtpMap.Channels > 1 {
			value += "/" + strconv.Itoa(rtpMap.Channels)
		}
		addValue("rtpmap", value)
	}
	for _, entry := range m.Fmtp {
		config := fmtp.Marshal(entry.Parameters)
		if config == "" {
			continue
		}
		addValue("fmtp", fmt.Sprintf("%d %s", entry.PayloadType, config))
	}
	for _, fb := range m.RtcpFb {
		value := fb.PayloadType + " " + fb.Type
		if fb.Parameter != "" {
			value += " " + fb.Parameter
		}
		addValue("rtcp-fb", value)
	}
	for _, ext := range m.Ext {
		id := strconv.Itoa(ext.Value)
		if ext.Direction != "" {
			id += "/" + ext.Direction
		}
		uri := ext.Uri
		if ext.EncryptUri != "" {
			uri = ext.EncryptUri + " " + uri
		}
		addValue("extmap", id+" "+uri)
	}
	if m.ExtmapAllowMixed {
		addProperty("extmap-allow-mixed")
	}
	if m.Setup != "" {
		addValue("setup", m.Setup)
	}
	if m.Mid != "" {
		addValue("mid", m.Mid)
	}
	if m.Msid != "" {
		addValue("msid", m.Msid)
	}
	if m.Direction != "" {
		addProperty(string(m.Direction))
	}
	if m.IceUfrag != "" {
		addValue("ice-ufrag", m.IceUfrag)
	}
	if m.IcePwd != "" {
		addValue("ice-pwd", m.IcePwd)
	}
	if m.Fingerprint != nil {
		addValue("fingerprint", m.Fingerprint.Algorithm+" "+m.Fingerprint.Value)
	}
	for _, candidate := range m.Candidates {
		value := fmt.Sprintf("%s 1 %s %d %s %d typ %s",
			candidate.Foundation, candidate.Protocol, candidate.Priority,
			candidate.Ip, candidate.Port, candidate.Type)
		if candidate.TcpType != "" {
			value += " tcptype " + candidate.TcpType
		}
		addValue("candidate", value)
	}
	if m.EndOfCandidates {
		addProperty("end-of-candidates")
	}
	if m.IceOptions != "" {
		addValue("ice-options", m.IceOptions)
	}
	for _, line := range m.Ssrcs {
		value := strconv.FormatUint(uint64(line.Id), 10) + " " + line.Attribute
		if line.Value != "" {
			value += ":" + line.Value
		}
		addValue("ssrc", value)
	}
	for _, group := range m.SsrcGroups {
		ssrcs := make([]string, 0, len(group.Ssrcs))
		for _, ssrc := range group.Ssrcs {
			ssrcs = append(ssrcs, strconv.FormatUint(uint64(ssrc), 10))
		}
		addValue("ssrc-group", group.Semantics+" "+strings.Join(ssrcs, " "))
	}
	for _, rid := range m.Rids {
		value := rid.Id + " " + rid.Direction
		if rid.Params != "" {
			value += " " + rid.Params
		}
		addValue("rid", value)
	}
	if m.Simulcast != nil {
		value := m.Simulcast.Dir1 + " " + m.Simulcast.List1
		if m.Simulcast.Dir2 != "" {
			value += " " + m.Simulcast.Dir2 + " " + m.Simulcast.List2
		}
		addValue("simulcast", value)
	}
	if m.RtcpMux {
		addProperty("rtcp-mux")
	}
	if m.RtcpRsize {
		addProperty("rtcp-rsize")
	}
	if m.Sctpmap != nil {
		addValue("sctpmap", fmt.Sprintf("%d %s %d", m.Sctpmap.Port, m.Sctpmap.App, m.Sctpmap.MaxMessageSize))
	}
	if m.SctpPort > 0 {
		addValue("sctp-port", strconv.Itoa(m.SctpPort))
	}
	if m.MaxMessageSize > 0 {
		addValue("max-message-size", strconv.Itoa(m.MaxMessageSize))
	}
	mediaDescription.Attributes = append(mediaDescription.Attributes, m.Attributes...)

	return mediaDescription
}

func parseFingerprint(value string) (*DtlsFingerprint, bool) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return nil, false
	}
	return &DtlsFingerprint{Algorithm: fields[0], Value: fields[1]}, true
}

func parseRtpMap(value string) (*RtpMap, bool) {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return nil, false
	}
	payloadType, err := strconv.Atoi(parts[0])
	if err != nil || payloadType < 0 || payloadType > 255 {
		return nil, false
	}

	encoding := strings.Split(parts[1], "/")
	if len(encoding) < 2 {
		return nil, false
	}
	clockRate, err := strconv.Atoi(encoding[1])
	if err != nil {
		return nil, false
	}

	rtpMap := &RtpMap{
		PayloadType: byte(payloadType),
		Codec:       encoding[0],
		ClockRate:   clockRate,
	}
	if len(encoding) > 2 {
		if channels, err := strconv.Atoi(encoding[2]); err == nil {
			rtpMap.Channels = channels
		}
	}
	return rtpMap, true
}

func parseFmtpLine(value string) (*Fmtp, bool) {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return nil, false
	}
	payloadType, err := strconv.Atoi(parts[0])
	if err != nil || payloadType < 0 || payloadType > 255 {
		return nil, false
	}
	return &Fmtp{
		PayloadType: byte(payloadType),
		Parameters:  fmtp.Parse(parts[1]),
	}, true
}

func parseRtcpFb(value string) (*RtcpFb, bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return nil, false
	}
	fb := &RtcpFb{PayloadType: fields[0], Type: fields[1]}
	if len(fields) > 2 {
		fb.Parameter = strings.Join(fields[2:], " ")
	}
	return fb, true
}

func parseExtmap(value string) (*Extmap, bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return nil, false
	}

	idPart := fields[0]
	direction := ""
	if idx := strings.IndexByte(idPart, '/'); idx != -1 {
		direction = idPart[idx+1:]
		idPart = idPart[:idx]
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return nil, false
	}

	ext := &Extmap{Value: id, Direction: direction, Uri: fields[1]}
	if ext.Uri == "urn:ietf:params:rtp-hdrext:encrypt" && len(fields) > 2 {
		ext.EncryptUri = ext.Uri
		ext.Uri = fields[2]
	}
	return ext, true
}

func parseSsrcLine(value string) (*SsrcLine, bool) {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return nil, false
	}
	id, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return nil, false
	}

	line := &SsrcLine{Id: uint32(id)}
	attribute := strings.SplitN(parts[1], ":", 2)
	line.Attribute = attribute[0]
	if len(attribute) > 1 {
		line.Value = attribute[1]
	}
	return line, true
}

func parseSsrcGroup(value string) (*SsrcGroup, bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return nil, false
	}
	group := &SsrcGroup{Semantics: fields[0]}
	for _, field := range fields[1:] {
		ssrc, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, false
		}
		group.Ssrcs = append(group.Ssrcs, uint32(ssrc))
	}
	return group, true
}

func parseRid(value string) (*Rid, bool) {
	fields := strings.SplitN(value, " ", 3)
	if len(fields) < 2 {
		return nil, false
	}
	rid := &Rid{Id: fields[0], Direction: fields[1]}
	if len(fields) > 2 {
		rid.Params = fields[2]
	}
	return rid, true
}

func parseSimulcast(value string) (*Simulcast, bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return nil, false
	}
	simulcast := &Simulcast{Dir1: fields[0], List1: fields[1]}
	if len(fields) >= 4 {
		simulcast.Dir2 = fields[2]
		simulcast.List2 = fields[3]
	}
	return simulcast, true
}

func parseSctpmap(value string) (*Sctpmap, bool) {
	fields := strings.Fields(value)
	if len(fields) < 3 {
		return nil, false
	}
	port, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, false
	}
	size, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, false
	}
	return &Sctpmap{Port: port, App: fields[1], MaxMessageSize: size}, true
}
