// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

// SctpCapabilities define what an endpoint supports for SCTP associations.
type SctpCapabilities struct {
	NumStreams NumSctpStreams `json:"numStreams"`
}

// NumSctpStreams is the number of outgoing and incoming SCTP streams an
// endpoint supports.
type NumSctpStreams struct {
	// OS is the initially requested number of outgoing streams.
	OS int `json:"OS"`

	// MIS is the maximum number of incoming streams.
	MIS int `json:"MIS"`
}

// SctpParameters hold the negotiated settings of an SCTP association.
type SctpParameters struct {
	// Port is the SCTP port, always 5000 over DTLS.
	Port int `json:"port"`

	// OS is the initially requested number of outgoing streams.
	OS int `json:"OS"`

	// MIS is the maximum number of incoming streams.
	MIS int `json:"MIS"`

	// MaxMessageSize is the maximum allowed size for SCTP messages.
	MaxMessageSize int `json:"maxMessageSize"`
}

// SctpStreamParameters describe the reliability of one SCTP stream.
type SctpStreamParameters struct {
	// StreamId is the SCTP stream id.
	StreamId int `json:"streamId"`

	// Ordered indicates whether messages are delivered in order. Default
	// true, forced false when a partial reliability option is set.
	Ordered *bool `json:"ordered,omitempty"`

	// MaxPacketLifeTime is the maximum time in milliseconds to retransmit.
	MaxPacketLifeTime int `json:"maxPacketLifeTime,omitempty"`

	// MaxRetransmits is the maximum number of retransmissions.
	MaxRetransmits int `json:"maxRetransmits,omitempty"`
}
