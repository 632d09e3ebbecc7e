// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import "strings"

// MediaKind is the kind of a codec, header extension or media section.
type MediaKind string

const (
	// MediaKindAudio indicates an audio codec or media section.
	MediaKindAudio MediaKind = "audio"

	// MediaKindVideo indicates a video codec or media section.
	MediaKindVideo MediaKind = "video"

	// MediaKindApplication indicates an SCTP data media section.
	MediaKindApplication MediaKind = "application"
)

func (k MediaKind) String() string {
	return string(k)
}

// NewMediaKind creates a MediaKind from a string.
func NewMediaKind(raw string) MediaKind {
	switch {
	case strings.EqualFold(raw, string(MediaKindAudio)):
		return MediaKindAudio
	case strings.EqualFold(raw, string(MediaKindVideo)):
		return MediaKindVideo
	case strings.EqualFold(raw, string(MediaKindApplication)):
		return MediaKindApplication
	default:
		return MediaKind("")
	}
}

// Direction is the direction of a media section or header extension.
type Direction string

const (
	// DirectionSendrecv indicates media flows in both directions.
	DirectionSendrecv Direction = "sendrecv"

	// DirectionSendonly indicates media is only sent.
	DirectionSendonly Direction = "sendonly"

	// DirectionRecvonly indicates media is only received.
	DirectionRecvonly Direction = "recvonly"

	// DirectionInactive indicates no media flows.
	DirectionInactive Direction = "inactive"
)

func (d Direction) String() string {
	return string(d)
}

// Reverse returns the direction as seen from the other peer.
func (d Direction) Reverse() Direction {
	switch d {
	case DirectionSendonly:
		return DirectionRecvonly
	case DirectionRecvonly:
		return DirectionSendonly
	default:
		return d
	}
}
