// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

// IceParameters hold the ICE credentials of the remote transport.
type IceParameters struct {
	// UsernameFragment is the ICE username fragment.
	UsernameFragment string `json:"usernameFragment"`

	// Password is the ICE password.
	Password string `json:"password"`

	// IceLite indicates the remote endpoint is an ICE Lite implementation.
	IceLite bool `json:"iceLite,omitempty"`
}

// IceCandidate is one transport candidate of the remote endpoint.
type IceCandidate struct {
	// Foundation is a unique identifier of the candidate.
	Foundation string `json:"foundation"`

	// Priority is the candidate priority.
	Priority uint32 `json:"priority"`

	// Ip is the IP address of the candidate.
	Ip string `json:"ip"`

	// Protocol is the transport protocol, "udp" or "tcp".
	Protocol string `json:"protocol"`

	// Port is the candidate port.
	Port int `json:"port"`

	// Type is the candidate type. SFUs only expose "host" candidates.
	Type string `json:"type"`

	// TcpType is the TCP candidate type, "passive" for TCP candidates.
	TcpType string `json:"tcpType,omitempty"`
}

// DtlsRole indicates the role of the DTLS negotiation.
type DtlsRole string

const (
	// DtlsRoleAuto defers the DTLS role to the ICE roles.
	DtlsRoleAuto DtlsRole = "auto"

	// DtlsRoleClient defines the DTLS client role.
	DtlsRoleClient DtlsRole = "client"

	// DtlsRoleServer defines the DTLS server role.
	DtlsRoleServer DtlsRole = "server"
)

func (r DtlsRole) String() string {
	return string(r)
}

// setupAttribute maps the role of the remote endpoint to the a=setup value
// this endpoint announces for it.
func (r DtlsRole) setupAttribute() string {
	switch r {
	case DtlsRoleClient:
		return "active"
	case DtlsRoleServer:
		return "passive"
	default:
		return "actpass"
	}
}

// dtlsRoleFromSetup maps an a=setup attribute value to the DTLS role it
// announces.
func dtlsRoleFromSetup(setup string) DtlsRole {
	switch setup {
	case "active":
		return DtlsRoleClient
	case "passive":
		return DtlsRoleServer
	default:
		return DtlsRoleAuto
	}
}

// DtlsFingerprint is one certificate fingerprint of an endpoint.
type DtlsFingerprint struct {
	// Algorithm is the hash function name ("sha-256", ...).
	Algorithm string `json:"algorithm"`

	// Value is the certificate fingerprint in colon separated hex.
	Value string `json:"value"`
}

// DtlsParameters hold the DTLS role and certificate fingerprints of an
// endpoint.
type DtlsParameters struct {
	// Role is the DTLS role. Default "auto".
	Role DtlsRole `json:"role,omitempty"`

	// Fingerprints are the certificate fingerprints, strongest last.
	Fingerprints []DtlsFingerprint `json:"fingerprints"`
}

// PlainRtpParameters describe a plain RTP endpoint, used instead of ICE and
// DTLS when the remote transport is not encrypted.
type PlainRtpParameters struct {
	// Ip is the remote IP address.
	Ip string `json:"ip"`

	// IpVersion is 4 or 6.
	IpVersion int `json:"ipVersion"`

	// Port is the remote port.
	Port int `json:"port"`
}
