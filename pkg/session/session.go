// Package session holds the per-connection signature state and the
// device/application profiles that the login codec reads. All three are
// owned by the surrounding client session; the codec borrows them
// read-only for the duration of one packet build.
package session

// Sig is the mutable per-connection signature state: server-issued
// tickets, session keys and the request sequence counter. The handshake
// driver mutates it as server responses arrive; encoders never write to
// it. At most one packet-build-and-advance cycle may be in flight per
// session, so the driver must serialize handshake attempts.
type Sig struct {
	// Uin is the numeric account identifier.
	Uin uint32

	// Seq is the request sequence counter. Encoders peek Seq+1; the
	// driver advances it after the packet is sent.
	Seq uint32

	// Tgtgt is the 16-byte symmetric key protecting encrypted TLV
	// sub-streams during login.
	Tgtgt []byte

	// TGT is the ticket-granting credential issued on successful login.
	TGT []byte

	// D2 is the service ticket used by post-login requests.
	D2 []byte

	// D2Key decrypts D2-protected payloads.
	D2Key []byte

	// Ksid is the session cookie. Empty until the server issues one;
	// the codec falls back to a device-derived value.
	Ksid []byte

	// Dpwd is the random device password material.
	Dpwd []byte

	// Opaque server-issued tickets echoed back verbatim during the
	// multi-step handshake.
	T104 []byte
	T174 []byte
	T402 []byte
}

// NewSig returns signature state for an account with a fresh sequence
// counter. Key material starts empty; the driver fills it as the
// handshake progresses.
func NewSig(uin uint32) *Sig {
	return &Sig{Uin: uin}
}
