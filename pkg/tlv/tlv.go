package tlv

import (
	"crypto/md5"
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/FurryKamenomi/icqq-dev/pkg/binary"
	"github.com/FurryKamenomi/icqq-dev/pkg/crypto"
	"github.com/FurryKamenomi/icqq-dev/pkg/session"
	"github.com/FurryKamenomi/icqq-dev/pkg/sign"
)

// Encoder builds handshake TLV blocks from an explicit context snapshot.
// Sig, Device and App are borrowed read-only; the encoder holds no
// hidden state and no locks, so the owning session must serialize
// packet builds (one handshake in flight per connection).
type Encoder struct {
	Sig    *session.Sig
	Device *session.Device
	App    *session.App

	// Signer and Solver are the external signing and proof-of-work
	// collaborators, required only by the tags that use them.
	Signer sign.Signer
	Solver sign.Solver

	// DeviceInfo serializes the fixed-field device-info structure
	// embedded by tag 0x52D. The serialization format belongs to the
	// general-purpose schema codec outside this package.
	DeviceInfo func(*session.Device) ([]byte, error)

	// Rand and Now default to crypto/rand.Reader and time.Now. Tests
	// inject fixed sources to get byte-exact output.
	Rand io.Reader
	Now  func() time.Time
}

// Pack encodes one TLV block: the tag's value payload framed by a
// 2-byte tag and a 2-byte big-endian length. The returned buffer is
// exactly 4 + len(payload) bytes and independently parseable. Unknown
// tags fail with ErrUnknownTag.
func (e *Encoder) Pack(tag uint16, arg any) ([]byte, error) {
	payload, err := e.payload(tag, arg)
	if err != nil {
		return nil, fmt.Errorf("tag 0x%03x: %w", tag, err)
	}
	if len(payload) > math.MaxUint16 {
		return nil, fmt.Errorf("tag 0x%03x: %w", tag, binary.ErrOversizeField)
	}

	header, err := binary.NewWriter().
		WriteU16(tag).
		WriteU16(uint16(len(payload))).
		Bytes()
	if err != nil {
		return nil, err
	}
	return binary.NewWriter().
		WriteBytes(payload).
		Prepend(header).
		Bytes()
}

func (e *Encoder) rng() io.Reader {
	if e.Rand != nil {
		return e.Rand
	}
	return rand.Reader
}

// now returns wall-clock time truncated to 32-bit Unix seconds.
func (e *Encoder) now() uint32 {
	if e.Now != nil {
		return uint32(e.Now().Unix())
	}
	return uint32(time.Now().Unix())
}

func (e *Encoder) nowMS() int64 {
	if e.Now != nil {
		return e.Now().UnixMilli()
	}
	return time.Now().UnixMilli()
}

func (e *Encoder) randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(e.rng(), b); err != nil {
		return nil, fmt.Errorf("reading nonce: %w", err)
	}
	return b, nil
}

// seal encrypts an inner TLV stream with the block cipher.
func (e *Encoder) seal(body, key []byte) ([]byte, error) {
	tea, err := crypto.NewTEA(key)
	if err != nil {
		return nil, err
	}
	return tea.EncryptRand(body, e.rng())
}

// trunc keeps the leading n bytes of s; the remote end reads these
// fields as fixed-width and ignores anything past the cap.
func trunc(s string, n int) []byte {
	if len(s) > n {
		return []byte(s[:n])
	}
	return []byte(s)
}

func md5String(s string) []byte {
	sum := md5.Sum([]byte(s))
	return sum[:]
}
