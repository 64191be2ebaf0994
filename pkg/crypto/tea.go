// Package crypto implements the cryptographic primitives of the login
// protocol: the proprietary 8-byte-block cipher protecting sensitive TLV
// sub-streams and the P-256 key agreement producing session key material.
package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidKey        = errors.New("cipher key must be 16 bytes")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrInvalidPadding    = errors.New("invalid padding")
)

// BlockSize is the cipher block size in bytes.
const BlockSize = 8

const teaDelta = 0x9E3779B9

// TEA is the protocol's block cipher. Ciphertext chaining uses the
// previous ciphertext block together with a running XOR accumulator
// seeded with a zero block, so every output block depends on all prior
// input. The same key never produces the same ciphertext twice because
// the padding header carries random filler.
type TEA struct {
	k0, k1, k2, k3 uint32
}

// NewTEA builds a cipher from a 16-byte key.
func NewTEA(key []byte) (*TEA, error) {
	if len(key) != 16 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidKey, len(key))
	}
	return &TEA{
		k0: binary.BigEndian.Uint32(key[0:4]),
		k1: binary.BigEndian.Uint32(key[4:8]),
		k2: binary.BigEndian.Uint32(key[8:12]),
		k3: binary.BigEndian.Uint32(key[12:16]),
	}, nil
}

func (t *TEA) encode(n uint64) uint64 {
	v0, v1 := uint32(n>>32), uint32(n)
	var sum uint32
	for i := 0; i < 16; i++ {
		sum += teaDelta
		v0 += ((v1 << 4) + t.k0) ^ (v1 + sum) ^ ((v1 >> 5) + t.k1)
		v1 += ((v0 << 4) + t.k2) ^ (v0 + sum) ^ ((v0 >> 5) + t.k3)
	}
	return uint64(v0)<<32 | uint64(v1)
}

func (t *TEA) decode(n uint64) uint64 {
	v0, v1 := uint32(n>>32), uint32(n)
	var sum uint32 = 0xE3779B90 // teaDelta * 16, truncated to 32 bits
	for i := 0; i < 16; i++ {
		v1 -= ((v0 << 4) + t.k2) ^ (v0 + sum) ^ ((v0 >> 5) + t.k3)
		v0 -= ((v1 << 4) + t.k0) ^ (v1 + sum) ^ ((v1 >> 5) + t.k1)
		sum -= teaDelta
	}
	return uint64(v0)<<32 | uint64(v1)
}

// encryptBlocks runs the chained cipher in place over a padded buffer
// whose length is a multiple of BlockSize.
func (t *TEA) encryptBlocks(buf []byte) {
	var prevCipher, prevPlain uint64
	for i := 0; i+BlockSize <= len(buf); i += BlockSize {
		block := binary.BigEndian.Uint64(buf[i:])
		mixed := block ^ prevCipher
		out := t.encode(mixed) ^ prevPlain
		prevPlain = mixed
		prevCipher = out
		binary.BigEndian.PutUint64(buf[i:], out)
	}
}

// Encrypt pads and encrypts plaintext. The padding prefix is one header
// byte whose low 3 bits record the filler length minus 3, then 2-9 random
// filler bytes, then the plaintext, then 7 zero bytes; the total is a
// multiple of BlockSize and at least 16 bytes.
func (t *TEA) Encrypt(plaintext []byte) ([]byte, error) {
	return t.EncryptRand(plaintext, rand.Reader)
}

// EncryptRand is Encrypt with an explicit filler source, so callers can
// produce repeatable output from a fixed reader.
func (t *TEA) EncryptRand(plaintext []byte, rng io.Reader) ([]byte, error) {
	fill := 10 - (len(plaintext)+1)%8
	buf := make([]byte, fill+len(plaintext)+7)
	if _, err := io.ReadFull(rng, buf[:fill]); err != nil {
		return nil, fmt.Errorf("reading filler: %w", err)
	}
	buf[0] = buf[0]&0xF8 | byte(fill-3)
	copy(buf[fill:], plaintext)

	t.encryptBlocks(buf)
	return buf, nil
}

// Decrypt reverses Encrypt, validates the padding header and trailing
// zero bytes, and strips both. Malformed input is a hard decode error.
func (t *TEA) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 16 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidCiphertext, len(ciphertext))
	}

	buf := make([]byte, len(ciphertext))
	var prevCipher, acc uint64
	for i := 0; i+BlockSize <= len(ciphertext); i += BlockSize {
		block := binary.BigEndian.Uint64(ciphertext[i:])
		acc = t.decode(block ^ acc)
		binary.BigEndian.PutUint64(buf[i:], acc^prevCipher)
		prevCipher = block
	}

	fill := int(buf[0]&0x07) + 3
	if fill+7 > len(buf) {
		return nil, fmt.Errorf("%w: filler length %d", ErrInvalidPadding, fill)
	}
	for _, b := range buf[len(buf)-7:] {
		if b != 0 {
			return nil, fmt.Errorf("%w: trailing bytes not zero", ErrInvalidPadding)
		}
	}
	return buf[fill : len(buf)-7], nil
}
