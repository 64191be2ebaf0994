package crypto

import (
	"crypto/ecdh"
	"crypto/md5"
	"crypto/rand"
	"fmt"
)

// Exchange is the client half of the login key agreement. The public key
// travels in the outer login packet; ShareKey becomes the symmetric key
// protecting the packet body once the server half is known.
type Exchange struct {
	priv *ecdh.PrivateKey

	// PublicKey is the client public key as an uncompressed P-256 point.
	PublicKey []byte

	// ShareKey is the 16-byte derived session key, set by Derive.
	ShareKey []byte
}

// NewExchange generates a fresh client keypair.
func NewExchange() (*Exchange, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating exchange key: %w", err)
	}
	return &Exchange{
		priv:      priv,
		PublicKey: priv.PublicKey().Bytes(),
	}, nil
}

// Derive computes the share key from the server's uncompressed public
// point: MD5 over the first 16 bytes of the ECDH secret, matching the
// remote side's derivation.
func (e *Exchange) Derive(serverPublic []byte) ([]byte, error) {
	pub, err := ecdh.P256().NewPublicKey(serverPublic)
	if err != nil {
		return nil, fmt.Errorf("parsing server public key: %w", err)
	}
	secret, err := e.priv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("deriving shared secret: %w", err)
	}
	sum := md5.Sum(secret[:16])
	e.ShareKey = sum[:]
	return e.ShareKey, nil
}
