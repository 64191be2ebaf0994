package sign

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/FurryKamenomi/icqq-dev/pkg/binary"
)

// Proof-of-work parameters. The work factor is fixed by the protocol;
// the seed's first byte is kept away from 0x00 and 0xFF so adding the
// work factor can never grow past the 256-byte target width.
const (
	SeedSize   = 128
	TargetSize = 256
	WorkFactor = 10000

	powVersion  = 1
	powType     = 2
	powHashType = 1
	powMaxIndex = 10
)

// Puzzle is a locally constructed computational challenge: a random
// seed, the target the solver must reach and the SHA-256 digest of that
// target.
type Puzzle struct {
	Seed   []byte
	Target []byte
	Digest []byte
}

// NewPuzzle draws a fresh puzzle from rng. The first seed byte is
// resampled until it is neither 0x00 nor 0xFF.
func NewPuzzle(rng io.Reader) (*Puzzle, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, fmt.Errorf("reading puzzle seed: %w", err)
	}
	for seed[0] == 0x00 || seed[0] == 0xFF {
		if _, err := io.ReadFull(rng, seed[:1]); err != nil {
			return nil, fmt.Errorf("resampling puzzle seed: %w", err)
		}
	}

	target := make([]byte, TargetSize)
	n := new(big.Int).SetBytes(seed)
	n.Add(n, big.NewInt(WorkFactor))
	n.FillBytes(target)

	digest := sha256.Sum256(target)
	return &Puzzle{Seed: seed, Target: target, Digest: digest[:]}, nil
}

// Challenge assembles the solver input: a fixed header (version, type,
// hash type, status, max index, two reserved bytes) followed by the
// length-prefixed seed and target digest, then the whole assembled
// buffer again raw and once more length-prefixed.
func (p *Puzzle) Challenge() ([]byte, error) {
	body, err := binary.NewWriter().
		WriteU8(powVersion).
		WriteU8(powType).
		WriteU8(powHashType).
		WriteU8(0). // status: unsolved
		WriteU16(powMaxIndex).
		WriteU16(0). // reserved
		WriteTlv(p.Seed).
		WriteTlv(p.Digest).
		Bytes()
	if err != nil {
		return nil, err
	}

	return binary.NewWriter().
		WriteBytes(body).
		WriteBytes(body).
		WriteTlv(body).
		Bytes()
}
