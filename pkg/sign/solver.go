package sign

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"

	wire "github.com/FurryKamenomi/icqq-dev/pkg/binary"
)

// LocalSolver brute-forces puzzles in process: starting from the seed it
// increments candidate targets until one hashes to the challenge digest.
// MaxIterations bounds the search; zero means the default.
type LocalSolver struct {
	MaxIterations int
}

const defaultMaxIterations = 1 << 20

// Solve parses the assembled challenge and searches for the target. The
// proof echoes the challenge header with the status byte set to solved,
// followed by the iteration count and the length-prefixed seed, target
// and digest.
func (s *LocalSolver) Solve(challenge []byte) ([]byte, error) {
	seed, digest, err := parseChallenge(challenge)
	if err != nil {
		return nil, err
	}

	limit := s.MaxIterations
	if limit <= 0 {
		limit = defaultMaxIterations
	}

	target := make([]byte, TargetSize)
	n := new(big.Int).SetBytes(seed)
	one := big.NewInt(1)
	for i := 0; i <= limit; i++ {
		n.FillBytes(target)
		sum := sha256.Sum256(target)
		if bytes.Equal(sum[:], digest) {
			return wire.NewWriter().
				WriteU8(powVersion).
				WriteU8(powType).
				WriteU8(powHashType).
				WriteU8(1). // status: solved
				WriteU16(powMaxIndex).
				WriteU16(0).
				WriteU32(uint32(i)).
				WriteTlv(seed).
				WriteTlv(target).
				WriteTlv(digest).
				Bytes()
		}
		n.Add(n, one)
	}
	return nil, fmt.Errorf("%w after %d iterations", ErrNoSolution, limit)
}

// parseChallenge reads the first copy of the challenge body and returns
// its seed and digest fields. The duplicate copies are checked only for
// presence.
func parseChallenge(challenge []byte) (seed, digest []byte, err error) {
	const headerLen = 8

	body := challenge
	if len(body) < headerLen+4 {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrBadChallenge, len(body))
	}
	if body[0] != powVersion || body[2] != powHashType {
		return nil, nil, fmt.Errorf("%w: unsupported header", ErrBadChallenge)
	}

	off := headerLen
	seed, off, err = readField(body, off)
	if err != nil {
		return nil, nil, err
	}
	digest, off, err = readField(body, off)
	if err != nil {
		return nil, nil, err
	}
	if len(digest) != sha256.Size {
		return nil, nil, fmt.Errorf("%w: digest length %d", ErrBadChallenge, len(digest))
	}

	// The body must be followed by its raw duplicate and a
	// length-prefixed duplicate.
	if want := off + off + 2 + off; len(challenge) != want {
		return nil, nil, fmt.Errorf("%w: missing duplicate copies", ErrBadChallenge)
	}
	return seed, digest, nil
}

func readField(buf []byte, off int) ([]byte, int, error) {
	if off+2 > len(buf) {
		return nil, 0, fmt.Errorf("%w: truncated field", ErrBadChallenge)
	}
	n := int(binary.BigEndian.Uint16(buf[off:]))
	off += 2
	if off+n > len(buf) {
		return nil, 0, fmt.Errorf("%w: truncated field", ErrBadChallenge)
	}
	return buf[off : off+n], off + n, nil
}
