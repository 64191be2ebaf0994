// Package sign provides the request-signing and proof-of-work subsystem
// of the login handshake. Both the signing primitive and the puzzle
// solver run outside this module; this package defines their call
// contracts, builds their inputs and ships default implementations (an
// HTTP signer client and a local brute-force solver).
package sign

import (
	"errors"

	"github.com/FurryKamenomi/icqq-dev/pkg/binary"
)

var (
	ErrSignFailed   = errors.New("external signer failed")
	ErrBadChallenge = errors.New("malformed proof-of-work challenge")
	ErrNoSolution   = errors.New("no proof-of-work solution found")
)

// Signer produces a device-bound signature over a salt buffer. The
// implementation is external to this module; given the salt and the
// current wall-clock time in milliseconds it returns opaque signature
// bytes tied to the device/app identity.
type Signer interface {
	Sign(timestampMS int64, salt []byte) ([]byte, error)
}

// Solver solves an assembled proof-of-work challenge. The returned
// proof is opaque and written verbatim as the tag payload.
type Solver interface {
	Solve(challenge []byte) ([]byte, error)
}

// SaltVersionB selects the zero-placeholder salt layout.
const SaltVersionB int32 = 2

// Salt builds the signer salt. Version SaltVersionB produces variant B
// (zero placeholder, device id, SDK version, sub-command, trailing
// zero); every other non-negative version produces variant A (account
// id, device id, SDK version, sub-command).
func Salt(version int32, uin uint32, guid []byte, sdkVer string, subCmd uint32) ([]byte, error) {
	w := binary.NewWriter()
	if version == SaltVersionB {
		w.WriteU32(0).
			WriteTlv(guid).
			WriteTlv([]byte(sdkVer)).
			WriteU32(subCmd).
			WriteU32(0)
	} else {
		w.WriteU64(uint64(uin)).
			WriteTlv(guid).
			WriteTlv([]byte(sdkVer)).
			WriteU32(subCmd)
	}
	return w.Bytes()
}
