package tlv

import "errors"

var (
	// ErrUnknownTag reports a tag id absent from the registry. The
	// handshake driver must never request an unregistered tag; this is a
	// programming error, not a recoverable runtime condition.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrBadArgument reports an argument struct of the wrong type for
	// the requested tag.
	ErrBadArgument = errors.New("bad tag argument")

	// ErrNotConfigured reports a missing external collaborator (signer,
	// solver or device-info codec) for a tag that needs one.
	ErrNotConfigured = errors.New("required collaborator not configured")
)
