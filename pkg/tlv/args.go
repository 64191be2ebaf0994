package tlv

// Argument structs for the tags that take per-call parameters. Every
// other tag is fully determined by the encoder context and takes nil.

// T106Args carries the credential for the encrypted A1 tag.
type T106Args struct {
	// PasswordMD5 is the MD5 digest of the account password.
	PasswordMD5 [16]byte
}

// T143Args carries an explicit service ticket override.
type T143Args struct {
	Ticket []byte
}

// T17CArgs carries the short code entered during SMS verification.
type T17CArgs struct {
	Code string
}

// T193Args carries the captcha ticket returned by the slider page.
type T193Args struct {
	Ticket string
}

// T544Args selects the signer salt construction. Version -1 bypasses
// salting entirely and emits Signature verbatim; Signature is ignored
// for any other version.
type T544Args struct {
	Version   int32
	SubCmd    uint32
	Signature []byte
}
