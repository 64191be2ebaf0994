// Package tlv implements the login-handshake tag-length-value codec.
//
// The handshake packet body is a concatenation of self-delimiting TLV
// blocks, each tag(2) || length(2) || value(length) with big-endian
// integers throughout. Pack is the sole entry point: given a tag id and
// that tag's argument struct (nil for tags without parameters) it
// dispatches to the matching encoder and frames the result.
//
// Encoders are pure functions over an immutable snapshot of the session
// signature state and the device/application profiles. They never mutate
// state; in particular the sequence-counter tag encodes "current
// sequence + 1" as a peek, and advancing the counter is the handshake
// driver's job. Randomness and wall-clock reads go through the
// Encoder's injectable Rand and Now fields so tests can assert exact
// output bytes.
//
// Several tags nest independently encrypted sub-streams: they assemble
// an inner TLV sequence from other tags and encrypt it with the
// session's symmetric key before emitting it as their own value.
// Signature and proof-of-work tags delegate to external collaborators
// through the sign package's Signer and Solver contracts.
package tlv
