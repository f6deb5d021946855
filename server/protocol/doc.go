// Package protocol implements the lendq wire codec.
//
// Three closed message sets share one primitive field layer:
//   - requests (client -> server), see request.go
//   - replies (server -> client), see reply.go
//   - protocol errors, see proto_error.go; a reply can carry one
//
// Every message starts with a one byte tag. Multi-byte integers are big
// endian and opaque buffers are a u32 length followed by the bytes.
//
// Size reports the exact encoded length of a message and Put writes it into
// an area of at least that size, returning what is left. Pack and AppendPack
// do the sizing themselves and are the normal way to encode.
//
// Decoders take a byte slice and return the message plus the bytes that
// follow it, or a *ProtoError naming the field that was truncated or the
// tag that was not recognised. Decoded keys and values are copies, so the
// input can be reused as soon as a decoder returns. Nothing in this package
// keeps state between calls.
package protocol
