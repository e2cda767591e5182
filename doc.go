// Package httpmsg provides the semantic layer of an HTTP message: a
// case-insensitive, multi-valued header field store with strict value
// validation, typed accessors for the header fields that have real structure
// to them (byte ranges, content ranges, media types, content length, transfer
// and connection tokens, credentials), and a small classified hierarchy of
// protocol errors that retry logic can dispatch on.
//
// This library deliberately stops short of the wire. It does no socket I/O,
// no connection management, no TLS, and no request dispatch. The intended
// shape is that some transmission layer owns the connection, constructs a
// message.Request or message.Response per exchange, and then works entirely
// through the semantic types provided here: the header store guarantees that
// nothing it holds can corrupt serialized output, the accessors guarantee
// that parsing and formatting of the structured fields is done in exactly one
// place, and the httperr taxonomy gives the caller a stable vocabulary for
// deciding whether a failed exchange is worth retrying.
//
// The header store itself lives in the header package. The low-level storage
// is header.Base, which preserves field insertion order, folds lookups to a
// canonical lowercased name, and rejects any value containing a carriage
// return or line feed at the moment of insertion. The high-level
// header.Header adds the typed accessors and caches the parsed forms of
// complex fields so that repeated reads do not repeatedly parse.
//
// Parameterized field values, such as those in Content-Type and
// Content-Disposition, are handled by the param package. Unlike the stricter
// MIME grammar, parameters here preserve their original order and survive
// round trips in the order they were written, which matters when you want
// output that resembles input.
//
// The message package provides the Request and Response carriers that own a
// header each, along with staging for form bodies. Form data can either be
// rendered immediately as application/x-www-form-urlencoded or staged with an
// encoding, boundary, and charset for a transmission layer to render later.
//
// Finally, the httperr package defines the protocol error taxonomy: generic,
// retriable, client, and fatal. Each error carries a message and a reference
// to the response that triggered it, and exposes a structured field view so
// that callers can destructure just the parts they care about.
package httpmsg
