// Package param provides a tool for dealing with parameterized header
// fields. These fields include Content-Type and Content-Disposition. In
// addition, it provides some helper methods for breaking down the media types
// that get set in the Content-Type field.
//
// The grammar here is deliberately simple: segments split on semicolons,
// parameters split on the first equals sign, everything trimmed. Parameters
// remember the order in which they were first written and render in that
// order, so a value that is parsed and re-serialized keeps its shape.
package param
