// Package message provides the request and response carriers that own a
// header each. The types here stop where the wire begins. A Request holds
// the method and target that name an operation, a header, and either a
// literal body or a form staged for later encoding. A Response holds the
// status line values read off a response and a header. The actual reading
// and writing of messages belongs to whatever transmission layer sits on top
// of these.
//
// Both carriers embed a header.Header, so every field accessor is available
// directly on the message:
//
//	req := message.NewRequest("GET", "/objects/1234")
//	err := req.SetRange(0, 1023)
//	if err != nil {
//	  panic(err)
//	}
//
// Code that only cares about header access can accept either carrier through
// the HeaderBearer interface.
package message
