// Package console binds a terminal session and a keyboard pipeline into the
// byte sink and source an emulated machine sees as its console.
//
// Output bytes go to the session's interpreter with Put. Input is polled with
// Get or Available, which read, in order: replies the session generated for
// status and identify requests, codes staged by the keyboard pipeline, and
// any extra sources such as a serial link.
package console
