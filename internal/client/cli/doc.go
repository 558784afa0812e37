// Package cli provides the interactive adboard terminal client.
//
// It opens the same store the web server uses and runs a REPL over the
// board services: sign up, sign in, post an ad, list ads, log out. Notices
// that the web page would show are printed as lines.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
