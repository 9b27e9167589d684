// Package logger provides leveled console logging for ghsecret commands.
//
// Output is gated by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always shown on the error stream.
//
// Callers must never pass the plaintext secret value or the raw access token
// to any of these methods. Use ui.Mask for tokens.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Fetching public key for %s", target)
package logger
