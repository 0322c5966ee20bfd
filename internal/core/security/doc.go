// Package security holds the credential primitives of the service: the
// password policy, the bcrypt password hasher and the signed session-token
// codec. Everything here is free of I/O and safe for concurrent use once
// constructed.
package security
