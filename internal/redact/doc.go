// Package redact scrubs secret-looking strings from diff text before it is
// sent to an inference endpoint, even a local one.
package redact
