// Package cli implements the tidy-patch command surface and maps review
// outcomes to deterministic exit codes.
package cli
