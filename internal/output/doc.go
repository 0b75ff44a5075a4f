// Package output formats review reports for display.
//
// The text writer produces the stderr review shown during a commit; the
// markdown writer is suitable for pasting into a PR; the JSON writer dumps
// the full report structure. All writers preserve violation order.
package output
