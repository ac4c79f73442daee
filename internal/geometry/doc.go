// Package geometry holds the pure invariant rules for crop rectangles and
// trim ranges. Everything here is stateless arithmetic over normalized
// fractions: crop regions are fractions of the frame dimensions, trim ranges
// are fractions of the total duration.
//
// Trim validation rounds the resulting duration both down and up before
// comparing against the configured bounds. Fractions are floats while
// durations are integral, so a single truncating conversion can reject a
// trim that sits exactly on a bound.
package geometry
