// Package align extends an exact-match seed shared by a short query and
// a pre-truncated reference window into a full alignment.
//
// The query and reference are split at the seed. The part before the
// seed is reversed and aligned, the part after the seed is aligned as
// is, and both use an affine-gap fitting alignment (Gotoh's three-layer
// recurrence) in which the query side must be consumed completely
// while the reference side may end anywhere. The two extensions and
// the seed core are then stitched into one alignment.
//
// Align is the entry point for a complete request, Extend aligns a
// single window, and LocateSeed finds the seed in the query. Window
// builds the reference window that Align expects from a full contig.
// Each call allocates or borrows its own scratch matrices, so all
// functions are safe for concurrent use.
package align
