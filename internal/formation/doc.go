// Package formation derives team structure and pairwise geometry from
// detected players.
//
// Players are split into two teams by ID: with n expected players, IDs up to
// n/2 belong to TeamA and the rest to TeamB. Because IDs are assigned left to
// right, this splits the pitch at its vertical midline rather than by shirt
// color. FoldHalves overlays both halves on one half-pitch frame so the two
// formations can be compared directly.
//
// All coordinates are in the lower-left frame produced by the detection
// package.
package formation
