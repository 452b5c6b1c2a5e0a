// Package render draws detection results for inspection.
//
// Overlay paints translucent team discs and ID labels onto a copy of the
// source image. Plot saves a chart in the lower-left frame with gonum/plot,
// optionally with graph edges between players. Encode turns either into a
// base64 PNG for transport.
package render
