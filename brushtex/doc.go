// Package brushtex generates procedural brush tip masks.
//
// Every shape renders to a square alpha mask at a fixed working
// resolution. On-screen brush size is applied at stamp time by scaling
// the stamp quad, never by regenerating the mask.
//
// Generation is deterministic: stochastic shapes use fixed seeds, so
// the same Shape always produces a pixel-identical mask. That makes the
// mask cache safe to drop and rebuild at any time without visual drift.
//
// Unknown shape names fall back to the default soft circle with a log
// diagnostic rather than failing; a brush document from a newer version
// still paints.
package brushtex
