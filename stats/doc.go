// Package stats defines the Record contract and implements ScoreStats, the
// fixed-width numeric record stored in score files.
//
// Text encoding: one line of values separated by a single space.
// Binary encoding: Size() little-endian IEEE-754 float32 values.
package stats
