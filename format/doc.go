// Package format defines the framing shared by every score file.
//
// A score block looks like this in text mode:
//
//	SCORES_TXT_BEGIN_0 <group> <count> <arity> <metric>
//	<record 1>
//	...
//	SCORES_TXT_END_0
//
// Binary blocks use the SCORES_BIN_* tags and store the records back-to-back
// between the two lines. Record bodies are owned by the record type; this
// package only knows the header and footer lines.
//
// # Leniency
//
// The parser accepts everything the legacy toolkit accepted:
//
//   - tags are matched as prefixes at position 0, so SCORES_TXT_BEGIN_ and
//     SCORES_TXT_BEGIN_0 both open a text block
//   - runs of the delimiter collapse and tokens after the fifth are ignored
//   - count and arity are parsed like C atoi: garbage becomes 0
//   - an empty footer line is accepted, and the footer mode is not compared
//     with the header mode
package format
