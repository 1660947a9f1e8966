package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Match prefixes for the four sentinel lines.
const (
	TextBeginTag   = "SCORES_TXT_BEGIN_"
	TextEndTag     = "SCORES_TXT_END_"
	BinaryBeginTag = "SCORES_BIN_BEGIN_"
	BinaryEndTag   = "SCORES_BIN_END_"
)

// Version is appended to the tags when writing.
const Version = "0"

// Delimiter separates header tokens.
const Delimiter = " "

// HeaderFields is the number of positional header tokens.
const HeaderFields = 5

var (
	// ErrHeaderFormat is returned when a header line does not start with a begin tag
	// or carries fewer than HeaderFields tokens.
	ErrHeaderFormat = errors.New("format: wrong header")

	// ErrFooterFormat is returned when a non-empty footer line does not start with an end tag.
	ErrFooterFormat = errors.New("format: wrong footer")

	// ErrHeaderField is returned when a header field cannot be written as a
	// single token: it is empty or contains the delimiter or a line break.
	ErrHeaderField = errors.New("format: header field not writable")
)

// Mode selects the body encoding of a block.
type Mode uint8

const (
	// Text blocks carry one record per line.
	Text Mode = iota
	// Binary blocks carry raw records without separators.
	Binary
)

func (m Mode) String() string {
	switch m {
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ModeOf maps the boolean binary flag used by the save API to a Mode.
func ModeOf(binary bool) Mode {
	if binary {
		return Binary
	}
	return Text
}

// BeginTag returns the tag written on header lines.
func (m Mode) BeginTag() string {
	if m == Binary {
		return BinaryBeginTag + Version
	}
	return TextBeginTag + Version
}

// EndTag returns the tag written on footer lines.
func (m Mode) EndTag() string {
	if m == Binary {
		return BinaryEndTag + Version
	}
	return TextEndTag + Version
}

// Header is the structural metadata of one block.
type Header struct {
	Mode       Mode
	GroupIndex string
	Count      int
	Arity      int
	MetricType string
}

// ValidateField reports whether s survives a write/parse cycle as one
// header token.
func ValidateField(name, s string) error {
	switch {
	case s == "":
		return fmt.Errorf("%w: %s is empty", ErrHeaderField, name)
	case strings.Contains(s, Delimiter):
		return fmt.Errorf("%w: %s %q contains the delimiter", ErrHeaderField, name, s)
	case strings.ContainsAny(s, "\r\n"):
		return fmt.Errorf("%w: %s %q contains a line break", ErrHeaderField, name, s)
	}
	return nil
}

// Validate checks that String would produce a line ParseHeader reads back
// unchanged.
func (h Header) Validate() error {
	if err := ValidateField("group index", h.GroupIndex); err != nil {
		return err
	}
	return ValidateField("metric type", h.MetricType)
}

// String renders the header line without the trailing newline.
func (h Header) String() string {
	return strings.Join([]string{
		h.Mode.BeginTag(),
		h.GroupIndex,
		strconv.Itoa(h.Count),
		strconv.Itoa(h.Arity),
		h.MetricType,
	}, Delimiter)
}

// Tokenize splits line on Delimiter, skipping empty tokens.
func Tokenize(line string) []string {
	var tokens []string
	for line != "" {
		i := strings.Index(line, Delimiter)
		if i < 0 {
			tokens = append(tokens, line)
			break
		}
		if i > 0 {
			tokens = append(tokens, line[:i])
		}
		line = line[i+len(Delimiter):]
	}
	return tokens
}

// DetectMode reports the mode selected by the begin tag at position 0.
// The text tag is checked first.
func DetectMode(line string) (Mode, bool) {
	switch {
	case strings.HasPrefix(line, TextBeginTag):
		return Text, true
	case strings.HasPrefix(line, BinaryBeginTag):
		return Binary, true
	default:
		return Text, false
	}
}

// ParseHeader parses a non-empty header line.
// Positional order: tag, group index, record count, arity, metric type.
func ParseHeader(line string) (Header, error) {
	mode, ok := DetectMode(line)
	if !ok {
		return Header{}, fmt.Errorf("%w: missing begin tag in %q", ErrHeaderFormat, line)
	}

	tokens := Tokenize(line)
	if len(tokens) < HeaderFields {
		return Header{}, fmt.Errorf("%w: expected %d fields, got %d in %q", ErrHeaderFormat, HeaderFields, len(tokens), line)
	}

	return Header{
		Mode:       mode,
		GroupIndex: tokens[1],
		Count:      Atoi(tokens[2]),
		Arity:      Atoi(tokens[3]),
		MetricType: tokens[4],
	}, nil
}

// CheckFooter validates a footer line. An empty line is accepted and reported
// with ok == false. The returned mode is informational only.
func CheckFooter(line string) (mode Mode, ok bool, err error) {
	switch {
	case line == "":
		return Text, false, nil
	case strings.HasPrefix(line, TextEndTag):
		return Text, true, nil
	case strings.HasPrefix(line, BinaryEndTag):
		return Binary, true, nil
	default:
		return Text, false, fmt.Errorf("%w: missing end tag in %q", ErrFooterFormat, line)
	}
}

// Atoi parses a leading decimal integer the way C atoi does: leading spaces
// and an optional sign are accepted, the scan stops at the first non-digit and
// an input without digits yields 0. Negative results are clamped to 0 since
// counts and arities cannot be negative.
func Atoi(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > maxCount {
			n = maxCount
		}
	}
	if neg {
		return 0
	}
	return n
}

const maxCount = 1<<31 - 1
