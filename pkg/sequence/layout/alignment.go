package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlignment is returned for an alignment outside the closed set.
var ErrUnknownAlignment = errors.New("unknown label alignment")

// Alignment selects where a message label sits horizontally.
type Alignment int

const (
	// AlignSource places the label next to the source lifeline.
	AlignSource Alignment = iota
	// AlignSourceCenter centers the label between the source lifeline and
	// its neighbour in the message's direction.
	AlignSourceCenter
	// AlignCenter centers the label between source and target.
	AlignCenter
)

var alignmentNames = [...]string{
	AlignSource:       "source",
	AlignSourceCenter: "source_center",
	AlignCenter:       "center",
}

// Alignments lists the accepted alignment names.
func Alignments() []string {
	return append([]string(nil), alignmentNames[:]...)
}

func (a Alignment) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignmentNames[a]
}

// Valid reports whether a is one of the declared alignments.
func (a Alignment) Valid() bool {
	return a >= 0 && int(a) < len(alignmentNames)
}

// ParseAlignment parses an alignment name. Matching ignores case and
// accepts '-' in place of '_'. The empty string yields
// [DefaultLabelAlignment].
func ParseAlignment(s string) (Alignment, error) {
	if s == "" {
		return DefaultLabelAlignment, nil
	}
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range alignmentNames {
		if name == norm {
			return Alignment(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (must be one of: %s)", ErrUnknownAlignment, s, strings.Join(Alignments(), ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlignment, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(b []byte) error {
	v, err := ParseAlignment(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
