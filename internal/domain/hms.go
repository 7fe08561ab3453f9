package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EditWidth is the number of digits in an edit buffer (HHMMSS)
const EditWidth = 6

var ErrInvalidDigits = errors.New("input must contain only digits")

// PackedTime is a duration written as HHMMSS digits, e.g. 10203 = 1h 2m 3s.
// Minute and second groups are not range-checked.
type PackedTime int64

// UnmarshalYAML reads the scalar as decimal digits so that a zero-led value
// such as 000500 is five minutes rather than an octal number
func (p *PackedTime) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: packed time must be a scalar", node.Line)
	}
	v, err := ParsePacked(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = v
	return nil
}

// EditText is a zero-padded 6 digit HHMMSS buffer
type EditText string

// PackedToSeconds converts packed HHMMSS into seconds.
// Minute/second groups >= 60 are multiplied literally: 90 -> 90s, 9000 -> 5400s.
func PackedToSeconds(packed PackedTime) int64 {
	p := int64(packed)
	hours := p / 10000
	minutes := (p % 10000) / 100
	seconds := p % 100
	return hours*3600 + minutes*60 + seconds
}

// hmsParts splits total seconds into hour, minute and second strings.
// Negative totals are split on their absolute value.
func hmsParts(total int64, zeroPadded bool) (neg bool, h, m, s string) {
	if total < 0 {
		neg = true
		total = -total
	}
	part := func(v int64) string {
		if zeroPadded && v < 10 {
			return "0" + strconv.FormatInt(v, 10)
		}
		return strconv.FormatInt(v, 10)
	}
	return neg, part(total / 3600), part((total % 3600) / 60), part(total % 60)
}

// SecondsToPacked converts seconds into packed HHMMSS by concatenating the
// hour, minute and second digits. Without padding a zero hour drops out and
// single digit fields collapse, so only the padded form round-trips.
func SecondsToPacked(total int64, zeroPadded bool) PackedTime {
	neg, h, m, s := hmsParts(total, zeroPadded)
	v, err := strconv.ParseInt(h+m+s, 10, 64)
	if err != nil {
		// only reachable for hour counts beyond int64 digits
		return 0
	}
	if neg {
		v = -v
	}
	return PackedTime(v)
}

// FormatSeconds renders seconds with unit suffixes, e.g. "1h1m1s" or "59s".
// Zero hour and minute segments are left out unless zeroPadded is set, in
// which case every segment is printed ("00h05m00s").
func FormatSeconds(total int64, zeroPadded bool) string {
	neg, h, m, s := hmsParts(total, zeroPadded)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if zeroPadded || h != "0" {
		b.WriteString(h + "h")
	}
	if zeroPadded || m != "0" {
		b.WriteString(m + "m")
	}
	b.WriteString(s + "s")
	return b.String()
}

// PadTo6Digits left-pads value with zeros to six characters. Longer values
// keep their rightmost six characters, so the most recent digit wins.
func PadTo6Digits(value string) EditText {
	if n := len(value); n >= EditWidth {
		return EditText(value[n-EditWidth:])
	}
	return EditText(strings.Repeat("0", EditWidth-len(value)) + value)
}

// PadPackedTo6Digits is PadTo6Digits for a packed value
func PadPackedTo6Digits(p PackedTime) EditText {
	return PadTo6Digits(strconv.FormatInt(int64(p), 10))
}

// FormatWithUnitLabels renders a buffer as "HHhMMmSSs" without dropping zero
// segments. Used for the live editing display.
func FormatWithUnitLabels(buf EditText) string {
	b := PadTo6Digits(string(buf))
	return fmt.Sprintf("%sh%sm%ss", b[0:2], b[2:4], b[4:6])
}

// Packed returns the buffer as a packed value
func (t EditText) Packed() PackedTime {
	p, err := ParsePacked(string(t))
	if err != nil {
		return 0
	}
	return p
}

// ParsePacked parses a string of digits into a packed value
func ParsePacked(s string) (PackedTime, error) {
	s = strings.TrimSpace(s)
	if s == "" || !IsDigits(s) {
		return 0, fmt.Errorf("invalid packed time %q: %w", s, ErrInvalidDigits)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid packed time %q: %w", s, err)
	}
	return PackedTime(v), nil
}

// IsDigits reports whether s contains only ASCII digits. The empty string counts.
func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
