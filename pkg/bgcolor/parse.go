package bgcolor

import (
	"strconv"
	"strings"

	"github.com/Fepozopo/bgone/pkg/bgerr"
)

// ParseColor accepts a hex color, case-insensitive, with or without a
// leading '#', in either shorthand (3 digit, e.g. "f00") or full (6 digit,
// e.g. "ff0000") form. Shorthand "abc" expands to "aabbcc". Any other
// length or a non-hex character fails with bgerr.ErrInvalidColor.
//
// The sentinel string "auto" is never special-cased here: it is rejected
// the same as any other non-hex input (its 'u'/'t'/'o' characters are not
// valid hex digits). Callers that support the AUTO basis sentinel must
// intercept the literal "auto" before calling ParseColor.
func ParseColor(s string) (RGB, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 3 && len(s) != 6 {
		return RGB{}, bgerr.Wrapf(bgerr.ErrInvalidColor, "unsupported hex color length in %q", orig)
	}
	if len(s) == 3 {
		var expanded strings.Builder
		for _, c := range s {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		s = expanded.String()
	}
	s = strings.ToLower(s)
	for _, c := range s {
		if !isHexDigit(c) {
			return RGB{}, bgerr.Wrapf(bgerr.ErrInvalidColor, "non-hex character in %q", orig)
		}
	}
	r, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return RGB{}, bgerr.Wrapf(bgerr.ErrInvalidColor, "invalid red channel in %q", orig)
	}
	g, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return RGB{}, bgerr.Wrapf(bgerr.ErrInvalidColor, "invalid green channel in %q", orig)
	}
	b, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return RGB{}, bgerr.Wrapf(bgerr.ErrInvalidColor, "invalid blue channel in %q", orig)
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// ToHex renders c as a lowercase "#rrggbb" string.
func ToHex(c RGB) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 7)
	buf[0] = '#'
	buf[1] = hexDigits[c.R>>4]
	buf[2] = hexDigits[c.R&0xf]
	buf[3] = hexDigits[c.G>>4]
	buf[4] = hexDigits[c.G&0xf]
	buf[5] = hexDigits[c.B>>4]
	buf[6] = hexDigits[c.B&0xf]
	return string(buf)
}
