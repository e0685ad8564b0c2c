package extractor

import (
	"html"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxEscapeDepth bounds how many nested backslash layers are peeled off.
const maxEscapeDepth = 3

// Sanitize turns a raw matched substring into a clean absolute URL.
//
// Decoding runs in a fixed order: backslash and \uXXXX escapes, then
// percent-encoding, then HTML entities. If the result is not an absolute
// http(s) URL, a manual substitution chain is tried on the raw input
// before the candidate is discarded.
func Sanitize(raw string) (string, bool) {
	raw = strings.Trim(strings.TrimSpace(raw), `"'`)
	if raw == "" {
		return "", false
	}

	s := raw
	for i := 0; i < maxEscapeDepth && strings.Contains(s, `\`); i++ {
		next := unescapeBackslashes(s)
		if next == s {
			break
		}
		s = next
	}
	s = percentDecode(s)
	s = html.UnescapeString(s)
	if isAbsoluteURL(s) {
		return s, true
	}

	s = fallbackReplacer.Replace(raw)
	s = strings.ReplaceAll(s, `\`, "")
	s = html.UnescapeString(s)
	if isAbsoluteURL(s) {
		return s, true
	}
	return "", false
}

var fallbackReplacer = strings.NewReplacer(
	`&amp;`, `&`,
	`\/`, `/`,
	`u0025`, `%`,
	`u0026`, `&`,
	`%3A`, `:`,
	`%3a`, `:`,
	`%2F`, `/`,
	`%2f`, `/`,
)

// unescapeBackslashes resolves one layer of JSON-style escapes. Unknown
// escapes keep the escaped character and drop the backslash.
func unescapeBackslashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch next {
		case 'u':
			if r, n, ok := decodeUnicodeEscape(s[i:]); ok {
				b.WriteRune(r)
				i += n - 1
				continue
			}
			b.WriteByte('u')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			// \/, \\, \" and anything else: keep the escaped byte.
			b.WriteByte(next)
		}
		i++
	}
	return b.String()
}

// decodeUnicodeEscape decodes \uXXXX, joining UTF-16 surrogate pairs.
// It returns the rune and the number of bytes consumed.
func decodeUnicodeEscape(s string) (rune, int, bool) {
	if len(s) < 6 || s[0] != '\\' || s[1] != 'u' {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	r := rune(v)
	if r >= 0xD800 && r < 0xDC00 {
		if low, n, ok := decodeUnicodeEscape(s[6:]); ok && n == 6 && low >= 0xDC00 && low < 0xE000 {
			return (r-0xD800)<<10 + (low - 0xDC00) + 0x10000, 12, true
		}
		return utf8.RuneError, 6, true
	}
	return r, 6, true
}

// percentDecode decodes %XX sequences without turning '+' into a space.
// Malformed input is returned unchanged.
func percentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	d, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return d
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "https://") && !strings.HasPrefix(lower, "http://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}
