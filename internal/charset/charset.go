// Package charset detects the encoding of captured command output and
// transcodes it to a canonical encoding.
//
// Git passes file names and commit text through as raw bytes, so output
// captured from it is not guaranteed to be UTF-8. Normalize never fails:
// invalid or unmappable sequences are replaced.
package charset

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Canonical encoding names.
const (
	// UTF8 is the default normalization target.
	UTF8 = "UTF-8"

	// Binary is reported when no text encoding could be determined.
	Binary = "BINARY"
)

// Replacement is substituted for sequences that cannot be decoded.
const Replacement = "�"

// detectorAliases maps names reported by the detector that the IANA index
// spells differently.
//
//nolint:gochecknoglobals // Read-only lookup table
var detectorAliases = map[string]string{
	"GB-18030":   "GB18030",
	"IBM420_rtl": "IBM420",
	"IBM420_ltr": "IBM420",
	"IBM424_rtl": "IBM424",
	"IBM424_ltr": "IBM424",
}

// Detect returns the most likely encoding name of data, or Binary when the
// detector has no answer.
func Detect(data []byte) string {
	if len(data) == 0 {
		return UTF8
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return Binary
	}
	return result.Charset
}

// Normalize returns s transcoded to the target encoding. An empty target
// means UTF-8. Input already valid in the target is returned unchanged.
func Normalize(s, target string) string {
	if target == "" {
		target = UTF8
	}
	targetEnc := lookup(target)
	isUTF8Target := targetEnc == nil || targetEnc == unicode.UTF8

	if isUTF8Target && utf8.ValidString(s) {
		return s
	}

	decoded := toUTF8(s)
	if isUTF8Target {
		return decoded
	}

	out, err := encoding.ReplaceUnsupported(targetEnc.NewEncoder()).String(decoded)
	if err != nil {
		return decoded
	}
	return out
}

// NormalizeLines normalizes s one line at a time so a single badly encoded
// line does not skew detection for the rest. Line terminators are kept.
func NormalizeLines(s, target string) string {
	if s == "" {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	b.Grow(len(s))
	for _, line := range lines {
		b.WriteString(Normalize(line, target))
	}
	return b.String()
}

// toUTF8 decodes s from its detected encoding into valid UTF-8.
func toUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	name := Detect([]byte(s))
	enc := lookup(name)
	if enc == nil || enc == unicode.UTF8 {
		return strings.ToValidUTF8(s, Replacement)
	}

	decoded, err := enc.NewDecoder().String(s)
	if err != nil {
		return strings.ToValidUTF8(s, Replacement)
	}
	return strings.ToValidUTF8(decoded, Replacement)
}

// lookup resolves an encoding name, returning nil when it is unknown,
// unsupported, or Binary.
func lookup(name string) encoding.Encoding {
	if name == "" || name == Binary {
		return nil
	}
	if alias, ok := detectorAliases[name]; ok {
		name = alias
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil
	}
	return enc
}
