package durations

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrUndecodable = errors.New("unrecognized text encoding")

// Encodings tried in order. UTF-16 variants require their BOM, which keeps
// them from accidentally matching UTF-8 input.
var sourceEncodings = []encoding.Encoding{
	unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM),
	unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM),
	unicode.UTF8BOM,
}

var knownBOMs = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFF, 0xFE},
	{0xFE, 0xFF},
}

// decodeText converts a raw duration source to a UTF-8 string, accepting the
// byte-order-marked encodings Windows tools commonly export. As a last resort
// any known BOM is stripped manually and the rest is taken as-is if valid.
func decodeText(raw []byte) (string, error) {
	for _, enc := range sourceEncodings {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			continue
		}
		if text := string(decoded); usable(text) {
			return text, nil
		}
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	for _, bom := range knownBOMs {
		if stripped, found := bytes.CutPrefix(raw, bom); found && utf8.Valid(stripped) {
			return string(stripped), nil
		}
	}

	return "", ErrUndecodable
}

func usable(text string) bool {
	return utf8.ValidString(text) && !strings.ContainsRune(text, 0)
}
