package parser

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var charsets = map[string]encoding.Encoding{
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin9":       charmap.ISO8859_15,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// decoderFor returns a transformer that decodes the named charset to UTF-8.
// A leading byte order mark is honoured and removed whatever the charset.
func decoderFor(name string) (transform.Transformer, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch key {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}
	enc, ok := charsets[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}
