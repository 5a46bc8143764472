package callgraphapi

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decodeCacheSize bounds how many distinct byte strings a Decoder
// remembers the decoded form of — log display code re-decodes the same
// handful of recurring lines (banners, repeated phone numbers) far more
// often than it sees new ones.
const decodeCacheSize = 4096

// Decoder turns raw log bytes into displayable text using a configured
// encoding, lazily and with replacement for invalid sequences rather
// than failing — a viewer must always be able to show something for
// every line, even a line captured with the wrong encoding configured.
type Decoder struct {
	dec   *encoding.Decoder
	cache *lru.Cache[string, string]
}

// NewDecoder builds a Decoder for the named encoding. Unrecognized or
// empty names fall back to UTF-8, which passes already-valid UTF-8 and
// ASCII text through unchanged.
func NewDecoder(name string) *Decoder {
	var enc encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin1", "iso-8859-1", "iso8859-1":
		enc = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	case "utf-16le":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-16be":
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	default:
		enc = unicode.UTF8
	}

	cache, _ := lru.New[string, string](decodeCacheSize)
	return &Decoder{dec: enc.NewDecoder(), cache: cache}
}

// Decode returns line as displayable text, decoded once and cached
// thereafter. Invalid byte sequences are replaced rather than rejected.
func (d *Decoder) Decode(line []byte) string {
	key := string(line)
	if cached, ok := d.cache.Get(key); ok {
		return cached
	}

	out, err := d.dec.Bytes(line)
	var text string
	if err != nil {
		text = key
	} else {
		text = string(out)
	}
	d.cache.Add(key, text)
	return text
}
