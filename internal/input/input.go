// Package input reads parser input with a size cap and optional transcoding
// from a legacy character set to UTF-8.
package input

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrInputTooLarge is returned when the input exceeds the configured limit.
var ErrInputTooLarge = errors.New("input too large")

// ReadAll reads r to the end. At most limit bytes are accepted; a limit of
// zero or less means no limit. A non-empty charset other than UTF-8 names
// an IANA character set that the input is decoded from.
func ReadAll(r io.Reader, limit int64, charset string) ([]byte, error) {
	dec, err := Decoder(charset)
	if err != nil {
		return nil, err
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}

	if dec == nil {
		return data, nil
	}
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s input: %w", charset, err)
	}
	return out, nil
}

// Decoder returns the decoder for an IANA charset name, or nil when the
// input is already UTF-8.
func Decoder(charset string) (*encoding.Decoder, error) {
	if isUTF8(charset) {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", charset)
	}
	return enc.NewDecoder(), nil
}

func isUTF8(charset string) bool {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}
