package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// StreamingDecoder converts a token stream to text incrementally, only
// ever emitting complete valid UTF-8. A code point split across token
// boundaries stays buffered until its remaining bytes arrive. Calls are
// strictly sequential in token-arrival order; the decoder does nothing
// concurrently.
type StreamingDecoder struct {
	t   *Tokenizer
	buf []byte
}

// StreamingDecoder starts a new decode session.
func (t *Tokenizer) StreamingDecoder() *StreamingDecoder {
	return &StreamingDecoder{t: t}
}

// AddToken decodes id, appends its bytes to the pending buffer and returns
// whatever text completed, possibly "". Complete-but-invalid sequences are
// emitted as U+FFFD; an incomplete trailing sequence stays buffered.
func (d *StreamingDecoder) AddToken(id int32) (string, error) {
	value, err := d.t.decodeToken(id)
	if err != nil {
		return "", err
	}

	d.buf = append(d.buf, value...)
	return d.drain(), nil
}

// Flush ends the session. A retained incomplete sequence is emitted as a
// single U+FFFD rather than silently dropped.
func (d *StreamingDecoder) Flush() string {
	if len(d.buf) == 0 {
		return ""
	}

	d.buf = d.buf[:0]
	return string(utf8.RuneError)
}

func (d *StreamingDecoder) drain() string {
	var sb strings.Builder
	var n int
	for n < len(d.buf) {
		r, size := utf8.DecodeRune(d.buf[n:])
		if r == utf8.RuneError && size <= 1 {
			if incompletePrefix(d.buf[n:]) {
				break
			}

			// invalid but complete, nothing more can repair it
			sb.WriteRune(utf8.RuneError)
			n++
			continue
		}

		sb.Write(d.buf[n : n+size])
		n += size
	}

	d.buf = append(d.buf[:0], d.buf[n:]...)
	return sb.String()
}

// incompletePrefix reports whether b is a proper prefix of one multi-byte
// UTF-8 encoding, i.e. more continuation bytes could still complete it.
func incompletePrefix(b []byte) bool {
	if len(b) == 0 || len(b) >= utf8.UTFMax {
		return false
	}

	var n int
	switch {
	case b[0]&0xe0 == 0xc0:
		n = 2
	case b[0]&0xf0 == 0xe0:
		n = 3
	case b[0]&0xf8 == 0xf0:
		n = 4
	default:
		return false
	}

	if len(b) >= n {
		return false
	}

	for _, c := range b[1:] {
		if c&0xc0 != 0x80 {
			return false
		}
	}

	return true
}
