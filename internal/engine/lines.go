package engine

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newTextReader decodes r as UTF-8, replacing every invalid byte sequence with
// U+FFFD. A leading UTF-8 byte order mark is dropped.
func newTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}

// eachLine calls fn for every line of r with its 1-based number. "\n", "\r\n"
// and a lone "\r" all end a line; terminators are not passed to fn. Lines
// read before a read error are still delivered.
func eachLine(r io.Reader, fn func(n int, line string)) error {
	br := bufio.NewReader(newTextReader(r))
	n := 0
	for {
		chunk, err := br.ReadString('\n')
		if chunk != "" {
			chunk = strings.TrimSuffix(chunk, "\n")
			chunk = strings.TrimSuffix(chunk, "\r")
			if strings.IndexByte(chunk, '\r') >= 0 {
				for _, part := range strings.Split(chunk, "\r") {
					n++
					fn(n, part)
				}
			} else {
				n++
				fn(n, chunk)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
