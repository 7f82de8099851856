package report

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlight colours a single source line using the lexer registered for the
// file name. Unknown file types and colourless output return src unchanged.
func highlight(path, src string, noColor bool) string {
	if noColor {
		return src
	}
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return src
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return src
	}
	var b strings.Builder
	if err := formatters.TTY256.Format(&b, styles.Get("monokai"), it); err != nil {
		return src
	}
	return strings.TrimRight(b.String(), "\n")
}
