package ignore

import (
	"bufio"
	"os"
	"strings"
)

// Append adds pattern to the ignore file at path, creating the file if
// needed. A pattern already present is not written again.
func Append(path, pattern string) error {
	var lastByte byte = '\n'
	if f, err := os.Open(path); err == nil {
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) == pattern {
				_ = f.Close()
				return nil
			}
		}
		_ = f.Close()
		if b, err := os.ReadFile(path); err == nil && len(b) > 0 {
			lastByte = b[len(b)-1]
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if lastByte != '\n' {
		pattern = "\n" + pattern
	}
	_, err = f.WriteString(pattern + "\n")
	return err
}
