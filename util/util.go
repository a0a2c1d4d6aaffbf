// Package util holds small helpers shared by the CLI and the fetch pipeline.
package util

import (
	"fmt"
	"os"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/kitsufix/kitsufix/filesystem"
	"github.com/samber/lo"
	"golang.org/x/term"
)

// Quantify returns "1 file" or "2 files".
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize upper-cases the first byte of s.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintErasable prints msg without a newline and returns a func that wipes it.
// Outside a terminal nothing is printed, so piped output stays clean.
func PrintErasable(msg string) (eraser func()) {
	if !IsTerminal() {
		return func() {}
	}

	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore calls f and drops its error.
func Ignore(f func() error) {
	_ = f()
}

// Closest returns the candidate with the smallest edit distance to target.
func Closest(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return lo.MinBy(candidates, func(a, b string) bool {
		return levenshtein.Distance(target, a) < levenshtein.Distance(target, b)
	})
}

// Delete removes a file or a whole directory through the filesystem backend.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
