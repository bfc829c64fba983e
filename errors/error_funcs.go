package errors

import (
	"io"
	"os"
)

// OsExit is a variable for testing, so we can mock os.Exit.
var OsExit = os.Exit

// Print writes the formatted error to w followed by a newline.
// Nothing is written for a nil error.
func Print(w io.Writer, err error, config FormatterConfig) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, Format(err, config)+newline)
}
