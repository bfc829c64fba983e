package taskfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	errUtils "github.com/cloudposse/dispatch/errors"
)

// HelpLines returns every line of r that starts with marker, with the marker
// and one following space removed, in file order.
func HelpLines(r io.Reader, marker string) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line, ok := strings.CutPrefix(scanner.Text(), marker)
		if !ok {
			continue
		}
		lines = append(lines, strings.TrimPrefix(line, " "))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadHelp returns the help lines embedded in the Taskfile at path.
func ReadHelp(path, marker string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errUtils.Build(errUtils.ErrTaskfileNotFound).WithContext("path", path).Err()
		}
		return nil, errUtils.Build(errUtils.ErrReadTaskfile).WithCause(err).WithContext("path", path).Err()
	}
	defer f.Close()

	lines, err := HelpLines(f, marker)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrReadTaskfile).WithCause(err).WithContext("path", path).Err()
	}
	return lines, nil
}
