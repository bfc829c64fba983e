package logger

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// Prefixer writes messages as "[<program>] <message>" lines.
// It is safe for concurrent use. Prefixers derived with WithWriter share one
// lock, so lines from parallel task steps never interleave.
type Prefixer struct {
	mu     *sync.Mutex
	w      io.Writer
	prefix string
}

// NewPrefixer returns a Prefixer for the base name of program.
func NewPrefixer(w io.Writer, program string) *Prefixer {
	return &Prefixer{
		mu:     &sync.Mutex{},
		w:      w,
		prefix: "[" + filepath.Base(program) + "] ",
	}
}

// WithWriter returns a Prefixer writing to w with the same prefix and lock as p.
func (p *Prefixer) WithWriter(w io.Writer) *Prefixer {
	return &Prefixer{mu: p.mu, w: w, prefix: p.prefix}
}

// Say writes msg, prefixing every line of it.
func (p *Prefixer) Say(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, line := range strings.Split(strings.TrimRight(msg, "\n"), "\n") {
		if _, err := io.WriteString(p.w, p.prefix+line+"\n"); err != nil {
			Debug("Failed to write log line", "err", err)
			return
		}
	}
}

// Copy reads r line by line and writes each line prefixed.
// Read errors are logged and dropped.
func (p *Prefixer) Copy(r io.Reader) {
	if r == nil {
		return
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.Say(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		Debug("Failed to read log input", "err", err)
	}
}

// Log writes args joined by spaces, or copies stdin when args is empty.
// It never fails; logging must not change the outcome of a task.
func (p *Prefixer) Log(args []string, stdin io.Reader) {
	if len(args) == 0 {
		p.Copy(stdin)
		return
	}
	p.Say(strings.Join(args, " "))
}
