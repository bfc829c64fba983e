package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixer_Say(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrefixer(&buf, "/usr/local/bin/dispatch")

	p.Say("hello")

	assert.Equal(t, "[dispatch] hello\n", buf.String())
}

func TestPrefixer_SayMultiline(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrefixer(&buf, "dispatch")

	p.Say("one\ntwo\n")

	assert.Equal(t, "[dispatch] one\n[dispatch] two\n", buf.String())
}

func TestPrefixer_Log(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		expected string
	}{
		{
			name:     "message arguments are joined",
			args:     []string{"building", "wheel"},
			expected: "[taskfile] building wheel\n",
		},
		{
			name:     "no arguments reads stdin",
			stdin:    "first\nsecond\n",
			expected: "[taskfile] first\n[taskfile] second\n",
		},
		{
			name:     "no arguments and empty stdin writes nothing",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrefixer(&buf, "./taskfile")

			p.Log(tt.args, strings.NewReader(tt.stdin))

			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestPrefixer_CopyNilReader(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrefixer(&buf, "dispatch")

	p.Copy(nil)

	assert.Empty(t, buf.String())
}

func TestPrefixer_ConcurrentLinesStayWhole(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrefixer(&buf, "dispatch")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Say("line")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, "[dispatch] line", line)
	}
}

func TestPrefixer_WithWriter(t *testing.T) {
	var first, second bytes.Buffer
	p := NewPrefixer(&first, "/srv/Taskfile.yaml")

	p.WithWriter(&second).Say("moved")

	assert.Empty(t, first.String())
	assert.Equal(t, "[Taskfile.yaml] moved\n", second.String())
}

func TestPrefixer_WithWriterSharesLock(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrefixer(&buf, "dispatch")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.WithWriter(&buf).Say("line")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, "[dispatch] line", line)
	}
}
