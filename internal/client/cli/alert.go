package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// terminalAlerter renders modal alerts as a bracketed title line. Screens
// raise alerts from task goroutines, so writes are serialised.
type terminalAlerter struct {
	mu sync.Mutex
	w  io.Writer
}

func (t *terminalAlerter) Alert(title, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[%s] %s\n", title, message)
}

// terminalConfirmer asks a yes/no question on the terminal. Anything other
// than y, yes or the action label declines.
type terminalConfirmer struct {
	reader *bufio.Reader
	w      io.Writer
}

func (t *terminalConfirmer) Confirm(title, message, confirmLabel string) bool {
	prompt := fmt.Sprintf("[%s] %s\n%s? [y/N]", title, message, confirmLabel)
	answer, err := GetSimpleText(t.reader, prompt, t.w)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes", strings.ToLower(confirmLabel):
		return true
	default:
		return false
	}
}
