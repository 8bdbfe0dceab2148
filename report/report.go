// Package report provides the tool-level reporting handle injected into the
// discovery and checking layers. Reporters carry diagnostics about the run
// itself, never style diagnostics.
package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Reporter is the observability handle passed to every layer that needs to
// surface tool-level events.
type Reporter interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Console writes timestamped, level-tagged messages to a writer, coloring
// the level tag according to the global color settings. Safe for concurrent
// use.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	clock func() time.Time
}

// NewConsole returns a Console reporting to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, clock: time.Now}
}

var (
	infoTag    = color.New(color.FgCyan)
	warningTag = color.New(color.FgYellow)
	errorTag   = color.New(color.FgRed)
)

func (c *Console) Infof(format string, args ...any) {
	c.log(infoTag.Sprint("INFO"), format, args...)
}

func (c *Console) Warnf(format string, args ...any) {
	c.log(warningTag.Sprint("WARNING"), format, args...)
}

func (c *Console) Errorf(format string, args ...any) {
	c.log(errorTag.Sprint("ERROR"), format, args...)
}

func (c *Console) log(tag string, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	timestamp := c.clock().Format("2006-01-02 15:04:05")
	fmt.Fprintf(c.out, "%s | %s: %s\n", timestamp, tag, fmt.Sprintf(format, args...))
}

// Nop discards every message.
type Nop struct{}

func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}

// Event is one message recorded by Capture.
type Event struct {
	Level   string
	Message string
}

// Capture records messages for inspection in tests.
type Capture struct {
	mu     sync.Mutex
	events []Event
}

func (c *Capture) Infof(format string, args ...any)  { c.record("INFO", format, args...) }
func (c *Capture) Warnf(format string, args ...any)  { c.record("WARNING", format, args...) }
func (c *Capture) Errorf(format string, args ...any) { c.record("ERROR", format, args...) }

func (c *Capture) record(level, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Events returns the recorded messages in order.
func (c *Capture) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}
