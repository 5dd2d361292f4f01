package server

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ConsoleMessage is one line of render output shown in the browser console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger is the core.Logger for a single web render. Every message goes to the
// server log tagged with the render ID and, when there is room, to the console channel.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	serverLog   *log.Logger
	dropped     atomic.Int64
}

// NewWebLogger creates the logger for renderID. consoleChan may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	short := renderID
	if len(short) > 8 {
		short = short[:8]
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		serverLog:   log.New(os.Stderr, "render "+short+" ", log.LstdFlags),
	}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.serverLog.Print(strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}

	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     messageLevel(message),
	}
	select {
	case wl.consoleChan <- msg:
	default:
		// never block the render on a slow console
		wl.dropped.Add(1)
	}
}

// Dropped returns how many messages did not fit in the console channel
func (wl *WebLogger) Dropped() int64 {
	return wl.dropped.Load()
}

// messageLevel classifies renderer output for console coloring
func messageLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "failed"):
		return "error"
	case strings.Contains(lower, "stopped"), strings.Contains(lower, "cancel"):
		return "warning"
	}
	return "info"
}
