// Package notify sends asynchronous HTTP notifications for toggle events.
// The primary use case is ntfy.sh, but any HTTP webhook works.
package notify

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/LISSConsulting/flapper/internal/toggle"
)

// Notifier posts plain-text HTTP notifications for selected loop events.
type Notifier struct {
	url      string
	title    string
	onToggle bool
	onExit   bool
	client   *http.Client

	inflight sync.WaitGroup
}

// New creates a Notifier. title is used as the X-Title header; if empty,
// "flapper" is used instead.
func New(notifURL, title string, onToggle, onExit bool) *Notifier {
	if title == "" {
		title = "flapper"
	}
	return &Notifier{
		url:      notifURL,
		title:    title,
		onToggle: onToggle,
		onExit:   onExit,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Hook is a toggle.Loop.Hook-compatible function. It fires asynchronous
// POSTs for events that match the configured notification flags. Call
// Flush before the process exits so exit notifications are delivered.
func (n *Notifier) Hook(entry toggle.LogEntry) {
	switch entry.Kind {
	case toggle.LogSet, toggle.LogForceUp:
		if n.onToggle {
			n.send(body(entry))
		}
	case toggle.LogError, toggle.LogDone, toggle.LogStopped:
		if n.onExit {
			n.send(body(entry))
		}
	}
}

// Flush waits up to timeout for in-flight POSTs to finish. It reports
// whether they all finished in time.
func (n *Notifier) Flush(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (n *Notifier) send(message string) {
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		n.post(message)
	}()
}

// body prefixes the message with the interface name when known.
func body(entry toggle.LogEntry) string {
	if entry.Interface == "" {
		return entry.Message
	}
	return entry.Interface + ": " + entry.Message
}

// post sends a plain-text POST to the configured URL. Errors are silently
// discarded so notification failures never interrupt the loop.
func (n *Notifier) post(message string) {
	req, err := http.NewRequest(http.MethodPost, n.url, strings.NewReader(message))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", n.title)
	resp, err := n.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
