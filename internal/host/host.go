// Package host models the chat-platform surface the client runs inside.
// Only three effects are consumed: a readiness signal, a request to expand
// the UI, and the opaque per-session init-data blob.
package host

import "sync"

// Platform is the host surface. InitData is forwarded verbatim and never
// parsed by the client.
type Platform interface {
	Ready()
	Expand()
	InitData() string
}

// Options configure a launcher-provided platform.
type Options struct {
	// Present reports whether the client runs inside the host at all.
	Present bool
	// InitData is the session blob handed over by the host launcher.
	InitData string
	// OnReady and OnExpand observe the corresponding signals.
	OnReady  func()
	OnExpand func()
}

// Launcher is a Platform backed by values the launcher passed on the
// command line or through the environment.
type Launcher struct {
	mu       sync.Mutex
	initData string
	onReady  func()
	onExpand func()
	ready    bool
	expanded bool
}

// Detect returns the host platform described by opts, or nil when the
// client is not running inside the host.
func Detect(opts Options) Platform {
	if !opts.Present {
		return nil
	}
	return &Launcher{
		initData: opts.InitData,
		onReady:  opts.OnReady,
		onExpand: opts.OnExpand,
	}
}

// Ready signals readiness to the host.
func (l *Launcher) Ready() {
	l.mu.Lock()
	l.ready = true
	fn := l.onReady
	l.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Expand asks the host to give the client its full height.
func (l *Launcher) Expand() {
	l.mu.Lock()
	l.expanded = true
	fn := l.onExpand
	l.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// InitData returns the session blob.
func (l *Launcher) InitData() string {
	return l.initData
}

// Signalled reports whether Ready and Expand have been called.
func (l *Launcher) Signalled() (ready, expanded bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready, l.expanded
}
