package service

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// noProgressEnv disables the bar even on a terminal
const noProgressEnv = "ANTIPLAG_NO_PROGRESS"

// ProgressManagerImpl draws one bar per batch on a terminal. Workers call
// Increment concurrently; the count is kept even when no bar is drawn.
type ProgressManagerImpl struct {
	description string
	done        atomic.Int64

	mu       sync.Mutex
	out      io.Writer
	terminal bool
	total    int
	bar      *progressbar.ProgressBar
}

// NewProgressManager creates a progress manager writing to stderr
func NewProgressManager(description string) *ProgressManagerImpl {
	return &ProgressManagerImpl{
		description: description,
		out:         os.Stderr,
		terminal:    IsInteractiveEnvironment(),
	}
}

// Initialize resets the count for a batch of total units
func (pm *ProgressManagerImpl) Initialize(total int) {
	pm.mu.Lock()
	pm.total = total
	pm.mu.Unlock()
	pm.done.Store(0)
}

func (pm *ProgressManagerImpl) Start() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.terminal && pm.bar == nil {
		pm.bar = newBar(pm.out, pm.description, pm.total)
	}
}

// Complete finishes the bar, or leaves it where it stopped on failure
func (pm *ProgressManagerImpl) Complete(success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.bar == nil {
		return
	}
	if success {
		_ = pm.bar.Finish()
	} else {
		_ = pm.bar.Exit()
	}
	pm.bar = nil
}

func (pm *ProgressManagerImpl) Increment() {
	pm.done.Add(1)

	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.bar != nil {
		_ = pm.bar.Add(1)
	}
}

// Current returns how many units have been completed
func (pm *ProgressManagerImpl) Current() int {
	return int(pm.done.Load())
}

// SetWriter redirects the bar. Only a terminal file gets a bar.
func (pm *ProgressManagerImpl) SetWriter(w io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.out = w
	f, ok := w.(*os.File)
	pm.terminal = ok && term.IsTerminal(int(f.Fd()))
}

func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.terminal
}

func (pm *ProgressManagerImpl) Close() {
	pm.Complete(true)
}

func newBar(w io.Writer, description string, total int) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

// IsInteractiveEnvironment reports whether stderr is a terminal outside CI
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" || os.Getenv(noProgressEnv) != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
