//go:build !(tinygo && baremetal)

package critical

import "sync"

// mask is held for as long as interrupts are disabled. Sections don't nest on
// the host.
var mask sync.Mutex

// State is the interrupt-enable state saved by Disable.
type State struct{}

// Disable disables interrupts and returns the previous state.
func Disable() State {
	mask.Lock()
	return State{}
}

// Restore restores the interrupt state returned by Disable.
func Restore(State) {
	mask.Unlock()
}

// Deliver runs the interrupt handler f once interrupts are enabled. It blocks
// while any section is running.
func Deliver(f func()) {
	mask.Lock()
	defer mask.Unlock()
	f()
}

// Masked reports whether interrupts are currently disabled.
func Masked() bool {
	if mask.TryLock() {
		mask.Unlock()
		return false
	}
	return true
}
