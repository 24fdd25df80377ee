//go:build tinygo && baremetal

package critical

import "runtime/interrupt"

// State is the interrupt-enable state saved by Disable.
type State = interrupt.State

// Disable disables interrupts and returns the previous state.
func Disable() State {
	return interrupt.Disable()
}

// Restore restores the interrupt state returned by Disable.
func Restore(state State) {
	interrupt.Restore(state)
}
