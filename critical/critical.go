// Package critical masks interrupts around code that must not be preempted.
//
// On TinyGo targets this is a thin layer over runtime/interrupt. On the host
// the interrupt mask is modelled by a lock that simulated interrupt handlers
// (see Deliver) also take, so the same code paths can be exercised by tests.
package critical

// Section runs f with interrupts disabled, then restores the previous
// interrupt state.
func Section(f func()) {
	state := Disable()
	f()
	Restore(state)
}
