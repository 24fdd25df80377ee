//go:build !(tinygo && baremetal)

package critical

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionMasks(t *testing.T) {
	assert.False(t, Masked())
	Section(func() {
		assert.True(t, Masked())
	})
	assert.False(t, Masked())
}

func TestDeliverWaitsForSection(t *testing.T) {
	var order []string
	var mu sync.Mutex
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	entered := make(chan struct{})
	done := make(chan struct{})

	state := Disable()
	go func() {
		close(entered)
		Deliver(func() { record("isr") })
		close(done)
	}()

	<-entered
	record("section")
	Restore(state)
	<-done

	assert.Equal(t, []string{"section", "isr"}, order)
}
