package monitor

import (
	"fmt"
	"sync"
)

// CycleTracker counts monitoring cycles and the targets that changed in the
// current one.
type CycleTracker struct {
	changedTargets []string
	mutex          sync.RWMutex
	maxCycles      int
	currentCycle   int
}

// NewCycleTracker creates a new CycleTracker. maxCycles 0 means unlimited.
func NewCycleTracker(maxCycles int) *CycleTracker {
	return &CycleTracker{
		maxCycles: maxCycles,
	}
}

// StartCycle begins a new cycle, increments the counter and returns its ID.
func (ct *CycleTracker) StartCycle() string {
	ct.mutex.Lock()
	defer ct.mutex.Unlock()

	ct.currentCycle++
	ct.changedTargets = nil
	return fmt.Sprintf("cycle-%d", ct.currentCycle)
}

// ShouldContinue returns false once the maximum number of cycles has run.
func (ct *CycleTracker) ShouldContinue() bool {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	if ct.maxCycles <= 0 {
		return true
	}
	return ct.currentCycle < ct.maxCycles
}

// AddChangedTarget records a target that changed in the current cycle
func (ct *CycleTracker) AddChangedTarget(name string) {
	if name == "" {
		return
	}

	ct.mutex.Lock()
	defer ct.mutex.Unlock()
	ct.changedTargets = append(ct.changedTargets, name)
}

// GetChangedTargets returns the targets that changed in the current cycle, in detection order
func (ct *CycleTracker) GetChangedTargets() []string {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()

	out := make([]string, len(ct.changedTargets))
	copy(out, ct.changedTargets)
	return out
}

// CycleCount returns how many cycles have been started
func (ct *CycleTracker) CycleCount() int {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return ct.currentCycle
}

// HasChanges returns true if there are changes in the current cycle
func (ct *CycleTracker) HasChanges() bool {
	ct.mutex.RLock()
	defer ct.mutex.RUnlock()
	return len(ct.changedTargets) > 0
}
