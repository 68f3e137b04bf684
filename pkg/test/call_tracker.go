package test

import "sync"

// CallTracker tracks method invocations, their arguments and how many of them overlap.
// The zero value is ready to use.
type CallTracker struct {
	mu       sync.RWMutex
	calls    map[string]int
	args     map[string][][]any
	inFlight map[string]int
	peak     map[string]int
}

func NewCallTracker() *CallTracker {
	return &CallTracker{}
}

func (ct *CallTracker) init() {
	if ct.calls == nil {
		ct.calls = make(map[string]int)
		ct.args = make(map[string][][]any)
		ct.inFlight = make(map[string]int)
		ct.peak = make(map[string]int)
	}
}

// Record counts one invocation of method with its arguments.
func (ct *CallTracker) Record(method string, args ...any) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.init()
	ct.calls[method]++
	ct.args[method] = append(ct.args[method], args)
}

// Enter marks method as running until the returned func is called.
func (ct *CallTracker) Enter(method string) (leave func()) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.init()
	ct.inFlight[method]++
	ct.peak[method] = max(ct.peak[method], ct.inFlight[method])

	return func() {
		ct.mu.Lock()
		defer ct.mu.Unlock()
		ct.inFlight[method]--
	}
}

func (ct *CallTracker) Called(method string) int {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.calls[method]
}

func (ct *CallTracker) CalledOnce(method string) bool {
	return ct.Called(method) == 1
}

func (ct *CallTracker) CalledAtLeast(method string, n int) bool {
	return ct.Called(method) >= n
}

// Args returns the arguments of every recorded invocation of method, in call order.
func (ct *CallTracker) Args(method string) [][]any {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	out := make([][]any, len(ct.args[method]))
	copy(out, ct.args[method])
	return out
}

// PeakConcurrency is the largest number of overlapping Enter calls seen for method.
func (ct *CallTracker) PeakConcurrency(method string) int {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.peak[method]
}

func (ct *CallTracker) Reset() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.calls = nil
	ct.init()
}
