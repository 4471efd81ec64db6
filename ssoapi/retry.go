package ssoapi

import "sync/atomic"

// DefaultMaxReLogins is the number of consecutive 401-triggered re-logins
// allowed before the error is surfaced
const DefaultMaxReLogins = 10

// RetryBudget counts consecutive 401-triggered re-logins. Any successful
// response resets it. Budgets are shared by pointer; DefaultRetryBudget is
// the process-wide budget every Client uses unless configured otherwise.
type RetryBudget struct {
	max   int32
	count atomic.Int32
}

// DefaultRetryBudget is shared by all clients of the process
var DefaultRetryBudget = NewRetryBudget(DefaultMaxReLogins)

// NewRetryBudget creates a budget allowing max consecutive re-logins
func NewRetryBudget(max int) *RetryBudget {
	return &RetryBudget{max: int32(max)}
}

// TryAcquire takes one re-login from the budget, reporting false when the
// cap has been reached
func (b *RetryBudget) TryAcquire() bool {
	for {
		c := b.count.Load()
		if c >= b.max {
			return false
		}
		if b.count.CompareAndSwap(c, c+1) {
			return true
		}
	}
}

// Reset sets the count back to zero
func (b *RetryBudget) Reset() {
	b.count.Store(0)
}

// Count returns the consecutive re-logins performed so far
func (b *RetryBudget) Count() int {
	return int(b.count.Load())
}
