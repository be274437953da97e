package logger

import (
	"context"
)

// Recover traps panics and displays them using FatalWithStackSkip.
// Usage: defer logger.Recover(ctx)
//
// An intentional FatalError is re-raised so main can exit with a failure code.
func Recover(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(FatalError); ok {
		panic(r)
	}

	// Suppress further panics during recovery, other than the FatalError raised below
	defer func() {
		if r2 := recover(); r2 != nil {
			panic(FatalError{})
		}
	}()

	// Skip Recover and runtime.gopanic
	FatalWithStackSkip(ctx, 2, "panic: %v", r)
}
