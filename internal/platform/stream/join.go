package stream

import (
	"context"
	"time"
)

// Interval emits the current time immediately and then every d until ctx is done.
func Interval(ctx context.Context, d time.Duration) <-chan time.Time {
	out := make(chan time.Time, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(d)
		defer ticker.Stop()

		out <- time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				select {
				case out <- t:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// CombineLatest2 emits fn(a, b) once both inputs produced a value and again
// whenever either changes, holding the latest of the other. The output closes
// when ctx is done or any input closes.
func CombineLatest2[A, B, R any](ctx context.Context, as <-chan A, bs <-chan B, fn func(A, B) R) <-chan R {
	out := make(chan R)
	go func() {
		defer close(out)
		var (
			a            A
			b            B
			haveA, haveB bool
		)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-as:
				if !ok {
					return
				}
				a, haveA = v, true
			case v, ok := <-bs:
				if !ok {
					return
				}
				b, haveB = v, true
			}
			if !haveA || !haveB {
				continue
			}
			select {
			case out <- fn(a, b):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// CombineLatest3 is CombineLatest2 over three inputs.
func CombineLatest3[A, B, C, R any](ctx context.Context, as <-chan A, bs <-chan B, cs <-chan C, fn func(A, B, C) R) <-chan R {
	out := make(chan R)
	go func() {
		defer close(out)
		var (
			a                   A
			b                   B
			c                   C
			haveA, haveB, haveC bool
		)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-as:
				if !ok {
					return
				}
				a, haveA = v, true
			case v, ok := <-bs:
				if !ok {
					return
				}
				b, haveB = v, true
			case v, ok := <-cs:
				if !ok {
					return
				}
				c, haveC = v, true
			}
			if !haveA || !haveB || !haveC {
				continue
			}
			select {
			case out <- fn(a, b, c):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
