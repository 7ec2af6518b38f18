//go:build js && wasm

package webusb

import (
	"context"
	"syscall/js"
)

type settlement struct {
	value js.Value
	err   error
}

// await blocks until the promise settles or ctx is cancelled. A host call
// cannot be aborted once issued; on cancellation the eventual settlement is
// drained and discarded so it never reaches a stale caller.
func await(ctx context.Context, promise js.Value) (js.Value, error) {
	ch := make(chan settlement, 1)

	var onResolve, onReject js.Func
	onResolve = js.FuncOf(func(this js.Value, args []js.Value) any {
		s := settlement{}
		if len(args) > 0 {
			s.value = args[0]
		}
		ch <- s
		return nil
	})
	onReject = js.FuncOf(func(this js.Value, args []js.Value) any {
		s := settlement{err: exceptionError(js.Value{})}
		if len(args) > 0 {
			s.err = exceptionError(args[0])
		}
		ch <- s
		return nil
	})
	promise.Call("then", onResolve).Call("catch", onReject)

	release := func() {
		onResolve.Release()
		onReject.Release()
	}

	select {
	case <-ctx.Done():
		go func() {
			<-ch
			release()
		}()
		return js.Value{}, ctx.Err()
	case s := <-ch:
		release()
		return s.value, s.err
	}
}
