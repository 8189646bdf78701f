package core

// BlockingRegion is a token proving that the holder is inside the
// blocking region of a runtime entry. It is handed to the closure run by
// EnterRuntime and is only valid for that closure's duration.
type BlockingRegion struct {
	allowBlockInPlace bool
}

// AllowsBlockInPlace reports whether blocking in place was permitted for
// this entry.
func (b *BlockingRegion) AllowsBlockInPlace() bool {
	return b.allowBlockInPlace
}

// EnterRuntime marks the execution context as driving a runtime for the
// duration of f.
//
// It is the re-entrancy gate: entering while already entered is a
// structural misuse (blocking inside an async task) and panics rather
// than silently nesting. Otherwise it marks the context entered, swaps in
// a fresh PRNG seed drawn from the handle's seed generator so each entry
// gets its own random stream, installs h as the current handle, and runs
// f with a blocking-region token.
//
// On the way out, on normal return and panic unwind alike, the three
// swapped states are restored strictly in reverse order: current handle
// first, then the PRNG seed, then the entered flag.
func EnterRuntime[R any](ec *ExecutionContext, h *Handle, allowBlockInPlace bool, f func(*BlockingRegion) R) R {
	if ec.entered {
		panic("core: " + reentrantEntryMsg)
	}

	ec.entered = true
	ec.allowBlockInPlace = allowBlockInPlace

	oldSeed := ec.Rng().ReplaceSeed(h.SeedGenerator().NextSeed())
	guard := ec.SetCurrent(h)

	defer func() {
		guard.Release()
		ec.rng.ReplaceSeed(oldSeed)
		ec.allowBlockInPlace = false
		ec.entered = false
	}()

	return f(&BlockingRegion{allowBlockInPlace: allowBlockInPlace})
}
