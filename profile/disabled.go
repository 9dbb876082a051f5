//go:build !pprof

package profile

// start is a no-op when built without the pprof build tag.
func start(mode, path string, quiet bool) interface{ Stop() } {
	return ignore{}
}

// Modes returns an empty list when built without the pprof build tag.
var Modes = func() []string { return nil }
