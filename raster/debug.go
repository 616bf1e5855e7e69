package raster

import (
	"fmt"

	"deedles.dev/bitmap/geom"
)

// checkFinite panics if an edge has a NaN or infinite coordinate. It
// compiles to nothing unless the rasterdebug build tag is set.
func checkFinite(a, b geom.Point[float64]) {
	if !debug {
		return
	}
	if !a.IsFinite() || !b.IsFinite() {
		panic(fmt.Errorf("raster: edge %v -> %v is not finite", a, b))
	}
}
