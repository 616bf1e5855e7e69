//go:build !rasterdebug

package raster

const debug = false
