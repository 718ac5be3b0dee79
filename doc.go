// Package engrave renders grayscale images as pen-and-ink style hatching.
//
// # Overview
//
// An engraving is built in five stages:
//
//   - Quantize: every pixel's brightness is mapped to one of Params.Shades
//     discrete shade levels.
//   - Segment: the shade grid is split into maximal 4-connected regions of
//     equal shade.
//   - Direction field: for every pixel, Params.Directions candidate
//     orientations in [0, π) are sampled through a small window and the one
//     along which brightness changes least is kept.
//   - Aggregate: each region receives the circular mean of its pixels'
//     orientations.
//   - Render: each region is painted with straight periodic stripes along
//     its orientation. The stripe period is Params.StrokeWidth pixels and the
//     width of the band within each period grows with the region's shade.
//
// # Quick Start
//
//	src, err := engrave.LoadImage("portrait.jpg", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := engrave.Run(src, engrave.Params{Shades: 5, Directions: 8, StrokeWidth: 6})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = res.Image.Save("portrait-engraved.png")
//
// For images already in memory, Engrave accepts and returns image.Image.
//
// # Concurrency
//
// The direction field, aggregation and rendering stages are spread over a
// worker pool created per call; see WithWorkers. Segmentation is sequential.
// Output does not depend on the worker count.
//
// # Coordinate System
//
// Origin (0,0) at top-left, x increases right, y increases down. Angles are
// in radians; a stripe at angle θ repeats along the direction (cos θ, sin θ).
package engrave

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
