package engrave

import (
	"errors"

	"github.com/gogpu/engrave/internal/gradient"
	"github.com/gogpu/engrave/internal/hatch"
	"github.com/gogpu/engrave/internal/shade"
)

// Errors returned by Run and Engrave. Errors from the pipeline stages wrap
// these values; test with errors.Is.
var (
	// ErrNilImage is returned when no source image is given.
	ErrNilImage = errors.New("engrave: nil image")

	// ErrInvalidShadeCount is returned when Params.Shades is outside [2, 256].
	ErrInvalidShadeCount = shade.ErrInvalidShadeCount

	// ErrInvalidDirectionCount is returned when Params.Directions is below 1.
	ErrInvalidDirectionCount = gradient.ErrInvalidDirectionCount

	// ErrInvalidStrokeWidth is returned when Params.StrokeWidth is below 1.
	ErrInvalidStrokeWidth = hatch.ErrInvalidStrokeWidth

	// ErrInvalidPolarity is returned for an unknown Polarity.
	ErrInvalidPolarity = hatch.ErrInvalidPolarity

	// ErrDegenerateWindow is returned when some pixel has no candidate
	// direction with two samples inside the image, as in a 1x1 image.
	ErrDegenerateWindow = gradient.ErrDegenerateWindow
)
