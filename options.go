package engrave

// Option configures a Run or Engrave call.
//
// Example:
//
//	res, err := engrave.Run(src, p,
//	    engrave.WithWorkers(4),
//	    engrave.WithPolarity(engrave.PolarityBandInk))
type Option func(*options)

// options holds the optional settings of a run.
type options struct {
	workers  int
	polarity Polarity
}

// defaultOptions returns the default run options.
func defaultOptions() options {
	return options{
		workers:  0, // GOMAXPROCS
		polarity: PolarityBandPaper,
	}
}

// WithWorkers sets the number of goroutines used by the parallel stages.
// Values <= 0 select runtime.GOMAXPROCS(0). The output is the same for any
// worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPolarity selects which intensity fills the stripe band.
// The default, PolarityBandPaper, keeps dark source regions dark.
func WithPolarity(p Polarity) Option {
	return func(o *options) {
		o.polarity = p
	}
}
