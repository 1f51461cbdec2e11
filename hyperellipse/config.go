package hyperellipse

// Config holds the numerical settings shared by a HyperEllipse and the
// ellipsoids it derives. Zero fields take the defaults.
type Config struct {
	OrthogonalityTolerance float64
	SimplexTolerance       float64
	SimplexMaxIterations   int
	FStatistic             FStatisticFunc
}

func DefaultConfig() Config {
	return Config{
		OrthogonalityTolerance: DefaultOrthogonalityTolerance,
		SimplexTolerance:       DefaultSimplexTolerance,
		SimplexMaxIterations:   DefaultSimplexMaxIterations,
		FStatistic:             FStatistic,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.OrthogonalityTolerance <= 0 {
		c.OrthogonalityTolerance = d.OrthogonalityTolerance
	}
	if c.SimplexTolerance <= 0 {
		c.SimplexTolerance = d.SimplexTolerance
	}
	if c.SimplexMaxIterations <= 0 {
		c.SimplexMaxIterations = d.SimplexMaxIterations
	}
	if c.FStatistic == nil {
		c.FStatistic = d.FStatistic
	}
	return c
}
