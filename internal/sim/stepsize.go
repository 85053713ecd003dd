package sim

const (
	DefaultMaxDisplacement = 0.1

	shrinkFactor = 0.95
	growFactor   = 1.05
)

// Adjust shrinks drmax when the cumulative acceptance ratio is below target
// and grows it otherwise. With no attempts it returns drmax unchanged.
func Adjust(drmax float64, accepted, attempted int, target float64) float64 {
	if attempted == 0 {
		return drmax
	}
	if float64(accepted)/float64(attempted) < target {
		return drmax * shrinkFactor
	}
	return drmax * growFactor
}
