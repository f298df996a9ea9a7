package climate

// Grib1 spherical earth radius [m] and standard gravity [m/s²], the
// constants ERA5 geopotential is defined against.
const (
	earthRadius = 6367.47e3
	gravity     = 9.80665
)

// GeopotentialHeight converts geopotential z [m²/s²] to altitude above the
// reference sphere [m], accounting for the decrease of gravity with height:
//
//	h = R·(z/g) / (R − z/g)
func GeopotentialHeight(z float64) float64 {
	h := z / gravity
	return earthRadius * h / (earthRadius - h)
}
