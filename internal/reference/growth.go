package reference

import "math"

const (
	MeasurementWeight            = "weight"
	MeasurementHeight            = "height"
	MeasurementHeadCircumference = "headCircumference"
)

// GrowthBand is the reference band for one age breakpoint: the 3rd
// percentile, the median and the 97th percentile of the measurement.
type GrowthBand struct {
	Min    float64
	Median float64
	Max    float64
}

type growthBreakpoint struct {
	Month int
	Band  GrowthBand
}

var growthStandards = map[string]map[string][]growthBreakpoint{
	"male": {
		MeasurementWeight: {
			{Month: 0, Band: GrowthBand{Min: 2.5, Median: 3.3, Max: 4.3}},
			{Month: 1, Band: GrowthBand{Min: 3.4, Median: 4.5, Max: 5.7}},
			{Month: 2, Band: GrowthBand{Min: 4.3, Median: 5.6, Max: 7.0}},
			{Month: 3, Band: GrowthBand{Min: 5.0, Median: 6.4, Max: 7.9}},
			{Month: 4, Band: GrowthBand{Min: 5.6, Median: 7.0, Max: 8.6}},
			{Month: 6, Band: GrowthBand{Min: 6.4, Median: 7.9, Max: 9.7}},
			{Month: 9, Band: GrowthBand{Min: 7.1, Median: 8.9, Max: 10.9}},
			{Month: 12, Band: GrowthBand{Min: 7.8, Median: 9.6, Max: 11.8}},
			{Month: 18, Band: GrowthBand{Min: 8.6, Median: 10.9, Max: 13.3}},
			{Month: 24, Band: GrowthBand{Min: 9.7, Median: 12.2, Max: 14.8}},
			{Month: 36, Band: GrowthBand{Min: 11.0, Median: 14.3, Max: 18.3}},
		},
		MeasurementHeight: {
			{Month: 0, Band: GrowthBand{Min: 46.1, Median: 49.9, Max: 53.7}},
			{Month: 1, Band: GrowthBand{Min: 50.8, Median: 54.7, Max: 58.6}},
			{Month: 2, Band: GrowthBand{Min: 54.4, Median: 58.4, Max: 62.4}},
			{Month: 3, Band: GrowthBand{Min: 57.3, Median: 61.4, Max: 65.5}},
			{Month: 4, Band: GrowthBand{Min: 59.7, Median: 63.9, Max: 68.0}},
			{Month: 6, Band: GrowthBand{Min: 63.8, Median: 67.6, Max: 71.4}},
			{Month: 9, Band: GrowthBand{Min: 68.0, Median: 72.0, Max: 76.0}},
			{Month: 12, Band: GrowthBand{Min: 71.0, Median: 75.7, Max: 80.5}},
			{Month: 18, Band: GrowthBand{Min: 76.0, Median: 82.3, Max: 88.7}},
			{Month: 24, Band: GrowthBand{Min: 81.7, Median: 87.8, Max: 94.0}},
			{Month: 36, Band: GrowthBand{Min: 89.4, Median: 96.1, Max: 102.7}},
		},
		MeasurementHeadCircumference: {
			{Month: 0, Band: GrowthBand{Min: 32.4, Median: 34.5, Max: 36.6}},
			{Month: 1, Band: GrowthBand{Min: 35.2, Median: 37.3, Max: 39.4}},
			{Month: 2, Band: GrowthBand{Min: 36.8, Median: 38.9, Max: 41.0}},
			{Month: 3, Band: GrowthBand{Min: 38.1, Median: 40.2, Max: 42.3}},
			{Month: 4, Band: GrowthBand{Min: 39.2, Median: 41.3, Max: 43.4}},
			{Month: 6, Band: GrowthBand{Min: 40.7, Median: 42.8, Max: 44.9}},
			{Month: 9, Band: GrowthBand{Min: 42.1, Median: 44.2, Max: 46.3}},
			{Month: 12, Band: GrowthBand{Min: 43.1, Median: 45.2, Max: 47.3}},
			{Month: 18, Band: GrowthBand{Min: 44.2, Median: 46.2, Max: 48.2}},
			{Month: 24, Band: GrowthBand{Min: 44.9, Median: 47.0, Max: 49.1}},
			{Month: 36, Band: GrowthBand{Min: 46.1, Median: 48.3, Max: 50.5}},
		},
	},
	"female": {
		MeasurementWeight: {
			{Month: 0, Band: GrowthBand{Min: 2.4, Median: 3.2, Max: 4.2}},
			{Month: 1, Band: GrowthBand{Min: 3.2, Median: 4.2, Max: 5.4}},
			{Month: 2, Band: GrowthBand{Min: 3.9, Median: 5.1, Max: 6.5}},
			{Month: 3, Band: GrowthBand{Min: 4.5, Median: 5.8, Max: 7.2}},
			{Month: 4, Band: GrowthBand{Min: 5.0, Median: 6.4, Max: 7.9}},
			{Month: 6, Band: GrowthBand{Min: 5.8, Median: 7.3, Max: 9.0}},
			{Month: 9, Band: GrowthBand{Min: 6.5, Median: 8.2, Max: 10.1}},
			{Month: 12, Band: GrowthBand{Min: 7.1, Median: 8.9, Max: 11.0}},
			{Month: 18, Band: GrowthBand{Min: 8.0, Median: 10.2, Max: 12.8}},
			{Month: 24, Band: GrowthBand{Min: 9.2, Median: 11.5, Max: 14.1}},
			{Month: 36, Band: GrowthBand{Min: 10.8, Median: 13.9, Max: 17.4}},
		},
		MeasurementHeight: {
			{Month: 0, Band: GrowthBand{Min: 45.6, Median: 49.1, Max: 52.7}},
			{Month: 1, Band: GrowthBand{Min: 49.9, Median: 53.7, Max: 57.4}},
			{Month: 2, Band: GrowthBand{Min: 53.0, Median: 57.1, Max: 61.1}},
			{Month: 3, Band: GrowthBand{Min: 55.7, Median: 59.8, Max: 63.9}},
			{Month: 4, Band: GrowthBand{Min: 58.0, Median: 62.1, Max: 66.2}},
			{Month: 6, Band: GrowthBand{Min: 61.7, Median: 65.7, Max: 69.7}},
			{Month: 9, Band: GrowthBand{Min: 65.7, Median: 69.7, Max: 73.7}},
			{Month: 12, Band: GrowthBand{Min: 68.9, Median: 73.5, Max: 78.1}},
			{Month: 18, Band: GrowthBand{Min: 74.6, Median: 80.7, Max: 86.8}},
			{Month: 24, Band: GrowthBand{Min: 80.0, Median: 86.4, Max: 92.9}},
			{Month: 36, Band: GrowthBand{Min: 88.0, Median: 95.1, Max: 102.2}},
		},
		MeasurementHeadCircumference: {
			{Month: 0, Band: GrowthBand{Min: 31.9, Median: 33.9, Max: 35.9}},
			{Month: 1, Band: GrowthBand{Min: 34.4, Median: 36.5, Max: 38.6}},
			{Month: 2, Band: GrowthBand{Min: 35.9, Median: 38.0, Max: 40.1}},
			{Month: 3, Band: GrowthBand{Min: 37.2, Median: 39.3, Max: 41.4}},
			{Month: 4, Band: GrowthBand{Min: 38.2, Median: 40.3, Max: 42.4}},
			{Month: 6, Band: GrowthBand{Min: 39.6, Median: 41.7, Max: 43.8}},
			{Month: 9, Band: GrowthBand{Min: 40.9, Median: 43.0, Max: 45.1}},
			{Month: 12, Band: GrowthBand{Min: 41.8, Median: 44.0, Max: 46.2}},
			{Month: 18, Band: GrowthBand{Min: 43.1, Median: 45.3, Max: 47.5}},
			{Month: 24, Band: GrowthBand{Min: 44.0, Median: 46.2, Max: 48.4}},
			{Month: 36, Band: GrowthBand{Min: 45.1, Median: 47.4, Max: 49.7}},
		},
	},
}

// GrowthBandFor returns the band of the single age breakpoint closest to
// ageMonths for the given gender and measurement. No interpolation happens
// between breakpoints; with the granularity above the nearest band is close
// enough for a home tracker.
func GrowthBandFor(gender string, ageMonths int, measurement string) (GrowthBand, bool) {
	byMeasurement, ok := growthStandards[gender]
	if !ok {
		return GrowthBand{}, false
	}
	breakpoints, ok := byMeasurement[measurement]
	if !ok {
		return GrowthBand{}, false
	}

	closest := breakpoints[0]
	closestDiff := math.Abs(float64(closest.Month - ageMonths))
	for _, breakpoint := range breakpoints[1:] {
		diff := math.Abs(float64(breakpoint.Month - ageMonths))
		if diff < closestDiff {
			closest = breakpoint
			closestDiff = diff
		}
	}
	return closest.Band, true
}

// GrowthPercentile estimates the percentile of value against a band by
// piecewise-linear interpolation anchored at (min, 3), (median, 50) and
// (max, 97), clamped outside. This is an approximation of the population
// percentile, not an LMS/z-score model.
func GrowthPercentile(value float64, band GrowthBand) float64 {
	if value <= band.Min {
		return 3
	}
	if value >= band.Max {
		return 97
	}
	if value < band.Median {
		return 3 + (value-band.Min)/(band.Median-band.Min)*47
	}
	return 50 + (value-band.Median)/(band.Max-band.Median)*47
}
