package finance

// Regression is a fitted line y = Slope*x + Intercept.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Predict evaluates the line at x.
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// LinearRegression fits values against their indices 0..n-1 by least squares.
// With fewer than two points the line is flat at the first value (or zero).
func LinearRegression(values []float64) Regression {
	n := len(values)
	if n < 2 {
		if n == 1 {
			return Regression{Intercept: values[0]}
		}
		return Regression{}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	nf := float64(n)
	den := nf*sumX2 - sumX*sumX
	if den == 0 {
		return Regression{Intercept: sumY / nf}
	}
	slope := (nf*sumXY - sumX*sumY) / den
	return Regression{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / nf,
	}
}

// MovingAverage averages the last window values, or all of them when fewer.
func MovingAverage(values []float64, window int) float64 {
	if len(values) == 0 || window <= 0 {
		return 0
	}
	if len(values) < window {
		window = len(values)
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}

// CalculateTrend returns the fitted slope, or zero with fewer than two values.
func CalculateTrend(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return LinearRegression(values).Slope
}
