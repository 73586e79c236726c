package fraud

// normalizeScores maps a raw score vector onto the [0,1] risk scale using the
// batch's own min and max, oriented so 1.0 is most anomalous. Risk is
// therefore relative to the current batch, not a fixed calibration.
//
// When all scores are identical (single-row or perfectly uniform batch) the
// rescale is undefined, so every row is assigned 0.0 risk rather than
// dividing by zero.
func normalizeScores(raw []float64, orientation Orientation) []float64 {
	normalized := make([]float64, len(raw))
	if len(raw) == 0 {
		return normalized
	}

	min, max := raw[0], raw[0]
	for _, v := range raw[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		return normalized
	}

	span := max - min
	for i, v := range raw {
		n := (v - min) / span
		if orientation == HigherIsNormal {
			n = 1 - n
		}
		normalized[i] = n
	}
	return normalized
}
