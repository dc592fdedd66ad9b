package dashboard

// sparkline renders a value series as unicode block characters, one rune
// per point, scaled to the series' own min/max.

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	// Downsample to width by picking evenly spaced points.
	if len(values) > width {
		sampled := make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*len(values)/width]
		}
		values = sampled
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]rune, len(values))
	span := max - min
	for i, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - min) / span * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
