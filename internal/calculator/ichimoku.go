package calculator

import "FusionSentinel/internal/model"

// Ichimoku computes the five Ichimoku lines as they stand at the latest bar.
// Standard parameters: tenkan 9, kijun 26, senkou B 52, displacement 26.
// The cloud at the latest bar is the pair of spans projected from
// displacement bars back; chikou is the latest close, compared with the
// close displacement bars back (chikou_ref).
func Ichimoku(c Columns) model.Indicator {
	need := func(p []int) int { return p[2] + p[3] }
	ind, p, ok := start(model.IndIchimoku, c.Len(), []int{9, 26, 52, 26}, need)
	if !ok {
		return ind
	}
	tenkanP, kijunP, spanBP, shift := p[0], p[1], p[2], p[3]
	n := c.Len()
	now, then := n-1, n-1-shift

	tenkan, err := Midpoint(c.High, c.Low, now, tenkanP)
	if err != nil {
		return unavailable(ind, err.Error())
	}
	kijun, err := Midpoint(c.High, c.Low, now, kijunP)
	if err != nil {
		return unavailable(ind, err.Error())
	}
	pastTenkan, err := Midpoint(c.High, c.Low, then, tenkanP)
	if err != nil {
		return unavailable(ind, err.Error())
	}
	pastKijun, err := Midpoint(c.High, c.Low, then, kijunP)
	if err != nil {
		return unavailable(ind, err.Error())
	}
	spanB, err := Midpoint(c.High, c.Low, then, spanBP)
	if err != nil {
		return unavailable(ind, err.Error())
	}

	ind.Value = tenkan
	ind.Lines = map[string]float64{
		"tenkan":     tenkan,
		"kijun":      kijun,
		"span_a":     (pastTenkan + pastKijun) / 2,
		"span_b":     spanB,
		"chikou":     c.Close[now],
		"chikou_ref": c.Close[then],
	}
	return finish(ind)
}
