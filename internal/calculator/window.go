package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"FusionSentinel/internal/model"
)

// MinWindow is the smallest lookback any indicator is shrunk to.
const MinWindow = 2

// ShrinkWindow returns the lookback used when n bars cannot support the standard one: max(2, n/2), never above standard.
func ShrinkWindow(n, standard int) int {
	p := n / 2
	if p < MinWindow {
		p = MinWindow
	}
	if p > standard {
		p = standard
	}
	return p
}

// resolve picks the parameters for an indicator with the given standard
// parameters and bar requirement. All parameters shrink together.
func resolve(n int, standard []int, need func(p []int) int) (params []int, reduced bool, err error) {
	if n < MinWindow {
		return standard, false, fmt.Errorf("need at least %d bars, have %d", MinWindow, n)
	}
	if need(standard) <= n {
		return standard, false, nil
	}
	params = make([]int, len(standard))
	for i, s := range standard {
		params[i] = ShrinkWindow(n, s)
	}
	if req := need(params); req > n {
		return params, true, fmt.Errorf("need %d bars even after shrinking, have %d", req, n)
	}
	return params, true, nil
}

// start resolves the window for a named indicator and returns the partially
// filled indicator. ok is false when the indicator is insufficient.
func start(name string, n int, standard []int, need func(p []int) int) (ind model.Indicator, params []int, ok bool) {
	params, reduced, err := resolve(n, standard, need)
	ind = model.Indicator{Name: name, Status: model.StatusOK, Reduced: reduced}
	if err != nil {
		ind.Status = model.StatusInsufficient
		ind.Reason = err.Error()
		at := longest(standard)
		ind.Window, ind.StandardWindow = params[at], standard[at]
		return ind, params, false
	}
	describeWindows(&ind, standard, params)
	return ind, params, true
}

// longest is the index of the longest standard lookback, the one that
// governs how many bars an indicator needs.
func longest(standard []int) int {
	at := 0
	for i, s := range standard {
		if s > standard[at] {
			at = i
		}
	}
	return at
}

// describeWindows sets Window, StandardWindow and the reduction reason.
// Window reports the longest lookback; the reason lists every parameter.
func describeWindows(ind *model.Indicator, standard, params []int) {
	at := longest(standard)
	ind.Window, ind.StandardWindow = params[at], standard[at]
	if !ind.Reduced {
		return
	}
	if len(standard) == 1 {
		ind.Reason = fmt.Sprintf("window reduced from %d to %d", standard[0], params[0])
		return
	}
	ind.Reason = fmt.Sprintf("windows reduced from %s to %s", joinWindows(standard), joinWindows(params))
}

func joinWindows(ws []int) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, "/")
}

// single adapts a one-parameter requirement.
func single(need func(p int) int) func([]int) int {
	return func(p []int) int { return need(p[0]) }
}

// finish marks an indicator unavailable when any of its values is not finite.
func finish(ind model.Indicator) model.Indicator {
	if !ind.OK() {
		return ind
	}
	bad := !finite(ind.Value)
	for _, v := range ind.Lines {
		if !finite(v) {
			bad = true
		}
	}
	if bad {
		return unavailable(ind, "computation produced a non-finite value")
	}
	return ind
}

func unavailable(ind model.Indicator, reason string) model.Indicator {
	ind.Status = model.StatusUnavailable
	ind.Value = 0
	ind.Lines = nil
	ind.Reason = reason
	return ind
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func last(xs []float64) float64 { return xs[len(xs)-1] }
