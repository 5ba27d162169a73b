package model

// IndicatorStatus reports whether an indicator produced a usable value.
type IndicatorStatus string

const (
	StatusOK           IndicatorStatus = "ok"
	StatusInsufficient IndicatorStatus = "insufficient_data"
	StatusUnavailable  IndicatorStatus = "unavailable"
)

// Indicator names computed by the calculator.
const (
	IndSMA       = "sma"
	IndEMA       = "ema"
	IndLWMA      = "lwma"
	IndKAMA      = "kama"
	IndMACD      = "macd"
	IndRSI       = "rsi"
	IndStochRSI  = "stoch_rsi"
	IndCCI       = "cci"
	IndWilliamsR = "williams_r"
	IndMFI       = "mfi"
	IndVWAP      = "vwap"
	IndADX       = "adx"
	IndBollinger = "bollinger"
	IndATR       = "atr"
	IndOBV       = "obv"
	IndIchimoku  = "ichimoku"
)

// IndicatorNames lists every indicator in display order.
var IndicatorNames = []string{
	IndSMA, IndEMA, IndLWMA, IndKAMA, IndMACD, IndADX, IndIchimoku, IndVWAP, IndOBV,
	IndRSI, IndStochRSI, IndCCI, IndWilliamsR, IndMFI, IndBollinger, IndATR,
}

// Indicator is the state of one indicator at the latest bar.
// Value holds the primary line; multi-line indicators also fill Lines.
type Indicator struct {
	Name           string
	Status         IndicatorStatus
	Reduced        bool // window shrunk below the standard lookback
	Window         int
	StandardWindow int
	Value          float64
	Lines          map[string]float64
	Reason         string
}

// OK reports whether the indicator carries a usable value.
func (i Indicator) OK() bool { return i.Status == StatusOK }

// Line returns a named line, falling back to Value for the empty name.
func (i Indicator) Line(name string) float64 {
	if name == "" {
		return i.Value
	}
	return i.Lines[name]
}

// IndicatorSet holds all computed indicators for one series.
type IndicatorSet struct {
	Bars       int
	Close      float64
	Indicators map[string]Indicator
}

// Get returns the named indicator.
func (s *IndicatorSet) Get(name string) (Indicator, bool) {
	if s == nil {
		return Indicator{}, false
	}
	ind, ok := s.Indicators[name]
	return ind, ok
}

// Available reports whether the named indicator has a usable value.
func (s *IndicatorSet) Available(name string) bool {
	ind, ok := s.Get(name)
	return ok && ind.OK()
}

// Degraded returns the names of indicators that are reduced or not usable, in display order.
func (s *IndicatorSet) Degraded() []string {
	var out []string
	for _, name := range IndicatorNames {
		ind, ok := s.Get(name)
		if !ok || !ind.OK() || ind.Reduced {
			out = append(out, name)
		}
	}
	return out
}
