package notifier

import (
	"fmt"
	"html"
	"strings"

	"FusionSentinel/internal/model"
	"FusionSentinel/internal/recorder"
)

var classEmoji = map[model.Classification]string{
	model.StrongBuy:  "🟢🟢",
	model.Buy:        "🟢",
	model.Neutral:    "⚪",
	model.Sell:       "🔴",
	model.StrongSell: "🔴🔴",
}

// FormatReport renders an analysis report as a Telegram HTML message.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s | %s\n\n",
		html.EscapeString(r.Symbol), r.Mode, r.GeneratedAt.Format("2006-01-02")))

	f := r.Fusion
	b.WriteString(fmt.Sprintf("%s <b>%s</b>  score %+.3f  confidence %.0f%%\n",
		classEmoji[f.Classification], f.Classification, f.Score, f.Confidence*100))
	if r.Indicators != nil {
		b.WriteString(fmt.Sprintf("Close: %.2f (%d bars)\n", r.Indicators.Close, r.Indicators.Bars))
	}

	b.WriteString("\n📈 <b>Dimensions:</b>\n")
	for _, d := range r.Dimensions {
		note := ""
		if d.Degraded {
			note = " ⚠️"
		}
		b.WriteString(fmt.Sprintf("  %-11s %+.2f → %+.3f%s\n", d.Dimension, d.Score, f.Contributions[d.Dimension], note))
		if d.Degraded && len(d.Rationale) > 0 {
			b.WriteString(fmt.Sprintf("    <i>%s</i>\n", html.EscapeString(d.Rationale[0])))
		}
	}

	if r.Indicators != nil {
		if deg := r.Indicators.Degraded(); len(deg) > 0 {
			b.WriteString(fmt.Sprintf("\n🔧 Degraded indicators: %s\n", strings.Join(deg, ", ")))
		}
	}

	b.WriteString("\n🎯 <b>Risk:</b> ")
	if lv := r.Risk; lv.Available {
		b.WriteString(fmt.Sprintf("entry %.2f  stop %.2f  target %.2f  (1:%.1f, ATR %.2f)\n",
			lv.Entry, lv.StopLoss, lv.TakeProfit, lv.RiskReward, lv.ATR))
	} else {
		b.WriteString(fmt.Sprintf("n/a (%s)\n", html.EscapeString(lv.Reason)))
	}

	b.WriteString("🧪 <b>Backtest:</b> ")
	if bt := r.Backtest; bt.Available {
		b.WriteString(fmt.Sprintf("SMA %d/%d  trades %d  win %.0f%%  return %+.1f%%  MDD %.1f%%\n",
			bt.FastWindow, bt.SlowWindow, bt.Trades, bt.WinRate*100, bt.CumulativeReturn*100, bt.MaxDrawdown*100))
	} else {
		b.WriteString(fmt.Sprintf("n/a (%s)\n", html.EscapeString(bt.Reason)))
	}

	return b.String()
}

// FormatHistory renders stored reports for a symbol.
func FormatHistory(symbol string, rows []recorder.ReportRow) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No history for <b>%s</b>", html.EscapeString(symbol))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s history</b>\n\n", html.EscapeString(symbol)))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %-10s %-11s %+.3f (%.0f%%)\n",
			r.GeneratedAt.Format("2006-01-02"), r.Mode, r.Classification, r.Score, r.Confidence*100))
	}
	return b.String()
}

// FormatError renders a failed analysis.
func FormatError(symbol string, err error) string {
	return fmt.Sprintf("⚠️ <b>%s</b> analysis failed\n<code>%s</code>",
		html.EscapeString(symbol), html.EscapeString(err.Error()))
}
