package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"FusionSentinel/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            TEXT NOT NULL,
			symbol            TEXT NOT NULL,
			mode              TEXT NOT NULL,
			generated_at      INTEGER NOT NULL,
			recorded_at       INTEGER NOT NULL,
			bars              INTEGER,
			close             REAL,
			technical_score   REAL,
			fundamental_score REAL,
			positioning_score REAL,
			news_score        REAL,
			fused_score       REAL,
			classification    TEXT,
			confidence        REAL,
			degraded          INTEGER,
			bt_available      INTEGER,
			bt_trades         INTEGER,
			bt_win_rate       REAL,
			bt_return         REAL,
			bt_max_drawdown   REAL,
			risk_available    INTEGER,
			stop_loss         REAL,
			take_profit       REAL,
			risk_reward       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_symbol_ts ON reports(symbol, generated_at)`,

		`CREATE TABLE IF NOT EXISTS indicator_states (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			report_id   INTEGER NOT NULL REFERENCES reports(id),
			name        TEXT NOT NULL,
			status      TEXT NOT NULL,
			reduced     INTEGER,
			win_size    INTEGER,
			std_window  INTEGER,
			value       REAL,
			reason      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_indicator_report ON indicator_states(report_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// RecordReport stores the report and its indicator table in one transaction.
func (r *SQLiteRecorder) RecordReport(runID string, rep *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	bars, closePrice := 0, 0.0
	var degraded []string
	if rep.Indicators != nil {
		bars, closePrice = rep.Indicators.Bars, rep.Indicators.Close
		degraded = rep.Indicators.Degraded()
	}
	bt, lv := rep.Backtest, rep.Risk

	res, err := tx.Exec(`INSERT INTO reports
		(run_id, symbol, mode, generated_at, recorded_at, bars, close,
		 technical_score, fundamental_score, positioning_score, news_score,
		 fused_score, classification, confidence, degraded,
		 bt_available, bt_trades, bt_win_rate, bt_return, bt_max_drawdown,
		 risk_available, stop_loss, take_profit, risk_reward)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, rep.Symbol, string(rep.Mode), rep.GeneratedAt.Unix(), time.Now().Unix(), bars, closePrice,
		rep.Dimension(model.DimTechnical).Score, rep.Dimension(model.DimFundamental).Score,
		rep.Dimension(model.DimPositioning).Score, rep.Dimension(model.DimNews).Score,
		rep.Fusion.Score, rep.Fusion.Classification.String(), rep.Fusion.Confidence, len(degraded),
		boolInt(bt.Available), bt.Trades, bt.WinRate, bt.CumulativeReturn, bt.MaxDrawdown,
		boolInt(lv.Available), lv.StopLoss, lv.TakeProfit, lv.RiskReward,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	reportID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("report id: %w", err)
	}

	if rep.Indicators != nil {
		stmt, err := tx.Prepare(`INSERT INTO indicator_states
			(report_id, name, status, reduced, win_size, std_window, value, reason)
			VALUES (?,?,?,?,?,?,?,?)`)
		if err != nil {
			return fmt.Errorf("prepare indicator insert: %w", err)
		}
		defer stmt.Close()
		for _, name := range model.IndicatorNames {
			ind, ok := rep.Indicators.Get(name)
			if !ok {
				continue
			}
			if _, err := stmt.Exec(reportID, name, string(ind.Status), boolInt(ind.Reduced),
				ind.Window, ind.StandardWindow, ind.Value, ind.Reason); err != nil {
				return fmt.Errorf("insert indicator %s: %w", name, err)
			}
		}
	}

	return tx.Commit()
}

// Recent returns up to limit stored reports for symbol, newest first.
func (r *SQLiteRecorder) Recent(symbol string, limit int) ([]ReportRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, symbol, mode, generated_at, fused_score, classification, confidence, degraded
		FROM reports WHERE symbol = ? ORDER BY generated_at DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []ReportRow
	for rows.Next() {
		var (
			row  ReportRow
			mode string
			ts   int64
		)
		if err := rows.Scan(&row.RunID, &row.Symbol, &mode, &ts, &row.Score, &row.Classification,
			&row.Confidence, &row.Degraded); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		row.Mode = model.Mode(mode)
		row.GeneratedAt = time.Unix(ts, 0).UTC()
		out = append(out, row)
	}
	return out, rows.Err()
}

// IndicatorStates returns the stored indicator rows of a run, in display order.
func (r *SQLiteRecorder) IndicatorStates(runID string) ([]model.Indicator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT i.name, i.status, i.reduced, i.win_size, i.std_window, i.value, i.reason
		FROM indicator_states i JOIN reports r ON r.id = i.report_id
		WHERE r.run_id = ? ORDER BY i.id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query indicators: %w", err)
	}
	defer rows.Close()

	var out []model.Indicator
	for rows.Next() {
		var (
			ind     model.Indicator
			status  string
			reduced int
		)
		if err := rows.Scan(&ind.Name, &status, &reduced, &ind.Window, &ind.StandardWindow, &ind.Value, &ind.Reason); err != nil {
			return nil, fmt.Errorf("scan indicator: %w", err)
		}
		ind.Status = model.IndicatorStatus(status)
		ind.Reduced = reduced == 1
		out = append(out, ind)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
