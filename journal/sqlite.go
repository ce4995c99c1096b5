package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/newsfx/trader/sentiment"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, pair, direction, entry_price, exit_price, profit, opened_at, closed_at, tag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Pair, t.Direction.String(), t.EntryPrice,
		t.ExitPrice, t.Profit, t.OpenedAt.UTC(), t.ClosedAt.UTC(), t.Tag,
	)
	return err
}

func (j *SQLiteJournal) ListTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, pair, direction, entry_price, exit_price, profit, opened_at, closed_at, tag
		FROM trades ORDER BY closed_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []TradeRecord
	for rows.Next() {
		var t TradeRecord
		var direction string
		var opened, closed time.Time
		if err := rows.Scan(&t.TradeID, &t.Pair, &direction, &t.EntryPrice,
			&t.ExitPrice, &t.Profit, &opened, &closed, &t.Tag); err != nil {
			return nil, err
		}
		t.Direction = sentiment.ParseSignal(direction)
		t.OpenedAt = opened
		t.ClosedAt = closed
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
