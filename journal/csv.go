package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/newsfx/trader/sentiment"
)

var csvHeader = []string{"trade_id", "pair", "direction", "entry_price", "exit_price", "profit", "opened_at", "closed_at", "tag"}

// CSVJournal appends closed trades to a CSV file, flushing after every
// record so a crash loses at most the in-flight row.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.w.Write([]string{
		t.TradeID,
		t.Pair,
		t.Direction.String(),
		f(t.EntryPrice),
		f(t.ExitPrice),
		f(t.Profit),
		t.OpenedAt.UTC().Format(time.RFC3339),
		t.ClosedAt.UTC().Format(time.RFC3339),
		t.Tag,
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

// ListTrades re-reads the file from disk. The writer keeps appending; this
// is a snapshot.
func (j *CSVJournal) ListTrades() ([]TradeRecord, error) {
	rf, err := os.Open(j.f.Name())
	if err != nil {
		return nil, err
	}
	defer rf.Close()
	return ReadCSV(rf)
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}

// ReadCSV parses trade records written by CSVJournal.
func ReadCSV(r io.Reader) ([]TradeRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	var trades []TradeRecord
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "trade_id" {
			continue
		}
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: want %d columns, got %d", i, len(csvHeader), len(row))
		}

		t := TradeRecord{
			TradeID:   row[0],
			Pair:      row[1],
			Direction: sentiment.ParseSignal(row[2]),
			Tag:       row[8],
		}
		if t.EntryPrice, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("row %d entry_price: %w", i, err)
		}
		if t.ExitPrice, err = strconv.ParseFloat(row[4], 64); err != nil {
			return nil, fmt.Errorf("row %d exit_price: %w", i, err)
		}
		if t.Profit, err = strconv.ParseFloat(row[5], 64); err != nil {
			return nil, fmt.Errorf("row %d profit: %w", i, err)
		}
		if t.OpenedAt, err = time.Parse(time.RFC3339, row[6]); err != nil {
			return nil, fmt.Errorf("row %d opened_at: %w", i, err)
		}
		if t.ClosedAt, err = time.Parse(time.RFC3339, row[7]); err != nil {
			return nil, fmt.Errorf("row %d closed_at: %w", i, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
