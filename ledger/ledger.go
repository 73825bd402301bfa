// Package ledger implements the sales operations on top of a ledger store:
// recording a sale, reporting a single day and reporting the whole year.
//
// Days are addressed by their 1-based day-of-year index. Converting calendar
// dates to indexes and validating user input is the caller's job; the ledger
// rejects out-of-range days and unusable amounts as programming errors.
package ledger

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/davidvella/sales/recordio"
	"github.com/davidvella/sales/storage"
)

var (
	// ErrInvalidDay is returned for a day index outside storage.FirstDay..storage.LastDay.
	ErrInvalidDay = errors.New("ledger: day index out of range")
	// ErrInvalidAmount is returned for a sale amount that is not a positive finite number.
	ErrInvalidAmount = errors.New("ledger: invalid sale amount")
)

// Store is the record access the ledger needs. *storage.Store implements it.
type Store interface {
	ReadRecord(index int) (recordio.Record, error)
	WriteRecord(index int, rec recordio.Record) error
	ReadRecords(first, last int) ([]recordio.Record, error)
}

// DayReport summarises the sales of one day.
type DayReport struct {
	Day     int
	Count   uint32
	Total   float64
	Average float64 // Total / Count, or 0 without sales
}

// AnnualReport summarises the sales of the whole year.
type AnnualReport struct {
	Count         uint32
	Total         float64
	DaysWithSales int
	Average       float64 // Total / DaysWithSales, or 0 without sales
}

// Ledger records and reports sales.
type Ledger struct {
	store  Store
	logger *zap.Logger
}

// New creates a ledger over s.
func New(s Store, opts ...Option) *Ledger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Ledger{
		store:  s,
		logger: o.logger,
	}
}

// RecordSale adds one sale of amount to the aggregate record and to the
// record of day. Either both records are updated or, when an error is
// returned, neither is.
func (l *Ledger) RecordSale(day int, amount float64) error {
	if err := checkDay(day); err != nil {
		return err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	total, err := l.store.ReadRecord(storage.AggregateIndex)
	if err != nil {
		return fmt.Errorf("failed to read aggregate record: %w", err)
	}

	current, err := l.store.ReadRecord(day)
	if err != nil {
		return fmt.Errorf("failed to read day %d: %w", day, err)
	}

	if err := l.store.WriteRecord(storage.AggregateIndex, total.Add(amount)); err != nil {
		return fmt.Errorf("failed to update aggregate record: %w", err)
	}

	if err := l.store.WriteRecord(day, current.Add(amount)); err != nil {
		err = fmt.Errorf("failed to update day %d: %w", day, err)
		if rerr := l.store.WriteRecord(storage.AggregateIndex, total); rerr != nil {
			l.logger.Error("failed to restore aggregate record",
				zap.Int("day", day),
				zap.Error(rerr),
			)
			return errors.Join(err, fmt.Errorf("failed to restore aggregate record: %w", rerr))
		}
		return err
	}

	l.logger.Debug("sale recorded",
		zap.Int("day", day),
		zap.Float64("amount", amount),
		zap.Uint32("day_count", current.Count+1),
		zap.Uint32("total_count", total.Count+1),
	)

	return nil
}

// DayReport returns the sales of day.
func (l *Ledger) DayReport(day int) (DayReport, error) {
	if err := checkDay(day); err != nil {
		return DayReport{}, err
	}

	rec, err := l.store.ReadRecord(day)
	if err != nil {
		return DayReport{}, fmt.Errorf("failed to read day %d: %w", day, err)
	}

	report := DayReport{
		Day:   day,
		Count: rec.Count,
		Total: rec.Amount,
	}
	if rec.Count > 0 {
		report.Average = rec.Amount / float64(rec.Count)
	}
	return report, nil
}

// AnnualReport returns the totals for the year. The average is taken over
// the days that had at least one sale, not over the number of sales.
func (l *Ledger) AnnualReport() (AnnualReport, error) {
	total, err := l.store.ReadRecord(storage.AggregateIndex)
	if err != nil {
		return AnnualReport{}, fmt.Errorf("failed to read aggregate record: %w", err)
	}

	days, err := l.store.ReadRecords(storage.FirstDay, storage.LastDay)
	if err != nil {
		return AnnualReport{}, fmt.Errorf("failed to scan days: %w", err)
	}

	report := AnnualReport{
		Count: total.Count,
		Total: total.Amount,
	}
	for _, rec := range days {
		if rec.Count > 0 {
			report.DaysWithSales++
		}
	}
	if report.DaysWithSales > 0 {
		report.Average = report.Total / float64(report.DaysWithSales)
	}
	return report, nil
}

func checkDay(day int) error {
	if day < storage.FirstDay || day > storage.LastDay {
		return fmt.Errorf("%w: %d not in %d..%d", ErrInvalidDay, day, storage.FirstDay, storage.LastDay)
	}
	return nil
}
