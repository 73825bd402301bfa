package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/davidvella/sales/recordio"
	"go.uber.org/zap"
)

// File layout.
const (
	// NumRecords is the number of records in a ledger file.
	NumRecords = 367
	// AggregateIndex is the record holding the totals for every day.
	AggregateIndex = 0
	// FirstDay is the index of January 1.
	FirstDay = 1
	// LastDay is the index of the 366th day of a leap year.
	LastDay = NumRecords - 1
	// FileSize is the length in bytes of an initialized ledger file.
	FileSize = NumRecords * 12
)

// Common errors that can be returned by Store operations.
var (
	// ErrIO wraps every failure to create, open, read, write or sync the file.
	ErrIO = errors.New("storage: i/o failure")
	// ErrIndexOutOfRange is returned for an index outside 0..LastDay.
	ErrIndexOutOfRange = errors.New("storage: index out of range")
	ErrClosed          = errors.New("storage: store already closed")
)

// File is the backing medium of a Store. *os.File satisfies it.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
	Sync() error
}

// Store reads and writes ledger records at index-derived offsets.
type Store struct {
	f       File
	created bool
	closed  atomic.Bool
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens the ledger file at path for reading and writing. A missing file
// is created and filled with NumRecords zero records.
func Open(path string, opts ...Option) (*Store, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o600)
	if err == nil {
		return New(f, opts...)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to open file %s: %w", ErrIO, path, err)
	}

	f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create file %s: %w", ErrIO, path, err)
	}

	if err := Init(f); err != nil {
		// A partially written file would be mistaken for an initialized one.
		return nil, errors.Join(err, f.Close(), os.Remove(path))
	}

	s, err := New(f, opts...)
	if err != nil {
		return nil, err
	}
	s.created = true
	s.logger.Debug("created ledger file", zap.String("path", path), zap.Int("size", FileSize))

	return s, nil
}

// Init writes NumRecords zero records to f in ascending index order and syncs it.
func Init(f File) error {
	w := bufio.NewWriterSize(io.NewOffsetWriter(f, 0), FileSize)
	for i := range NumRecords {
		if _, err := recordio.Write(w, recordio.Record{}); err != nil {
			return fmt.Errorf("%w: error initializing record %d: %w", ErrIO, i, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: error initializing file: %w", ErrIO, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: error syncing file: %w", ErrIO, err)
	}
	return nil
}

// New wraps an already initialized backend.
func New(f File, opts ...Option) (*Store, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil file", ErrIO)
	}

	s := &Store{
		f:      f,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Created reports whether Open created the file.
func (s *Store) Created() bool {
	return s.created
}

// ReadRecord reads the record at index.
func (s *Store) ReadRecord(index int) (recordio.Record, error) {
	off, err := s.offset(index)
	if err != nil {
		return recordio.Record{}, err
	}

	s.logger.Debug("read record", zap.Int("index", index), zap.Int64("offset", off))

	rec, err := recordio.ReadRecord(io.NewSectionReader(s.f, off, recordio.Size))
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return recordio.Record{}, fmt.Errorf("%w: error reading record %d: %w", ErrIO, index, err)
	}
	return rec, nil
}

// WriteRecord overwrites the record at index.
func (s *Store) WriteRecord(index int, rec recordio.Record) error {
	off, err := s.offset(index)
	if err != nil {
		return err
	}

	s.logger.Debug("write record",
		zap.Int("index", index),
		zap.Int64("offset", off),
		zap.Uint32("count", rec.Count),
		zap.Float64("amount", rec.Amount),
	)

	buf := make([]byte, recordio.Size)
	recordio.Encode(buf, rec)
	if _, err := s.f.WriteAt(buf, off); err != nil {
		return fmt.Errorf("%w: error writing record %d: %w", ErrIO, index, err)
	}
	return nil
}

// ReadRecords reads the records first through last inclusive in one
// sequential pass.
func (s *Store) ReadRecords(first, last int) ([]recordio.Record, error) {
	off, err := s.offset(first)
	if err != nil {
		return nil, err
	}
	if _, err := s.offset(last); err != nil {
		return nil, err
	}
	if last < first {
		return nil, fmt.Errorf("%w: range %d..%d", ErrIndexOutOfRange, first, last)
	}

	n := last - first + 1
	s.logger.Debug("scan records", zap.Int("first", first), zap.Int("last", last), zap.Int64("offset", off))

	r := bufio.NewReader(io.NewSectionReader(s.f, off, int64(n)*recordio.Size))
	records := make([]recordio.Record, 0, n)
	for i := first; i <= last; i++ {
		rec, err := recordio.ReadRecord(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("%w: error reading record %d: %w", ErrIO, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Close flushes the file to stable storage and releases it.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	syncErr := s.f.Sync()
	closeErr := s.f.Close()
	if err := errors.Join(syncErr, closeErr); err != nil {
		return fmt.Errorf("%w: error closing file: %w", ErrIO, err)
	}
	return nil
}

func (s *Store) offset(index int) (int64, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	if index < AggregateIndex || index > LastDay {
		return 0, fmt.Errorf("%w: %d not in %d..%d", ErrIndexOutOfRange, index, AggregateIndex, LastDay)
	}
	return int64(index) * recordio.Size, nil
}
