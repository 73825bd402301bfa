package recordio

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"math"
)

var (
	Uint32Size  = int64(binary.Size(uint32(0)))
	Float64Size = int64(binary.Size(float64(0)))
	// Size is the encoded length of a Record.
	Size = Uint32Size + Float64Size
)

// Record is a sale count and the summed amount of those sales.
type Record struct {
	Count  uint32
	Amount float64
}

// Add returns r with one more sale of amount.
func (r Record) Add(amount float64) Record {
	return Record{
		Count:  r.Count + 1,
		Amount: r.Amount + amount,
	}
}

// IsZero reports whether no sale has been recorded.
func (r Record) IsZero() bool {
	return r.Count == 0 && r.Amount == 0
}

// BinaryWriter handles writing binary data with error handling.
type BinaryWriter struct {
	w io.Writer
}

func NewBinaryWriter(w io.Writer) BinaryWriter {
	return BinaryWriter{w: w}
}

func (bw BinaryWriter) WriteUint32(v uint32) (int64, error) {
	if err := binary.Write(bw.w, binary.BigEndian, v); err != nil {
		return 0, err
	}
	return Uint32Size, nil
}

func (bw BinaryWriter) WriteFloat64(v float64) (int64, error) {
	if err := binary.Write(bw.w, binary.BigEndian, math.Float64bits(v)); err != nil {
		return 0, err
	}
	return Float64Size, nil
}

// BinaryReader handles reading binary data with error handling.
type BinaryReader struct {
	r io.Reader
}

func NewBinaryReader(r io.Reader) BinaryReader {
	return BinaryReader{r: r}
}

func (br BinaryReader) ReadUint32() (uint32, error) {
	var value uint32
	err := binary.Read(br.r, binary.BigEndian, &value)
	return value, err
}

func (br BinaryReader) ReadFloat64() (float64, error) {
	var bits uint64
	if err := binary.Read(br.r, binary.BigEndian, &bits); err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// Encode writes r into the first Size bytes of dst. It panics if dst is
// shorter than Size.
func Encode(dst []byte, r Record) {
	_ = dst[Size-1]
	binary.BigEndian.PutUint32(dst[:Uint32Size], r.Count)
	binary.BigEndian.PutUint64(dst[Uint32Size:Size], math.Float64bits(r.Amount))
}

// Decode reads a record from the first Size bytes of src. It panics if src
// is shorter than Size.
func Decode(src []byte) Record {
	_ = src[Size-1]
	return Record{
		Count:  binary.BigEndian.Uint32(src[:Uint32Size]),
		Amount: math.Float64frombits(binary.BigEndian.Uint64(src[Uint32Size:Size])),
	}
}

// Write writes a single record to the writer.
func Write(w io.Writer, r Record) (int64, error) {
	var totalBytes int64

	bw := NewBinaryWriter(w)

	n, err := bw.WriteUint32(r.Count)
	if err != nil {
		return totalBytes, fmt.Errorf("error writing count: %w", err)
	}
	totalBytes += n

	n, err = bw.WriteFloat64(r.Amount)
	if err != nil {
		return totalBytes, fmt.Errorf("error writing amount: %w", err)
	}
	totalBytes += n

	return totalBytes, nil
}

// ReadRecord reads a single record from the reader. A reader that ends part
// way through a record yields io.ErrUnexpectedEOF; one that is already
// exhausted yields io.EOF.
func ReadRecord(r io.Reader) (Record, error) {
	br := NewBinaryReader(r)

	count, err := br.ReadUint32()
	if err != nil {
		return Record{}, fmt.Errorf("error reading count: %w", err)
	}

	amount, err := br.ReadFloat64()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Record{}, fmt.Errorf("error reading amount: %w", err)
	}

	return Record{Count: count, Amount: amount}, nil
}

// Seq creates an iterator over records. Iteration stops at the first record
// that cannot be read in full.
func Seq(r io.Reader) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for {
			record, err := ReadRecord(r)
			if err != nil {
				return
			}
			if !yield(record) {
				return
			}
		}
	}
}

// ReadRecords reads all records into a slice.
func ReadRecords(r io.Reader) []Record {
	records := make([]Record, 0, 1)
	for record := range Seq(r) {
		records = append(records, record)
	}
	return records
}
