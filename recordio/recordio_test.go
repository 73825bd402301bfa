package recordio_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/davidvella/sales/recordio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWrite = errors.New("its a me errorio")

type mockWriter struct {
	errorCounter int
	counter      int
}

func (w *mockWriter) Write(p []byte) (n int, err error) {
	w.counter++
	if w.counter == w.errorCounter {
		return 0, errWrite
	}
	return len(p), nil
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name   string
		record recordio.Record
		want   []byte
	}{
		{
			name:   "zero record",
			record: recordio.Record{},
			want:   make([]byte, 12),
		},
		{
			name:   "one sale",
			record: recordio.Record{Count: 1, Amount: 10},
			want:   []byte{0, 0, 0, 1, 0x40, 0x24, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "max count",
			record: recordio.Record{Count: math.MaxUint32, Amount: 0.5},
			want:   []byte{0xff, 0xff, 0xff, 0xff, 0x3f, 0xe0, 0, 0, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			gotSize, err := recordio.Write(buf, tt.record)

			assert.NoError(t, err)
			assert.Equal(t, recordio.Size, gotSize)
			assert.Equal(t, tt.want, buf.Bytes())

			// Encode must agree with the streaming writer
			encoded := make([]byte, recordio.Size)
			recordio.Encode(encoded, tt.record)
			assert.Equal(t, tt.want, encoded)
		})
	}
}

func TestWriteHandleError(t *testing.T) {
	tests := []struct {
		name               string
		writerCounterError int
		expectedWritten    int64
		expectedError      string
	}{
		{
			name:               "Count",
			writerCounterError: 1,
			expectedError:      "error writing count: its a me errorio",
		},
		{
			name:               "Amount",
			writerCounterError: 2,
			expectedError:      "error writing amount: its a me errorio",
			expectedWritten:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := mockWriter{
				errorCounter: tt.writerCounterError,
			}

			gotWritten, err := recordio.Write(&writer, recordio.Record{Count: 3, Amount: 1.5})

			assert.Equal(t, tt.expectedWritten, gotWritten)
			assert.EqualError(t, err, tt.expectedError)
		})
	}
}

var errRead = errors.New("i failed to read")

type mockReader struct {
	*bytes.Reader
	counter      int
	errorCounter int
}

func newMockReader(data []byte, errorCount int) *mockReader {
	return &mockReader{
		Reader:       bytes.NewReader(data),
		errorCounter: errorCount,
	}
}

func (r *mockReader) Read(p []byte) (n int, err error) {
	r.counter++
	if r.counter == r.errorCounter {
		return 0, errRead
	}
	return r.Reader.Read(p)
}

func TestReadHandleError(t *testing.T) {
	tests := []struct {
		name             string
		readCounterError int
		expectedError    string
	}{
		{
			name:             "Count",
			readCounterError: 1,
			expectedError:    "error reading count: i failed to read",
		},
		{
			name:             "Amount",
			readCounterError: 2,
			expectedError:    "error reading amount: i failed to read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			_, err := recordio.Write(buf, recordio.Record{Count: 7, Amount: 70})
			require.NoError(t, err)

			reader := newMockReader(buf.Bytes(), tt.readCounterError)

			_, err = recordio.ReadRecord(reader)

			assert.EqualError(t, err, tt.expectedError)
		})
	}
}

func TestReadRecordShort(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{
			name:    "empty input",
			input:   nil,
			wantErr: io.EOF,
		},
		{
			name:    "truncated count",
			input:   []byte{0, 0},
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "missing amount",
			input:   []byte{0, 0, 0, 1},
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "truncated amount",
			input:   []byte{0, 0, 0, 1, 0x40, 0x24},
			wantErr: io.ErrUnexpectedEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := recordio.ReadRecord(bytes.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRoundTripBitExact(t *testing.T) {
	records := []recordio.Record{
		{Count: 0, Amount: 0},
		{Count: 1, Amount: 0.01},
		{Count: 366, Amount: 99999.99},
		{Count: 2, Amount: math.SmallestNonzeroFloat64},
		{Count: math.MaxUint32, Amount: math.MaxFloat64},
	}

	for _, want := range records {
		buf := new(bytes.Buffer)
		_, err := recordio.Write(buf, want)
		require.NoError(t, err)
		encoded := bytes.Clone(buf.Bytes())

		got, err := recordio.ReadRecord(buf)
		require.NoError(t, err)
		assert.Equal(t, want.Count, got.Count)
		assert.Equal(t, math.Float64bits(want.Amount), math.Float64bits(got.Amount))

		assert.Equal(t, want, recordio.Decode(encoded))
	}
}

func TestReadRecords(t *testing.T) {
	tests := []struct {
		name  string
		input func() *bytes.Buffer
		want  []recordio.Record
	}{
		{
			name: "read single record",
			input: func() *bytes.Buffer {
				buf := new(bytes.Buffer)
				_, err := recordio.Write(buf, recordio.Record{Count: 1, Amount: 5})
				assert.NoError(t, err)
				return buf
			},
			want: []recordio.Record{{Count: 1, Amount: 5}},
		},
		{
			name: "read multiple records",
			input: func() *bytes.Buffer {
				buf := new(bytes.Buffer)
				for _, r := range []recordio.Record{{Count: 2, Amount: 30}, {Count: 1, Amount: 5}} {
					_, err := recordio.Write(buf, r)
					assert.NoError(t, err)
				}
				return buf
			},
			want: []recordio.Record{{Count: 2, Amount: 30}, {Count: 1, Amount: 5}},
		},
		{
			name: "trailing partial record is dropped",
			input: func() *bytes.Buffer {
				buf := new(bytes.Buffer)
				_, err := recordio.Write(buf, recordio.Record{Count: 4, Amount: 8})
				assert.NoError(t, err)
				buf.Write([]byte{0, 0, 0})
				return buf
			},
			want: []recordio.Record{{Count: 4, Amount: 8}},
		},
		{
			name: "read empty input",
			input: func() *bytes.Buffer {
				return new(bytes.Buffer)
			},
			want: []recordio.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recordio.ReadRecords(tt.input())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordAdd(t *testing.T) {
	r := recordio.Record{}
	assert.True(t, r.IsZero())

	r = r.Add(10).Add(20)

	assert.False(t, r.IsZero())
	assert.Equal(t, recordio.Record{Count: 2, Amount: 30}, r)
}
