// Package recordio implements the fixed-size binary record used by the sales
// ledger file. A record is a sale count followed by a running total amount:
//
//	+----------------+--------------------------------+
//	| count (uint32) | amount (float64, IEEE-754)     |
//	| 4 bytes        | 8 bytes                        |
//	+----------------+--------------------------------+
//
// Both fields are big-endian and there is no padding, so every record occupies
// exactly Size bytes and record n of a file starts at byte n*Size.
//
// Basic usage:
//
//	var buf bytes.Buffer
//	n, err := recordio.Write(&buf, recordio.Record{Count: 1, Amount: 9.99})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec, err := recordio.ReadRecord(&buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Iterating a run of records
//	for rec := range recordio.Seq(r) {
//	    fmt.Println(rec.Count, rec.Amount)
//	}
package recordio
