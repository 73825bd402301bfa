// Package storage provides byte-level access to the sales ledger file.
//
// The file holds NumRecords fixed-size records laid out back to back with no
// header. Record AggregateIndex carries the totals for the whole year and
// records FirstDay through LastDay carry one calendar day each. A record is
// addressed purely by its index: record i lives at byte offset i*recordio.Size.
//
// The package knows nothing about dates or sales. It reads and writes whole
// records, creates and zero-fills the file the first time it is opened, and
// reports every failure through ErrIO or ErrIndexOutOfRange.
//
// Basic usage:
//
//	s, err := storage.Open("Sales2020.dat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	rec, err := s.ReadRecord(storage.AggregateIndex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rec.Count, rec.Amount)
package storage
