package main

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davidvella/sales/ledger"
)

func printAnnual(w io.Writer, year int, r ledger.AnnualReport) {
	fmt.Fprintf(w, "%d Sales\n", year)
	fmt.Fprintf(w, "Number of Sales: %d\n", r.Count)
	fmt.Fprintf(w, "Days with sales: %d\n", r.DaysWithSales)
	fmt.Fprintf(w, "Total: $%s\n", money(r.Total))
	fmt.Fprintf(w, "Daily Average Sale: $%s\n", money(r.Average))
}

func printDay(w io.Writer, date time.Time, r ledger.DayReport) {
	fmt.Fprintf(w, "%d/%d/%d Sales\n", int(date.Month()), date.Day(), date.Year())
	fmt.Fprintf(w, "Number of Sales: %d\n", r.Count)
	fmt.Fprintf(w, "Total: $%s\n", money(r.Total))
	fmt.Fprintf(w, "Average sale: $%s\n", money(r.Average))
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
