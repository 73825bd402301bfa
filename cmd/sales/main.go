// Command sales records and reports sales for a single year.
//
//	sales                       annual report
//	sales MM/DD/YYYY            report for one day
//	sales MM/DD/YYYY AMOUNT     record a sale of AMOUNT on that day
//
// The ledger file is named by SALES_FILE and covers the year SALES_YEAR.
// SALES_DEBUG=true enables debug logging on stderr.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/davidvella/sales/calendar"
	"github.com/davidvella/sales/ledger"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	minAmount = decimal.RequireFromString("0.01")
	maxAmount = decimal.RequireFromString("99999.99")

	errAmountFormat = errors.New("sales must be entered in a numerical format (XX.XX)")
	errAmountRange  = fmt.Errorf("sales must be between $%s and $%s", minAmount.StringFixed(2), maxAmount.StringFixed(2))
)

func main() {
	cfg, envFound, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	if !envFound {
		logger.Debug("no .env file found, relying on system env vars")
	}

	code := run(os.Args[1:], cfg, logger, os.Stdout, os.Stderr)
	_ = logger.Sync()
	os.Exit(code)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// run executes one command and returns the process exit code.
func run(args []string, cfg config, logger *zap.Logger, stdout, stderr io.Writer) int {
	opts := []ledger.Option{ledger.WithLogger(logger)}

	switch len(args) {
	case 0:
		var report ledger.AnnualReport
		err := ledger.Run(cfg.File, func(l *ledger.Ledger) error {
			var err error
			report, err = l.AnnualReport()
			return err
		}, opts...)
		if err != nil {
			return fail(logger, stderr, err)
		}
		printAnnual(stdout, cfg.Year, report)

	case 1:
		day, date, err := parseDay(args[0], cfg.Year)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid date: %v\n", err)
			return exitError
		}

		var report ledger.DayReport
		err = ledger.Run(cfg.File, func(l *ledger.Ledger) error {
			var err error
			report, err = l.DayReport(day)
			return err
		}, opts...)
		if err != nil {
			return fail(logger, stderr, err)
		}
		printDay(stdout, date, report)

	case 2:
		day, _, err := parseDay(args[0], cfg.Year)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid date: %v\n", err)
			return exitError
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}

		err = ledger.Run(cfg.File, func(l *ledger.Ledger) error {
			return l.RecordSale(day, amount.InexactFloat64())
		}, opts...)
		if err != nil {
			return fail(logger, stderr, err)
		}
		fmt.Fprintln(stdout, "Sale added.")

	default:
		fmt.Fprintf(stderr, "Usage: sales [%s [XX.XX]]\n", calendar.Layout)
		return exitUsage
	}

	return exitOK
}

func fail(logger *zap.Logger, stderr io.Writer, err error) int {
	logger.Error("operation failed", zap.Error(err))
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}

func parseDay(s string, year int) (int, time.Time, error) {
	date, err := calendar.Parse(s, year)
	if err != nil {
		return 0, time.Time{}, err
	}
	day, err := calendar.DayIndex(year, date)
	if err != nil {
		return 0, time.Time{}, err
	}
	return day, date, nil
}

// parseAmount accepts a decimal amount within [minAmount, maxAmount].
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errAmountFormat
	}
	if amount.LessThan(minAmount) || amount.GreaterThan(maxAmount) {
		return decimal.Decimal{}, errAmountRange
	}
	return amount, nil
}
