package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type config struct {
	File  string // Ledger file path
	Year  int    // Year covered by the ledger
	Debug bool
}

// loadConfig reads settings from the environment, after loading a .env file
// if there is one. The bool result reports whether a .env file was found.
func loadConfig() (config, bool, error) {
	found := godotenv.Load() == nil

	year, err := strconv.Atoi(getEnv("SALES_YEAR", "2020"))
	if err != nil {
		return config{}, found, fmt.Errorf("invalid SALES_YEAR: %w", err)
	}

	debug, err := strconv.ParseBool(getEnv("SALES_DEBUG", "false"))
	if err != nil {
		return config{}, found, fmt.Errorf("invalid SALES_DEBUG: %w", err)
	}

	return config{
		File:  getEnv("SALES_FILE", "Sales2020.dat"),
		Year:  year,
		Debug: debug,
	}, found, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
