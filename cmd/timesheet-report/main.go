package main

import (
	"fmt"
	"os"

	"github.com/aevon-lab/timesheet/internal/report"
)

func main() {
	if err := report.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
