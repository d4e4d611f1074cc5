// Command analyze runs the analysis pipeline on a local file and prints the
// result, without going through the HTTP layer.
//
// Usage:
//
//	analyze [-report] [-pretty] file.csv
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"tablescope/internal/analyzer"
	"tablescope/internal/report"
)

func main() {
	asReport := flag.Bool("report", false, "print the markdown report instead of JSON")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: analyze [-report] [-pretty] file.csv")
		os.Exit(2)
	}
	path := flag.Arg(0)

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	a := analyzer.New(analyzer.DefaultConfig())
	result, err := a.Analyze(context.Background(), filepath.Base(path), file)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if *asReport {
		fmt.Print(report.Markdown(result))
		return
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
