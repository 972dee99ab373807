// Command analyze-file runs one analysis cycle over a file of raw OpenWeather
// records and prints the text summary, the JSON report or the HTML page.
//
// Usage:
//
//	go run ./cmd/analyze-file -input testdata/openweather_current.json
//	go run ./cmd/analyze-file -input raw.json -format json -output report.json
//	go run ./cmd/analyze-file -input raw.json -format html -output report.html
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/couchcryptid/weather-analysis-service/internal/domain"
	"github.com/couchcryptid/weather-analysis-service/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze-file", flag.ContinueOnError)
	input := fs.String("input", "", "path to a JSON array of raw provider records")
	format := fs.String("format", "text", "output format: text, json or html")
	output := fs.String("output", "", "write output to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *input == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -input")
	}
	switch *format {
	case "text", "json", "html":
	default:
		return fmt.Errorf("unknown format %q: want text, json or html", *format)
	}

	raws, err := loadRawRecords(*input)
	if err != nil {
		return err
	}

	batch, skipped := domain.NormalizeBatch(raws)
	for _, s := range skipped {
		log.Printf("skipping record %d: %v", s.Index, s.Err)
	}

	result := domain.Analyze(batch)

	var out []byte
	switch *format {
	case "json":
		out, err = json.MarshalIndent(report.New(batch, result), "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		out = append(out, '\n')
	case "html":
		var page string
		if page, err = report.HTML(report.New(batch, result)); err != nil {
			return err
		}
		out = []byte(page)
	default:
		out = []byte(report.Summary(result))
	}

	if *output == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(*output, out, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", *output, err)
	}
	log.Printf("wrote %s (%d cities, %d alerts)", *output, len(batch), len(result.Alerts))
	return nil
}

// loadRawRecords reads a JSON array and wraps each element as a raw record.
func loadRawRecords(path string) ([]domain.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var values []json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	raws := make([]domain.RawRecord, len(values))
	for i, v := range values {
		raws[i] = domain.RawRecord{Value: v, Offset: int64(i)}
	}
	return raws, nil
}
