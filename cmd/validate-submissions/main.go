package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Sardaar2003/fortigatex-sub001/pkg/validate"
)

// Offline shape check for submission batch files; no vendor calls.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Parse()

	ctx := context.Background()
	shape := validate.NewSubmissionValidator()

	format := validate.InputFormat(*formatStr)

	// stdin defaults to jsonl
	if *inputPath == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		summary, err := validate.ValidateFile(ctx, shape, "/dev/stdin", format, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
		return
	}

	summary, err := validate.ValidateFile(ctx, shape, *inputPath, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
