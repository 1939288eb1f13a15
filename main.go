// Command memsysexplorer runs the analytic area/timing/energy design-space
// search of SPEC_FULL.md over a parameter document and renders the result.
//
// Adapted from gokvm's flag package: runs.go parses a kong CLI and drives an
// Init/Setup/Boot sequence, mapping any stage's failure to a process exit;
// main here parses the same way and drives config.Run/report.PlainText/
// report.Document instead.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/bobuhiro11/memsysexplorer/config"
	"github.com/bobuhiro11/memsysexplorer/report"
	"github.com/bobuhiro11/memsysexplorer/search"
)

func main() {
	var cli config.CLI

	kong.Parse(&cli, kong.Name("memsysexplorer"),
		kong.Description("Analytic area/timing/energy design-space explorer for memory arrays."))

	os.Exit(run(cli))
}

// run maps the three error kinds of SPEC_FULL.md §8 to distinct exit codes:
// configuration errors (1), infeasibility (2), success (0). Domain errors
// (cell.LoadFile's "wrong kind" field warnings) are already logged via
// log.Printf inside the cell package and never change the exit code.
func run(cli config.CLI) int {
	outcome, err := config.Run(cli.ParamFile)
	if err != nil {
		if errors.Is(err, config.ErrBadDocument) {
			log.Printf("configuration error: %v", err)
			return 1
		}

		if errors.Is(err, search.ErrInfeasible) {
			log.Printf("infeasible: %v", err)
			return 2
		}

		log.Printf("error: %v", err)
		return 1
	}

	if err := emit(cli.OutDir, outcome); err != nil {
		log.Printf("error: %v", err)
		return 1
	}

	return 0
}

func emit(outDir string, outcome config.Outcome) error {
	text := report.PlainText(outcome, outcome.Cell, outcome.Param)
	doc := report.Document(outcome, outcome.Cell, outcome.Param)

	docBytes, err := report.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal structured document: %w", err)
	}

	if outDir == "" {
		fmt.Println(text)
		fmt.Println("--- structured document ---")
		fmt.Print(string(docBytes))

		return nil
	}

	if err := os.WriteFile(filepath.Join(outDir, "report.txt"), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write report.txt: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, "report.yaml"), docBytes, 0o644); err != nil {
		return fmt.Errorf("write report.yaml: %w", err)
	}

	return nil
}
