package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ryotapoi/mdtoc/internal/core"
	"github.com/ryotapoi/mdtoc/internal/ui"
)

// validateFormat checks that format is "text", "json" or "yaml".
func validateFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("invalid format: %q (must be text, json or yaml)", format)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// displayPath shortens path to be relative to the working directory when it
// lies below it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// --- Lift output ---

func printLiftText(w io.Writer, res *core.LiftResult) {
	verb := "Lifted"
	if res.DryRun {
		verb = "Would lift"
	}
	fmt.Fprintln(w, ui.Success(fmt.Sprintf("%s %q from %s", verb, res.Title, ui.FilePath(displayPath(res.Source)))))
	if len(res.Steps) == 0 {
		fmt.Fprintln(w, ui.Info("no parent index documents to update"))
		return
	}
	for _, step := range res.Steps {
		line := fmt.Sprintf("%s %s", ui.FilePath(displayPath(step.Document)), ui.Hint("("+string(step.Strategy)+")"))
		if step.Strategy == core.StrategySegment {
			fmt.Fprintf(w, "  %s\n", ui.Success(line))
		} else {
			fmt.Fprintf(w, "  %s\n", ui.Warning(line))
		}
		if res.DryRun {
			if d := ui.LineDiff(step.Before, step.After); d != "" {
				fmt.Fprint(w, d)
			} else {
				fmt.Fprintf(w, "    %s\n", ui.Hint("unchanged"))
			}
		}
	}
}

// --- History output ---

func printHistoryText(w io.Writer, records []core.LiftRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, ui.Info("no lifts recorded"))
		return
	}
	for _, r := range records {
		when := time.Unix(r.CreatedAt, 0).Format(time.RFC3339)
		fmt.Fprintf(w, "%s %s %q %s\n", ui.Header(shortID(r.ID)), when, r.Title, ui.FilePath(displayPath(r.Source)))
		for _, s := range r.Steps {
			changed := "unchanged"
			if s.Changed {
				changed = "changed"
			}
			fmt.Fprintf(w, "  %s %s\n", displayPath(s.Document), ui.Hint(fmt.Sprintf("(%s, %s)", s.Strategy, changed)))
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
