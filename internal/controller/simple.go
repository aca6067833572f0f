package controller

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "zipcull.dev/pkg/zipcull/internal/model"
)

// SimpleUI implements UI using cobra Command's output and a numbered prompt
// instead of the full-screen checklist. It backs non-TTY runs and --plain.
type SimpleUI struct {
	cmd   *cobra.Command
	input io.Reader
}

// NewSimpleUI creates a new SimpleUI reading selections from input.
func NewSimpleUI(cmd *cobra.Command, input io.Reader) *SimpleUI {
	return &SimpleUI{cmd: cmd, input: input}
}

// SelectLanguages prints a numbered list and reads the chosen numbers from
// one input line. An empty line selects nothing.
func (s *SimpleUI) SelectLanguages(ctx context.Context, options []m.Language) ([]m.Language, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.printf("Languages to keep:\n")

	for i, option := range options {
		s.printf("  %d) %s\n", i+1, titleCase(option))
	}

	s.printf("Enter numbers separated by spaces (empty to select none): ")

	scanner := bufio.NewScanner(s.input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read selection: %w", err)
		}

		return nil, nil
	}

	var picked []m.Language

	seen := make(map[int]bool)

	for _, field := range strings.Fields(scanner.Text()) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(options) {
			return nil, fmt.Errorf("invalid selection %q", field)
		}

		if seen[n] {
			continue
		}

		seen[n] = true

		picked = append(picked, options[n-1])
	}

	return picked, nil
}

// DisplaySelection echoes the chosen keep-set.
func (s *SimpleUI) DisplaySelection(ctx context.Context, keep m.LanguageSet) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Selected languages to keep: %s\n", strings.Join(keep.Names(), ", "))
}

// DisplaySkipNotice reports an already-ledgered path.
func (s *SimpleUI) DisplaySkipNotice(ctx context.Context, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("[SKIPPING] already checked -> %s\n", path)
}

// DisplayDecision reports a keep/remove decision with progress and ETA.
func (s *SimpleUI) DisplayDecision(ctx context.Context, outcome m.Outcome, processed, remaining int, eta time.Duration) {
	if err := ctx.Err(); err != nil {
		return
	}

	if outcome.Decision == m.Kept {
		s.printf("[KEEPING] %s -> %s\n", outcome.Answer, outcome.Path)
	} else {
		s.printf("[REMOVING] %s -> %s\n", outcome.Answer, outcome.Path)
	}

	if remaining > 0 {
		s.printf("  processed %d, %d left, ETA %s\n", processed, remaining, eta.Round(time.Second))
	}
}

// DisplayClassifierFailure reports an exhausted classification.
func (s *SimpleUI) DisplayClassifierFailure(ctx context.Context, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("[ERROR] all attempts failed for %s, treating as not kept\n", path)
}

// DisplaySummary prints the end-of-run totals as a table.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(summary))
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Outcome", "Archives"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{"kept", fmt.Sprintf("%d", summary.Kept)})
	table.Append([]string{"removed", fmt.Sprintf("%d", summary.Removed)})
	table.Append([]string{"skipped", fmt.Sprintf("%d", summary.Skipped)})

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Total())})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
