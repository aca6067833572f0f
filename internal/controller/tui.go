package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "zipcull.dev/pkg/zipcull/internal/model"
)

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for the interactive checklist and
// styled progress lines.
type TUI struct {
	output io.Writer
	input  io.Reader
}

// NewTUI creates a new TUI writing to output. A nil input leaves Bubble Tea
// on the real terminal.
func NewTUI(output io.Writer, input io.Reader) *TUI {
	return &TUI{output: output, input: input}
}

// SelectLanguages runs the checklist and returns the checked labels.
func (p *TUI) SelectLanguages(_ context.Context, options []m.Language) ([]m.Language, error) {
	model := newChecklistModel(options)

	opts := []tea.ProgramOption{tea.WithOutput(p.output)}
	if p.input != nil {
		opts = append(opts, tea.WithInput(p.input))
	}

	program := tea.NewProgram(model, opts...)

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("run selector: %w", err)
	}

	done, ok := final.(checklistModel)
	if !ok {
		return nil, fmt.Errorf("unexpected selector model %T", final)
	}

	return done.chosen(), nil
}

// DisplaySelection echoes the chosen keep-set.
func (p *TUI) DisplaySelection(_ context.Context, keep m.LanguageSet) {
	fmt.Fprintf(p.output, "Selected languages to keep: %s\n", strings.Join(keep.Names(), ", "))
}

// DisplaySkipNotice reports an already-ledgered path.
func (p *TUI) DisplaySkipNotice(_ context.Context, path m.Path) {
	fmt.Fprintf(p.output, "%s already checked -> %s\n", faintStyle.Render("[SKIPPING]"), path)
}

// DisplayDecision reports a keep/remove decision with progress and ETA.
func (p *TUI) DisplayDecision(_ context.Context, outcome m.Outcome, processed, remaining int, eta time.Duration) {
	if outcome.Decision == m.Kept {
		fmt.Fprintf(p.output, "%s %s -> %s\n", checkedStyle.Render("[KEEPING]"), outcome.Answer, outcome.Path)
	} else {
		fmt.Fprintf(p.output, "%s %s -> %s\n", cursorStyle.Render("[REMOVING]"), outcome.Answer, outcome.Path)
	}

	if remaining > 0 {
		fmt.Fprintf(p.output, "  processed %d, %d left, ETA %s\n", processed, remaining, eta.Round(time.Second))
	}
}

// DisplayClassifierFailure reports an exhausted classification.
func (p *TUI) DisplayClassifierFailure(_ context.Context, path m.Path) {
	fmt.Fprintf(p.output, "%s all attempts failed for %s, treating as not kept\n",
		cursorStyle.Render("[ERROR]"), path)
}

// DisplaySummary prints the end-of-run totals.
func (p *TUI) DisplaySummary(_ context.Context, summary m.Summary) {
	fmt.Fprintf(p.output, "\nDone: %d kept, %d removed, %d skipped (%d total)\n",
		summary.Kept, summary.Removed, summary.Skipped, summary.Total())
}

// checklistModel is the Bubble Tea model for the language checklist.
type checklistModel struct {
	options   []m.Language
	selected  []bool
	cursor    int
	confirmed bool
	quitting  bool
}

func newChecklistModel(options []m.Language) checklistModel {
	return checklistModel{
		options:  options,
		selected: make([]bool, len(options)),
	}
}

// chosen returns the checked labels, or nothing when the user aborted.
func (cm checklistModel) chosen() []m.Language {
	if !cm.confirmed {
		return nil
	}

	var picked []m.Language

	for i, on := range cm.selected {
		if on {
			picked = append(picked, cm.options[i])
		}
	}

	return picked
}

func (cm checklistModel) Init() tea.Cmd {
	return nil
}

func (cm checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return cm, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cm.quitting = true
		return cm, tea.Quit
	case tea.KeyEnter:
		cm.confirmed = true
		return cm, tea.Quit
	case tea.KeySpace:
		cm.selected[cm.cursor] = !cm.selected[cm.cursor]
		return cm, nil
	default:
		// Handle the remaining keys in the string switch below.
	}

	switch key.String() {
	case "q":
		cm.quitting = true
		return cm, tea.Quit

	case "down", "j":
		if cm.cursor < len(cm.options)-1 {
			cm.cursor++
		}

		return cm, nil

	case "up", "k":
		if cm.cursor > 0 {
			cm.cursor--
		}

		return cm, nil
	}

	return cm, nil
}

func (cm checklistModel) View() string {
	if cm.quitting || cm.confirmed {
		return ""
	}

	var b strings.Builder

	b.WriteString("Select languages to keep (SPACE to toggle, ENTER to confirm):\n\n")

	for i, option := range cm.options {
		marker := " "
		label := titleCase(option)

		if cm.selected[i] {
			marker = "*"
			label = checkedStyle.Render(label)
		}

		if i == cm.cursor {
			fmt.Fprintf(&b, "%s %s %s\n", cursorStyle.Render(">"), marker, label)
		} else {
			fmt.Fprintf(&b, "  %s %s\n", marker, label)
		}
	}

	b.WriteString(faintStyle.Render("\n  ↑/k: up | ↓/j: down | space: toggle | enter: confirm | q: abort"))
	b.WriteString("\n")

	return b.String()
}
