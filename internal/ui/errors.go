package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ttp/internal/domain"
	"ttp/internal/storage"
)

// ErrorViewer displays failed and inconclusive cases in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer. Resolved marks are saved through st.
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		storage: st,
	}
}

// View displays failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No failed cases found!")
		return nil
	}

	resolved := make(map[int]bool)
	for i, failure := range results.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	var saveErr error
	saveResolvedStatus := func() {
		for i := range results.Details {
			results.Details[i].Resolved = resolved[i]
		}
		saveErr = ev.storage.Save(results)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, listItemText(results.Details[index], index, resolved[index]), "")
	}

	for i, failure := range results.Details {
		list.AddItem(listItemText(failure, i, resolved[i]), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for i := range results.Details {
			if !resolved[i] {
				unresolved++
			}
		}
		text := fmt.Sprintf(" Translation Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(results.Details), unresolved)
		if saveErr != nil {
			text = fmt.Sprintf(" [red]Could not save resolved marks: %s[white] ", tview.Escape(saveErr.Error()))
		}
		headerView.SetText(text)
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]
			statsView.SetText(formatFailureStats(failure))
			detailsView.SetText(formatFailureDetails(failure))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					resolved[index] = !resolved[index]
					saveResolvedStatus()
					updateListItem(index)
					updateHeader()
					updateDetails()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return saveErr
}

// listItemText formats one entry of the failure list
func listItemText(failure domain.Failure, index int, isResolved bool) string {
	label := failure.CaseID
	if failure.Name != "" {
		label += " - " + failure.Name
	}
	label = tview.Escape(label)
	if isResolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
}

// formatFailureDetails formats a failure for display using tview color tags
func formatFailureDetails(failure domain.Failure) string {
	var b strings.Builder

	tag := "red"
	if failure.Outcome == domain.OutcomeInconclusive {
		tag = "yellow"
	}
	fmt.Fprintf(&b, "[%s]✗ %s: %s[white]\n\n", tag, title(string(failure.Outcome)), tview.Escape(failure.CaseID))

	if failure.Name != "" {
		fmt.Fprintf(&b, "[cyan]Name:[white] %s\n", tview.Escape(failure.Name))
	}
	fmt.Fprintf(&b, "[cyan]Category:[white] %s\n", failure.Category)
	fmt.Fprintf(&b, "[cyan]Cycles:[white] %d\n\n", failure.Cycles)

	fmt.Fprintf(&b, "[yellow]Input:[white]\n%s\n\n", tview.Escape(failure.Input))
	fmt.Fprintf(&b, "[yellow]Reference:[white]\n%s\n\n", tview.Escape(orNone(failure.Reference)))
	fmt.Fprintf(&b, "[yellow]Observed:[white]\n%s\n\n", tview.Escape(orNone(failure.Observed)))

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n", tview.Escape(failure.Message))
	}

	return b.String()
}

// formatFailureStats formats the stats header for a failure
func formatFailureStats(failure domain.Failure) string {
	return fmt.Sprintf("[cyan]case:[white] [yellow]%s[white] [cyan]category:[white] [yellow]%s[white] [cyan]outcome:[white] [yellow]%s[white]\n",
		tview.Escape(failure.CaseID), failure.Category, failure.Outcome)
}

func orNone(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
