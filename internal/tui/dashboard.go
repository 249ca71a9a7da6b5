// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-progress-tracker/internal/app"
	"github.com/MKhiriev/go-progress-tracker/internal/service"
	"github.com/MKhiriev/go-progress-tracker/models"
)

type dashboardMode int

const (
	modeList dashboardMode = iota
	modeForm
	modeConfirmDelete
)

const (
	fieldPlatform = iota
	fieldSolved
	fieldTotal
)

const (
	statusTTL     = 2 * time.Second
	platformWidth = 18
)

var writeClipboard = clipboard.WriteAll

type dashboardModel struct {
	ctx      context.Context
	progress service.ClientProgressService
	session  models.Session

	items   []models.Progress
	idx     int
	loading bool
	spinner spinner.Model
	status  string
	errMsg  string

	mode          dashboardMode
	form          form
	editing       bool
	saving        bool
	pendingDelete models.Progress

	logout  bool
	expired bool
}

func newDashboardModel(ctx context.Context, progress service.ClientProgressService, session models.Session) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return dashboardModel{
		ctx:      ctx,
		progress: progress,
		session:  session,
		loading:  true,
		spinner:  s,
		form:     newProgressForm(),
	}
}

func newProgressForm() form {
	return newForm(
		formField{label: "Platform", input: newTextInput("LeetCode", 64, false)},
		formField{label: "Solved", input: newTextInput("0", 9, false)},
		formField{label: "Total", input: newTextInput("0", 9, false)},
	)
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.items = msg.items
		m.idx = max(0, min(m.idx, len(m.items)-1))
		return m, nil
	case progressSavedMsg:
		m.saving = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.mode = modeList
		m.form.reset()
		m.loading = true
		return m.flash(app.MsgProgressUpdated+": "+msg.progress.Platform, m.cmdLoad())
	case progressDeletedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.loading = true
		return m.flash(app.MsgProgressDeleted+": "+msg.platform, m.cmdLoad())
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		return m.flash("Copied to clipboard", nil)
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modeForm {
			cmd := m.form.update(msg)
			return m, cmd
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(keyMsg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	default:
		return m.updateList(keyMsg)
	}
}

func (m dashboardModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(keyMsg, keys.quit):
		return m, tea.Quit
	case keyMatches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case keyMatches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case keyMatches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case keyMatches(keyMsg, keys.refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.errMsg = ""
		return m, m.cmdLoad()
	case keyMatches(keyMsg, keys.add):
		m.openForm(models.Progress{}, false)
		return m, textinput.Blink
	case keyMatches(keyMsg, keys.edit), keyMatches(keyMsg, keys.enter):
		item, ok := m.current()
		if !ok {
			return m.flash("No entries yet, press a to add one", nil)
		}
		m.openForm(item, true)
		return m, textinput.Blink
	case keyMatches(keyMsg, keys.delete):
		item, ok := m.current()
		if !ok {
			return m.flash("Nothing to delete", nil)
		}
		m.pendingDelete = item
		m.mode = modeConfirmDelete
	case keyMatches(keyMsg, keys.copy):
		item, ok := m.current()
		if !ok {
			return m.flash("Nothing to copy", nil)
		}
		return m, cmdCopy(summaryLine(item))
	}

	return m, nil
}

func (m dashboardModel) updateForm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(keyMsg, keys.esc):
		m.mode = modeList
		m.errMsg = ""
		m.form.reset()
		return m, nil
	case keyMatches(keyMsg, keys.tab):
		m.form.focusNext()
		return m, nil
	case keyMatches(keyMsg, keys.backtab):
		m.form.focusPrev()
		return m, nil
	case keyMatches(keyMsg, keys.enter):
		if m.saving {
			return m, nil
		}

		platform, solved, total, err := parseProgressForm(m.form)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}

		m.errMsg = ""
		m.saving = true
		return m, m.cmdUpsert(platform, solved, total)
	}

	cmd := m.form.update(keyMsg)
	return m, cmd
}

func (m dashboardModel) updateConfirmDelete(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(keyMsg, keys.yes):
		m.mode = modeList
		target := m.pendingDelete
		m.pendingDelete = models.Progress{}
		return m, m.cmdDelete(target)
	case keyMatches(keyMsg, keys.no):
		m.mode = modeList
		m.pendingDelete = models.Progress{}
	}

	return m, nil
}

// openForm shows the add/update form, pre-filled when editing an entry.
// Editing keeps the platform, which is what identifies the record.
func (m *dashboardModel) openForm(item models.Progress, editing bool) {
	m.form.reset()
	m.editing = editing
	m.errMsg = ""
	m.mode = modeForm

	if editing {
		m.form.fields[fieldPlatform].input.SetValue(item.Platform)
		m.form.fields[fieldSolved].input.SetValue(strconv.Itoa(item.ProblemsSolved))
		m.form.fields[fieldTotal].input.SetValue(strconv.Itoa(item.TotalProblems))
		m.form.focusNext()
	}
}

// fail shows err in the banner. A rejected token ends the dashboard so the
// user is sent back to the login flow.
func (m dashboardModel) fail(err error) (tea.Model, tea.Cmd) {
	m.errMsg = humanizeError(err)

	if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrNotLoggedIn) {
		m.expired = true
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m dashboardModel) flash(status string, next tea.Cmd) (tea.Model, tea.Cmd) {
	m.status = status
	clearCmd := tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
	if next == nil {
		return m, clearCmd
	}
	return m, tea.Batch(next, clearCmd)
}

func (m dashboardModel) current() (models.Progress, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Progress{}, false
	}
	return m.items[m.idx], true
}

func (m dashboardModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	progress := m.progress

	return func() tea.Msg {
		items, err := progress.List(ctx)
		return progressLoadedMsg{items: items, err: err}
	}
}

func (m dashboardModel) cmdUpsert(platform string, solved, total int) tea.Cmd {
	ctx := m.ctx
	progress := m.progress

	return func() tea.Msg {
		saved, err := progress.Upsert(ctx, platform, solved, total)
		return progressSavedMsg{progress: saved, err: err}
	}
}

func (m dashboardModel) cmdDelete(item models.Progress) tea.Cmd {
	ctx := m.ctx
	progress := m.progress

	return func() tea.Msg {
		err := progress.Delete(ctx, item.ID)
		return progressDeletedMsg{platform: item.Platform, err: err}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(text)}
	}
}

// parseProgressForm reads the form. Blank fields report the same message
// the server would; everything else is left to the service validation.
func parseProgressForm(f form) (platform string, solved, total int, err error) {
	platform = strings.TrimSpace(f.value(fieldPlatform))
	solvedRaw := strings.TrimSpace(f.value(fieldSolved))
	totalRaw := strings.TrimSpace(f.value(fieldTotal))

	if platform == "" || solvedRaw == "" || totalRaw == "" {
		return "", 0, 0, errors.New(app.MsgMissingProgressFields)
	}

	if solved, err = strconv.Atoi(solvedRaw); err != nil {
		return "", 0, 0, errors.New("Problems solved must be a whole number")
	}
	if total, err = strconv.Atoi(totalRaw); err != nil {
		return "", 0, 0, errors.New("Total problems must be a whole number")
	}

	return platform, solved, total, nil
}

func summaryLine(p models.Progress) string {
	return fmt.Sprintf("%s: %d/%d problems solved (%d%%)", p.Platform, p.ProblemsSolved, p.TotalProblems, p.Percent())
}

func (m dashboardModel) View() string {
	title := "PROGRESS OF " + strings.ToUpper(m.session.Username)
	if m.session.Username == "" {
		title = "MY PROGRESS"
	}

	switch m.mode {
	case modeForm:
		return renderPage(title, m.viewForm(), "esc: cancel │ tab: next field │ enter: save")
	case modeConfirmDelete:
		return renderPage(title, m.viewConfirmDelete(), "y: delete │ n: keep")
	default:
		return renderPage(title, m.viewList(),
			"↑/↓: move │ a: add │ e: update │ d: delete │ r: refresh │ c: copy │ l: logout │ q: quit")
	}
}

func (m dashboardModel) viewList() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...\n")
	case len(m.items) == 0:
		b.WriteString("No progress tracked yet. Press a to add a platform.\n")
	default:
		b.WriteString(fmt.Sprintf("  %-*s │ %-11s │ %-*s │ %s\n", platformWidth, "Platform", "Solved", barWidth, "Progress", "%"))
		b.WriteString("  ")
		b.WriteString(strings.Repeat("─", platformWidth))
		b.WriteString("─┼─────────────┼─")
		b.WriteString(strings.Repeat("─", barWidth))
		b.WriteString("─┼─────\n")

		for i, item := range m.items {
			cursor := "  "
			platform := fmt.Sprintf("%-*s", platformWidth, fitText(item.Platform, platformWidth))
			if i == m.idx {
				cursor = "> "
				platform = selectStyle.Render(platform)
			}
			b.WriteString(fmt.Sprintf("%s%s │ %11s │ %s │ %3d%%\n",
				cursor,
				platform,
				fmt.Sprintf("%d/%d", item.ProblemsSolved, item.TotalProblems),
				progressBar(item.Percent(), barWidth),
				item.Percent(),
			))
		}

		solved, total := totals(m.items)
		overall := models.Progress{ProblemsSolved: solved, TotalProblems: total}
		b.WriteString(fmt.Sprintf("\nTotal: %d/%d problems on %d platform(s), %d%%\n",
			solved, total, len(m.items), overall.Percent()))

		if m.loading {
			b.WriteString(m.spinner.View())
			b.WriteString(" Refreshing...\n")
		}
	}

	m.writeBanners(&b)
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) viewForm() string {
	var b strings.Builder

	if m.editing {
		b.WriteString("Update progress\n\n")
	} else {
		b.WriteString("Add progress\n\n")
	}
	b.WriteString(m.form.view())

	if m.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}

	m.writeBanners(&b)
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) viewConfirmDelete() string {
	question := fmt.Sprintf("Delete %s (%d/%d)?\nThis cannot be undone. [y/n]",
		m.pendingDelete.Platform, m.pendingDelete.ProblemsSolved, m.pendingDelete.TotalProblems)
	return confirmStyle.Render(question)
}

func (m dashboardModel) writeBanners(b *strings.Builder) {
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
}

func totals(items []models.Progress) (solved, total int) {
	for _, item := range items {
		solved += item.ProblemsSolved
		total += item.TotalProblems
	}
	return solved, total
}
