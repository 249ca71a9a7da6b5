package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-progress-tracker/internal/adapter"
	"github.com/MKhiriev/go-progress-tracker/internal/app"
	"github.com/MKhiriev/go-progress-tracker/internal/mock"
	"github.com/MKhiriev/go-progress-tracker/internal/service"
	"github.com/MKhiriev/go-progress-tracker/models"
)

var (
	leetCode   = models.Progress{ID: "p-1", Platform: "LeetCode", ProblemsSolved: 150, TotalProblems: 300}
	codeforces = models.Progress{ID: "p-2", Platform: "Codeforces", ProblemsSolved: 10, TotalProblems: 40}
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m dashboardModel, text string) dashboardModel {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(dashboardModel)
	}
	return m
}

func loadedDashboard(t *testing.T, progress service.ClientProgressService, items ...models.Progress) dashboardModel {
	t.Helper()

	m := newDashboardModel(context.Background(), progress, models.Session{Username: "alice"})
	next, _ := m.Update(progressLoadedMsg{items: items})
	return next.(dashboardModel)
}

func press(m dashboardModel, key string) (dashboardModel, tea.Cmd) {
	next, cmd := m.Update(keyPress(key))
	return next.(dashboardModel), cmd
}

func TestDashboard_LoadShowsEntries(t *testing.T) {
	m := loadedDashboard(t, nil, leetCode, codeforces)

	assert.False(t, m.loading)
	assert.Len(t, m.items, 2)

	view := m.View()
	assert.Contains(t, view, "PROGRESS OF ALICE")
	assert.Contains(t, view, "LeetCode")
	assert.Contains(t, view, "150/300")
	assert.Contains(t, view, " 50%")
	assert.Contains(t, view, "Total: 160/340")
}

func TestDashboard_EmptyList(t *testing.T) {
	m := loadedDashboard(t, nil)

	assert.Contains(t, m.View(), "No progress tracked yet")
}

func TestDashboard_NavigationIsBounded(t *testing.T) {
	m := loadedDashboard(t, nil, leetCode, codeforces)

	m, _ = press(m, "down")
	m, _ = press(m, "down")
	assert.Equal(t, 1, m.idx)

	m, _ = press(m, "k")
	m, _ = press(m, "k")
	assert.Equal(t, 0, m.idx)
}

func TestDashboard_AddEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	progress := mock.NewMockClientProgressService(ctrl)
	progress.EXPECT().Upsert(gomock.Any(), "HackerRank", 5, 10).
		Return(models.Progress{ID: "p-3", Platform: "HackerRank", ProblemsSolved: 5, TotalProblems: 10}, nil)

	m := loadedDashboard(t, progress)
	m, _ = press(m, "a")
	require.Equal(t, modeForm, m.mode)

	m = typeText(m, "HackerRank")
	m, _ = press(m, "tab")
	m = typeText(m, "5")
	m, _ = press(m, "tab")
	m = typeText(m, "10")

	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.saving)

	saved, ok := cmd().(progressSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)

	next, _ := m.Update(saved)
	m = next.(dashboardModel)
	assert.Equal(t, modeList, m.mode)
	assert.Contains(t, m.status, app.MsgProgressUpdated)
}

func TestDashboard_EditPrefillsForm(t *testing.T) {
	m := loadedDashboard(t, nil, leetCode)

	m, _ = press(m, "e")

	require.Equal(t, modeForm, m.mode)
	assert.True(t, m.editing)
	assert.Equal(t, "LeetCode", m.form.value(fieldPlatform))
	assert.Equal(t, "150", m.form.value(fieldSolved))
	assert.Equal(t, "300", m.form.value(fieldTotal))
}

func TestDashboard_FormRejectsBadInputLocally(t *testing.T) {
	m := loadedDashboard(t, nil, leetCode)
	m, _ = press(m, "a")

	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Equal(t, app.MsgMissingProgressFields, m.errMsg)
	assert.Equal(t, modeForm, m.mode)
}

func TestDashboard_DeleteAsksForConfirmation(t *testing.T) {
	ctrl := gomock.NewController(t)
	progress := mock.NewMockClientProgressService(ctrl)
	progress.EXPECT().Delete(gomock.Any(), "p-1").Return(nil)

	m := loadedDashboard(t, progress, leetCode)

	m, cmd := press(m, "d")
	assert.Nil(t, cmd)
	require.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), "Delete LeetCode (150/300)?")

	m, cmd = press(m, "y")
	require.NotNil(t, cmd)
	assert.Equal(t, modeList, m.mode)

	deleted, ok := cmd().(progressDeletedMsg)
	require.True(t, ok)
	assert.NoError(t, deleted.err)
	assert.Equal(t, "LeetCode", deleted.platform)
}

func TestDashboard_DeleteCanBeCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	progress := mock.NewMockClientProgressService(ctrl)

	m := loadedDashboard(t, progress, leetCode)
	m, _ = press(m, "d")
	m, cmd := press(m, "n")

	assert.Nil(t, cmd)
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, m.items, 1)
}

func TestDashboard_ServerMessageShownInBanner(t *testing.T) {
	m := loadedDashboard(t, nil, leetCode)

	err := fmt.Errorf("upsert progress: %w", &adapter.ResponseError{
		StatusCode: 400,
		Message:    app.MsgSolvedExceedsTotal,
		Err:        adapter.ErrBadRequest,
	})
	next, cmd := m.Update(progressSavedMsg{err: err})
	m = next.(dashboardModel)

	assert.Nil(t, cmd)
	assert.Equal(t, app.MsgSolvedExceedsTotal, m.errMsg)
	assert.False(t, m.logout)
}

func TestDashboard_ExpiredSessionEndsDashboard(t *testing.T) {
	m := loadedDashboard(t, nil, leetCode)

	next, cmd := m.Update(progressLoadedMsg{err: fmt.Errorf("list progress: %w", service.ErrSessionExpired)})
	m = next.(dashboardModel)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.logout)
	assert.True(t, m.expired)
	assert.Equal(t, service.ErrSessionExpired.Error(), m.errMsg)
}

func TestDashboard_LogoutAndQuit(t *testing.T) {
	m := loadedDashboard(t, nil, leetCode)

	loggedOut, cmd := press(m, "l")
	require.NotNil(t, cmd)
	assert.True(t, loggedOut.logout)

	quit, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.False(t, quit.logout)
}

func TestDashboard_CopySelectedEntry(t *testing.T) {
	var copied string
	original := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = original })

	m := loadedDashboard(t, nil, leetCode)
	_, cmd := press(m, "c")
	require.NotNil(t, cmd)

	msg, ok := cmd().(copiedMsg)
	require.True(t, ok)
	assert.NoError(t, msg.err)
	assert.Equal(t, "LeetCode: 150/300 problems solved (50%)", copied)
}

func TestParseProgressForm(t *testing.T) {
	tests := []struct {
		name      string
		values    [3]string
		wantErr   string
		wantSolve int
		wantTotal int
	}{
		{name: "valid", values: [3]string{" LeetCode ", "150", "300"}, wantSolve: 150, wantTotal: 300},
		{name: "negative is left to validation", values: [3]string{"LeetCode", "-1", "3"}, wantSolve: -1, wantTotal: 3},
		{name: "blank platform", values: [3]string{" ", "1", "2"}, wantErr: app.MsgMissingProgressFields},
		{name: "blank count", values: [3]string{"LeetCode", "", "2"}, wantErr: app.MsgMissingProgressFields},
		{name: "not a number", values: [3]string{"LeetCode", "ten", "20"}, wantErr: "whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProgressForm()
			for i, v := range tt.values {
				f.fields[i].input.SetValue(v)
			}

			platform, solved, total, err := parseProgressForm(f)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "LeetCode", platform)
			assert.Equal(t, tt.wantSolve, solved)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent    int
		wantFilled int
	}{
		{percent: 0, wantFilled: 0},
		{percent: 50, wantFilled: 10},
		{percent: 100, wantFilled: 20},
		{percent: 150, wantFilled: 20},
		{percent: -5, wantFilled: 0},
	}

	for _, tt := range tests {
		bar := progressBar(tt.percent, barWidth)

		assert.Equal(t, tt.wantFilled, strings.Count(bar, "█"), "percent %d", tt.percent)
		assert.Equal(t, barWidth-tt.wantFilled, strings.Count(bar, "░"), "percent %d", tt.percent)
	}
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "server message",
			err:  &adapter.ResponseError{StatusCode: 400, Message: app.MsgInvalidCredentials, Err: adapter.ErrBadRequest},
			want: app.MsgInvalidCredentials,
		},
		{
			name: "server unavailable",
			err:  fmt.Errorf("list progress: %w", adapter.ErrServerUnavailable),
			want: msgServerUnavailable,
		},
		{
			name: "session expired beats server message",
			err: fmt.Errorf("%w: %w", service.ErrSessionExpired, &adapter.ResponseError{
				StatusCode: 401, Message: app.MsgTokenIsExpiredOrInvalid, Err: adapter.ErrUnauthorized,
			}),
			want: service.ErrSessionExpired.Error(),
		},
		{name: "unknown", err: errors.New("boom"), want: msgSomethingWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}
