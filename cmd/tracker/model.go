package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"equiptrack/internal/domain"
	"equiptrack/internal/modules/equipment"
	"equiptrack/internal/modules/export"
)

const requestTimeout = 15 * time.Second

type view int

const (
	viewAvailable view = iota
	viewCheckIn
	viewMaintenance
)

// backend is the API surface the tracker drives.
type backend interface {
	equipment.Lifecycle
	ComposeMaintenance(ctx context.Context, id, issue string) (string, error)
	DownloadExport(ctx context.Context, w io.Writer) error
}

// Model is the tracker state. The session is copied into commands and the
// result replaces it, so a command never races with rendering.
type Model struct {
	api     backend
	session equipment.Session
	view    view
	cursor  int
	busy    bool

	form      []textinput.Model
	focus     int
	issue     textinput.Model
	generated string

	notice    string
	noticeErr bool

	exportDir string
	copyText  func(string) error
}

func newModel(api backend, exportDir string, copyText func(string) error) Model {
	form := make([]textinput.Model, 3)
	for i, placeholder := range []string{"Equipment name", "Renter number (optional)", "Rate per day"} {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 128
		ti.Width = 40
		form[i] = ti
	}

	issue := textinput.New()
	issue.Placeholder = "Describe the issue"
	issue.CharLimit = 2000
	issue.Width = 60

	return Model{
		api:       api,
		session:   *equipment.NewSession(api),
		form:      form,
		issue:     issue,
		exportDir: exportDir,
		copyText:  copyText,
	}
}

// messages

type sessionMsg struct {
	session   equipment.Session
	notice    string
	checkedIn bool
	err       error
}

type availableMsg []domain.EquipmentRecord

type generatedMsg struct {
	message string
	err     error
}

type exportedMsg struct {
	path string
	err  error
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := s.Refresh(ctx)
		return sessionMsg{session: s, err: err}
	}
}

func (m Model) submitCheckIn() tea.Cmd {
	s := m.session
	s.Form = equipment.CheckInForm{
		EquipmentName: m.form[0].Value(),
		RenterNumber:  m.form[1].Value(),
		Rate:          m.form[2].Value(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		rec, err := s.SubmitCheckIn(ctx)
		if err != nil {
			return sessionMsg{session: s, err: fmt.Errorf("check-in failed: %w", err)}
		}
		return sessionMsg{session: s, checkedIn: true, notice: fmt.Sprintf("%s checked in (ID %d)", rec.EquipmentName, rec.ID)}
	}
}

func (m Model) submitCheckOut() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := s.SubmitCheckOut(ctx)
		if err != nil {
			return sessionMsg{session: s, err: fmt.Errorf("check-out failed: %w", err)}
		}
		return sessionMsg{session: s, notice: fmt.Sprintf("%s checked out: %d day(s), cost %.2f",
			res.Record.EquipmentName, res.DaysUsed, res.Cost)}
	}
}

func (m Model) generate() tea.Cmd {
	api, id, issue := m.api, m.session.SelectedID, m.issue.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msg, err := api.ComposeMaintenance(ctx, id, issue)
		return generatedMsg{message: msg, err: err}
	}
}

func (m Model) exportLog() tea.Cmd {
	api, path := m.api, filepath.Join(m.exportDir, export.Filename)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		f, err := os.CreateTemp(filepath.Dir(path), ".equipment_log-*.xlsx")
		if err != nil {
			return exportedMsg{err: err}
		}
		defer os.Remove(f.Name())

		if err := api.DownloadExport(ctx, f); err != nil {
			f.Close()
			return exportedMsg{err: err}
		}
		if err := f.Close(); err != nil {
			return exportedMsg{err: err}
		}
		if err := os.Rename(f.Name(), path); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		m.busy = false
		m.session = msg.session
		m.clampCursor()
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if msg.notice != "" {
			m.setNotice(msg.notice)
		}
		if msg.checkedIn {
			for i := range m.form {
				m.form[i].SetValue("")
			}
			m.view = viewAvailable
		}
		return m, nil

	case availableMsg:
		m.session.SetAvailable(msg)
		m.clampCursor()
		return m, nil

	case generatedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Errorf("cannot generate message: %w", msg.err))
			return m, nil
		}
		m.generated = msg.message
		m.issue.Blur()
		m.setNotice("Message ready, press 'c' to copy")
		return m, nil

	case exportedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Errorf("export failed: %w", msg.err))
			return m, nil
		}
		m.setNotice("Exported log to " + msg.path)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewCheckIn:
			return m.updateCheckIn(msg)
		case viewMaintenance:
			return m.updateMaintenance(msg)
		default:
			return m.updateAvailable(msg)
		}
	}
	return m, nil
}

func (m Model) updateAvailable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.session.Available)-1 {
			m.cursor++
		}
	case "r":
		return m, m.refresh()
	case "n":
		m.view = viewCheckIn
		m.focus = 0
		return m, m.focusForm()
	case "o":
		if m.busy {
			return m, nil
		}
		m.selectCursor()
		m.busy = true
		return m, m.submitCheckOut()
	case "m":
		m.selectCursor()
		if _, ok := m.session.Selected(); !ok {
			m.setError(errors.New("select checked-in equipment first"))
			return m, nil
		}
		m.view = viewMaintenance
		m.generated = ""
		m.issue.SetValue("")
		return m, m.issue.Focus()
	case "x":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.exportLog()
	}
	return m, nil
}

func (m Model) updateCheckIn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewAvailable
		return m, nil
	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % len(m.form)
		} else {
			m.focus = (m.focus + len(m.form) - 1) % len(m.form)
		}
		return m, m.focusForm()
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.submitCheckIn()
	}

	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateMaintenance(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.issue.Focused() {
		switch msg.String() {
		case "esc", "q":
			m.view = viewAvailable
			return m, nil
		case "c":
			if m.generated == "" {
				return m, nil
			}
			if err := m.copyText(m.generated); err != nil {
				m.setError(fmt.Errorf("copy failed: %w", err))
			} else {
				m.setNotice("Copied to clipboard")
			}
			return m, nil
		case "e":
			return m, m.issue.Focus()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.view = viewAvailable
		m.issue.Blur()
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.generate()
	}

	var cmd tea.Cmd
	m.issue, cmd = m.issue.Update(msg)
	return m, cmd
}

func (m *Model) focusForm() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.form {
		if i == m.focus {
			cmd = m.form[i].Focus()
			continue
		}
		m.form[i].Blur()
	}
	return cmd
}

func (m *Model) selectCursor() {
	if m.cursor >= 0 && m.cursor < len(m.session.Available) {
		m.session.SelectedID = domain.FormatID(m.session.Available[m.cursor].ID)
		return
	}
	m.session.SelectedID = ""
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.session.Available) {
		m.cursor = len(m.session.Available) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setNotice(s string) {
	m.notice, m.noticeErr = s, false
}

func (m *Model) setError(err error) {
	m.notice, m.noticeErr = err.Error(), true
}
