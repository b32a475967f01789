package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equiptrack/internal/domain"
	"equiptrack/internal/modules/equipment"
	"equiptrack/internal/modules/export"
	"equiptrack/internal/modules/maintenance"
	"equiptrack/internal/repository"
)

type memoryStore struct {
	rows []domain.EquipmentRecord
}

func (m *memoryStore) Select(_ context.Context, f domain.Filter) ([]domain.EquipmentRecord, error) {
	out := []domain.EquipmentRecord{}
	for _, r := range m.rows {
		if (f.ID == 0 || r.ID == f.ID) && (f.Status == "" || r.Status == f.Status) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) Insert(_ context.Context, rec *domain.EquipmentRecord) error {
	rec.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *rec)
	return nil
}

func (m *memoryStore) Update(_ context.Context, id int64, p domain.CheckOutPatch) (*domain.EquipmentRecord, error) {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].IsCheckedIn() {
			out, cost := p.CheckedOutAt, p.Cost
			m.rows[i].Status = domain.StatusCheckedOut
			m.rows[i].CheckedOutAt = &out
			m.rows[i].Cost = &cost
			rec := m.rows[i]
			return &rec, nil
		}
	}
	return nil, repository.ErrNotUpdated
}

// localBackend serves the tracker from in-process services.
type localBackend struct {
	*equipment.Service
	maintenance *maintenance.Service
	export      *export.Service
	failNext    bool
}

func (b *localBackend) CheckIn(ctx context.Context, req equipment.CheckInRequest) (*domain.EquipmentRecord, error) {
	if b.failNext {
		b.failNext = false
		return nil, errors.New("connection refused")
	}
	return b.Service.CheckIn(ctx, req)
}

func (b *localBackend) ComposeMaintenance(ctx context.Context, id, issue string) (string, error) {
	return b.maintenance.Compose(ctx, id, issue)
}

func (b *localBackend) DownloadExport(ctx context.Context, w io.Writer) error {
	_, err := b.export.Export(ctx, w)
	return err
}

func newTestModel(t *testing.T) (Model, *localBackend, *[]string) {
	t.Helper()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := equipment.NewService(&memoryStore{}, equipment.WithClock(func() time.Time { return now }))
	api := &localBackend{
		Service:     svc,
		maintenance: maintenance.NewService(svc),
		export:      export.NewService(svc),
	}
	var copied []string
	m := newModel(api, t.TempDir(), func(s string) error {
		copied = append(copied, s)
		return nil
	})
	// a blinking cursor schedules timed commands that run() would wait on
	for i := range m.form {
		m.form[i].Cursor.SetMode(cursor.CursorStatic)
	}
	m.issue.Cursor.SetMode(cursor.CursorStatic)
	return m, api, &copied
}

// run feeds msg to the model and drains the resulting commands synchronously.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		switch out.(type) {
		case sessionMsg, generatedMsg, exportedMsg, availableMsg:
		default:
			// cursor blink and similar UI ticks
			return m
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	for _, r := range s {
		m = run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func checkIn(t *testing.T, m Model, name, renter, rate string) Model {
	t.Helper()
	m = run(t, m, key("n"))
	m = typeText(t, m, name)
	m = run(t, m, key("tab"))
	m = typeText(t, m, renter)
	m = run(t, m, key("tab"))
	m = typeText(t, m, rate)
	return run(t, m, key("enter"))
}

func TestModel_CheckInAndOut(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = run(t, m, m.Init()())

	m = checkIn(t, m, "Drill", "+1555", "10")

	assert.Equal(t, viewAvailable, m.view)
	assert.False(t, m.noticeErr, m.notice)
	require.Len(t, m.session.Available, 1)
	assert.Equal(t, "Drill", m.session.Available[0].EquipmentName)
	assert.Empty(t, m.form[0].Value())
	assert.Contains(t, m.View(), "Drill")

	m = run(t, m, key("o"))

	assert.False(t, m.noticeErr, m.notice)
	assert.Contains(t, m.notice, "1 day(s), cost 10.00")
	assert.Empty(t, m.session.Available)
}

func TestModel_FailedCheckInKeepsForm(t *testing.T) {
	m, api, _ := newTestModel(t)
	api.failNext = true

	m = checkIn(t, m, "Drill", "", "10")

	assert.True(t, m.noticeErr)
	assert.Equal(t, viewCheckIn, m.view)
	assert.Equal(t, "Drill", m.form[0].Value())
	assert.Equal(t, "10", m.form[2].Value())

	m = run(t, m, key("enter"))
	assert.False(t, m.noticeErr, m.notice)
	assert.Len(t, m.session.Available, 1)
}

func TestModel_CheckOutWithNothingSelected(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = run(t, m, key("o"))

	assert.True(t, m.noticeErr)
	assert.Contains(t, m.notice, equipment.ErrNoSelection.Error())
}

func TestModel_MaintenanceCopy(t *testing.T) {
	m, _, copied := newTestModel(t)
	m = checkIn(t, m, "Drill", "+1555", "10")

	m = run(t, m, key("m"))
	require.Equal(t, viewMaintenance, m.view)
	m = typeText(t, m, "blade stuck")
	m = run(t, m, key("enter"))

	require.False(t, m.noticeErr, m.notice)
	assert.Contains(t, m.generated, "Equipment: Drill (ID: 1)")
	assert.Contains(t, m.generated, "Issue: blade stuck")

	m = run(t, m, key("c"))
	require.Len(t, *copied, 1)
	assert.Equal(t, m.generated, (*copied)[0])

	m = run(t, m, key("esc"))
	assert.Equal(t, viewAvailable, m.view)
}

func TestModel_MaintenanceNeedsIssue(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = checkIn(t, m, "Drill", "", "10")

	m = run(t, m, key("m"))
	m = run(t, m, key("enter"))

	assert.True(t, m.noticeErr)
	assert.Empty(t, m.generated)
}

func TestModel_Export(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = checkIn(t, m, "Drill", "", "10")

	m = run(t, m, key("x"))

	require.False(t, m.noticeErr, m.notice)
	info, err := os.Stat(filepath.Join(m.exportDir, export.Filename))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestModel_PushedListClampsCursor(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = checkIn(t, m, "Drill", "", "10")
	m = checkIn(t, m, "Saw", "", "5")
	m = run(t, m, key("down"))
	require.Equal(t, 1, m.cursor)

	m = run(t, m, availableMsg([]domain.EquipmentRecord{m.session.Available[0]}))

	assert.Equal(t, 0, m.cursor)
	assert.Len(t, m.session.Available, 1)
}
