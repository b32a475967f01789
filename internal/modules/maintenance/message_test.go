package maintenance

import (
	"testing"

	"equiptrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drill() domain.EquipmentRecord {
	return domain.EquipmentRecord{
		ID:            7,
		EquipmentName: "Drill",
		RenterNumber:  "+1555",
		Rate:          10,
		Status:        domain.StatusCheckedIn,
		CheckedInAt:   "2024-01-01",
	}
}

func TestGenerate_ContainsAllFields(t *testing.T) {
	msg, err := Generate(drill(), "blade stuck")

	require.NoError(t, err)
	assert.Contains(t, msg, "Drill")
	assert.Contains(t, msg, "7")
	assert.Contains(t, msg, "blade stuck")
	assert.Contains(t, msg, "2024-01-01")
	assert.Contains(t, msg, "+1555")
	assert.Equal(t, "🔧 Maintenance Request\n\n"+
		"Equipment: Drill (ID: 7)\n"+
		"Issue: blade stuck\n"+
		"Checked in on: 2024-01-01\n"+
		"Renter contact: +1555", msg)
}

func TestGenerate_Placeholders(t *testing.T) {
	rec := drill()
	rec.RenterNumber = ""
	rec.CheckedInAt = ""

	msg, err := Generate(rec, "motor smells burnt")

	require.NoError(t, err)
	assert.Contains(t, msg, "Checked in on: N/A")
	assert.Contains(t, msg, "Renter contact: N/A")
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _ := Generate(drill(), "blade stuck")
	b, _ := Generate(drill(), "blade stuck")
	assert.Equal(t, a, b)
}

func TestGenerate_Rejects(t *testing.T) {
	_, err := Generate(drill(), "   ")
	assert.ErrorIs(t, err, ErrEmptyIssue)

	rec := drill()
	rec.Status = domain.StatusCheckedOut
	_, err = Generate(rec, "blade stuck")
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}
