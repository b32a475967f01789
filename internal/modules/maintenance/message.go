package maintenance

import (
	"fmt"
	"strings"

	"equiptrack/internal/domain"
)

const placeholder = "N/A"

// Generate renders the maintenance request text for a checked-in record.
func Generate(rec domain.EquipmentRecord, issue string) (string, error) {
	if strings.TrimSpace(issue) == "" {
		return "", ErrEmptyIssue
	}
	if !rec.IsCheckedIn() {
		return "", ErrNotCheckedIn
	}

	return fmt.Sprintf(`🔧 Maintenance Request

Equipment: %s (ID: %d)
Issue: %s
Checked in on: %s
Renter contact: %s`,
		rec.EquipmentName,
		rec.ID,
		issue,
		orPlaceholder(rec.CheckedInAt),
		orPlaceholder(rec.RenterNumber),
	), nil
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
