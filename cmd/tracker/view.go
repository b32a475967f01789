package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	messageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#0a84ff")).
			Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder

	switch m.view {
	case viewCheckIn:
		b.WriteString(titleStyle.Render("Check In Equipment") + "\n\n")
		for i, label := range []string{"Name", "Renter", "Rate"} {
			fmt.Fprintf(&b, "%-8s %s\n", label, m.form[i].View())
		}
		b.WriteString(helpStyle.Render("\ntab next field • enter submit • esc back") + "\n")

	case viewMaintenance:
		b.WriteString(titleStyle.Render("Maintenance Request") + "\n\n")
		if rec, ok := m.session.Selected(); ok {
			fmt.Fprintf(&b, "Equipment: %s (ID: %d)\n\n", rec.EquipmentName, rec.ID)
		}
		b.WriteString(m.issue.View() + "\n")
		if m.generated != "" {
			b.WriteString("\n" + messageStyle.Render(m.generated) + "\n")
		}
		if m.issue.Focused() {
			b.WriteString(helpStyle.Render("\nenter generate • esc back") + "\n")
		} else {
			b.WriteString(helpStyle.Render("\nc copy • e edit issue • esc back") + "\n")
		}

	default:
		b.WriteString(titleStyle.Render("Available Equipment") + "\n\n")
		if len(m.session.Available) == 0 {
			b.WriteString("Nothing is checked in.\n")
		}
		for i, rec := range m.session.Available {
			renter := rec.RenterNumber
			if renter == "" {
				renter = "-"
			}
			line := fmt.Sprintf("#%-4d %-24s %-14s %8.2f/day  since %s",
				rec.ID, rec.EquipmentName, renter, rec.Rate, rec.CheckedInAt)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
		b.WriteString(helpStyle.Render("\n↑/↓ select • o check out • n check in • m maintenance • x export • r refresh • q quit") + "\n")
	}

	if m.busy {
		b.WriteString("\nWorking...\n")
	}
	if m.notice != "" {
		if m.noticeErr {
			b.WriteString("\n" + errorStyle.Render(m.notice) + "\n")
		} else {
			b.WriteString("\n" + successStyle.Render(m.notice) + "\n")
		}
	}

	return docStyle.Render(b.String())
}
