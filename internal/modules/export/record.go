package export

import (
	"equiptrack/internal/domain"
)

// Field is one named cell of an exported row.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered flat row. Field order is kept in the sheet.
type Record []Field

// FromEquipment flattens rec in domain.ExportColumns order. Nil pointers
// become empty cells.
func FromEquipment(rec domain.EquipmentRecord) Record {
	var checkedOut, cost any = "", ""
	if rec.CheckedOutAt != nil {
		checkedOut = *rec.CheckedOutAt
	}
	if rec.Cost != nil {
		cost = *rec.Cost
	}
	created := ""
	if !rec.CreatedAt.IsZero() {
		created = rec.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	}

	return Record{
		{Name: "id", Value: rec.ID},
		{Name: "equipment_name", Value: rec.EquipmentName},
		{Name: "renter_number", Value: rec.RenterNumber},
		{Name: "rate", Value: rec.Rate},
		{Name: "status", Value: string(rec.Status)},
		{Name: "checked_in_at", Value: rec.CheckedInAt},
		{Name: "checked_out_at", Value: checkedOut},
		{Name: "cost", Value: cost},
		{Name: "created_at", Value: created},
	}
}

func FromEquipmentList(rows []domain.EquipmentRecord) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromEquipment(r))
	}
	return out
}
