package equipment

import (
	"bytes"
	"encoding/json"
	"strconv"

	"equiptrack/internal/domain"
)

// CheckInRequest carries raw form input; Rate is parsed by the service.
type CheckInRequest struct {
	EquipmentName string   `json:"equipment_name" validate:"required"`
	RenterNumber  string   `json:"renter_number" validate:"max=64"`
	Rate          RawValue `json:"rate" validate:"required"`
}

type CheckOutResult struct {
	Record   domain.EquipmentRecord `json:"record"`
	DaysUsed int                    `json:"days_used"`
	Cost     float64                `json:"cost"`
}

// RawValue accepts a JSON string or number and keeps its text, so "12.5" and
// 12.5 go through the same parsing as form input.
type RawValue string

func (v *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = RawValue(n.String())
	return nil
}

func (v RawValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func FormatRate(rate float64) RawValue {
	return RawValue(strconv.FormatFloat(rate, 'f', -1, 64))
}
