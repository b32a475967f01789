package equipment

import (
	"context"
	"log"

	"equiptrack/internal/domain"
)

// CheckInForm holds the unsubmitted check-in fields.
type CheckInForm struct {
	EquipmentName string
	RenterNumber  string
	Rate          string
}

// Session is one operator's view: the last fetched available list, the
// current check-out selection and the check-in form. Nothing here is
// persisted; a failed action leaves every field as it was.
type Session struct {
	lc Lifecycle

	Available  []domain.EquipmentRecord
	SelectedID string
	Form       CheckInForm
}

func NewSession(lc Lifecycle) *Session {
	return &Session{lc: lc}
}

// Refresh reloads the available list. On error the previous list is kept.
func (s *Session) Refresh(ctx context.Context) error {
	rows, err := s.lc.ListAvailable(ctx)
	if err != nil {
		log.Printf("session_refresh_failed error=%v", err)
		return err
	}
	s.Available = rows
	return nil
}

// SetAvailable replaces the list with one pushed by the server.
func (s *Session) SetAvailable(rows []domain.EquipmentRecord) {
	s.Available = rows
}

func (s *Session) SubmitCheckIn(ctx context.Context) (*domain.EquipmentRecord, error) {
	rec, err := s.lc.CheckIn(ctx, CheckInRequest{
		EquipmentName: s.Form.EquipmentName,
		RenterNumber:  s.Form.RenterNumber,
		Rate:          RawValue(s.Form.Rate),
	})
	if err != nil {
		return nil, err
	}

	s.Form = CheckInForm{}
	// the check-in stands even if the reload fails; Refresh logs and keeps the old list
	s.Refresh(ctx)
	return rec, nil
}

func (s *Session) SubmitCheckOut(ctx context.Context) (*CheckOutResult, error) {
	if _, err := ParseID(s.SelectedID); err != nil {
		return nil, err
	}

	res, err := s.lc.CheckOut(ctx, s.SelectedID)
	if err != nil {
		return nil, err
	}

	s.SelectedID = ""
	s.Refresh(ctx)
	return res, nil
}

// Selected returns the available record matching SelectedID.
func (s *Session) Selected() (domain.EquipmentRecord, bool) {
	id, err := ParseID(s.SelectedID)
	if err != nil {
		return domain.EquipmentRecord{}, false
	}
	for _, r := range s.Available {
		if r.ID == id {
			return r, true
		}
	}
	return domain.EquipmentRecord{}, false
}
