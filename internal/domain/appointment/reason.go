package appointment

import "strings"

// ReasonOther is the catch-all category that needs a free-text note.
const ReasonOther = "other"

// Reason is a category from a fixed vocabulary plus a free-text note.
type Reason struct {
	Code string `json:"code"`
	Note string `json:"note"`
}

// ReasonSet is one closed vocabulary (cancellation, rejection, incident).
type ReasonSet interface {
	Allows(code string) bool
}

func ValidateReason(set ReasonSet, r Reason) error {
	code := strings.TrimSpace(r.Code)
	if code == "" {
		return ErrReasonRequired
	}
	if code != ReasonOther && (set == nil || !set.Allows(code)) {
		return ErrUnknownReason
	}
	if code == ReasonOther && strings.TrimSpace(r.Note) == "" {
		return ErrNoteRequired
	}
	return nil
}
