package dto

import (
	"strings"
)

type ClassCreateRequest struct {
	ClassName         string   `json:"class_name" validate:"required,max=160"`
	ClassCode         string   `json:"class_code" validate:"required,max=40"`
	ClassMeetingDays  []string `json:"class_meeting_days,omitempty" validate:"omitempty,dive,oneof=mon tue wed thu fri sat sun"`
	ClassSessionTotal int      `json:"class_session_total" validate:"omitempty,min=0"`
	ClassNote         *string  `json:"class_note,omitempty" validate:"omitempty,max=2000"`
}

func (r *ClassCreateRequest) Normalize() {
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.ClassCode = strings.ToUpper(strings.TrimSpace(r.ClassCode))
	for i := range r.ClassMeetingDays {
		r.ClassMeetingDays[i] = strings.ToLower(strings.TrimSpace(r.ClassMeetingDays[i]))
	}
	if r.ClassNote != nil {
		v := strings.TrimSpace(*r.ClassNote)
		if v == "" {
			r.ClassNote = nil
		} else {
			r.ClassNote = &v
		}
	}
}
