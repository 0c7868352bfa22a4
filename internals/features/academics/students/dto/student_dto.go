package dto

import (
	"strings"

	"github.com/google/uuid"
)

type StudentCreateRequest struct {
	StudentName               string     `json:"student_name" validate:"required,max=160"`
	StudentCode               string     `json:"student_code" validate:"required,max=40"`
	StudentPhone              *string    `json:"student_phone,omitempty" validate:"omitempty,max=32"`
	StudentClassID            *uuid.UUID `json:"student_class_id,omitempty"`
	StudentRegisteredSessions int        `json:"student_registered_sessions" validate:"omitempty,min=0"`
	StudentStatus             *string    `json:"student_status,omitempty" validate:"omitempty,oneof=active debt contract-debt reserved dropped trial expired-fee"`
}

func (r *StudentCreateRequest) Normalize() {
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.StudentCode = strings.ToUpper(strings.TrimSpace(r.StudentCode))
	if r.StudentPhone != nil {
		v := strings.TrimSpace(*r.StudentPhone)
		if v == "" {
			r.StudentPhone = nil
		} else {
			r.StudentPhone = &v
		}
	}
}

// StudentQuotaPatchRequest: koreksi manual kuota/status oleh admin.
// attended_sessions sengaja TIDAK bisa dipatch — itu hasil recount.
type StudentQuotaPatchRequest struct {
	StudentRegisteredSessions *int    `json:"student_registered_sessions,omitempty" validate:"omitempty,min=0"`
	StudentStatus             *string `json:"student_status,omitempty" validate:"omitempty,oneof=active debt contract-debt reserved dropped trial expired-fee"`
}
