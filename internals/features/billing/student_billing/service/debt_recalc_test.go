package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studentModel "kursusku_backend/internals/features/academics/students/model"
)

func activeStudent(registered int) *studentModel.StudentModel {
	return &studentModel.StudentModel{
		StudentRegisteredSessions: registered,
		StudentStatus:             studentModel.StudentStatusActive,
	}
}

func TestApplyAttendedCount(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		student      *studentModel.StudentModel
		attended     int
		wantStatus   studentModel.StudentStatus
		wantDebt     int
		wantDebtTime bool
	}{
		{
			name:       "di bawah kuota tetap active",
			student:    activeStudent(10),
			attended:   9,
			wantStatus: studentModel.StudentStatusActive,
		},
		{
			name:       "pas kuota belum debt (hanya kelebihan strict)",
			student:    activeStudent(10),
			attended:   10,
			wantStatus: studentModel.StudentStatusActive,
		},
		{
			name:         "lewat kuota → debt dengan overage",
			student:      activeStudent(10),
			attended:     11,
			wantStatus:   studentModel.StudentStatusDebt,
			wantDebt:     1,
			wantDebtTime: true,
		},
		{
			name:         "overage lebih dari satu",
			student:      activeStudent(8),
			attended:     12,
			wantStatus:   studentModel.StudentStatusDebt,
			wantDebt:     4,
			wantDebtTime: true,
		},
		{
			name:       "kuota 0 = belum dikonfigurasi, tidak pernah debt",
			student:    activeStudent(0),
			attended:   50,
			wantStatus: studentModel.StudentStatusActive,
		},
		{
			name: "status trial tidak disentuh",
			student: &studentModel.StudentModel{
				StudentRegisteredSessions: 5,
				StudentStatus:             studentModel.StudentStatusTrial,
			},
			attended:   9,
			wantStatus: studentModel.StudentStatusTrial,
		},
		{
			name: "status dropped tidak disentuh",
			student: &studentModel.StudentModel{
				StudentRegisteredSessions: 5,
				StudentStatus:             studentModel.StudentStatusDropped,
			},
			attended:   9,
			wantStatus: studentModel.StudentStatusDropped,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ApplyAttendedCount(tt.student, tt.attended, now)

			assert.Equal(t, tt.attended, tt.student.StudentAttendedSessions)
			assert.Equal(t, tt.wantStatus, tt.student.StudentStatus)
			assert.Equal(t, tt.wantDebt, tt.student.StudentDebtSessions)
			if tt.wantDebtTime {
				require.NotNil(t, tt.student.StudentDebtStartedAt)
				assert.Equal(t, now, *tt.student.StudentDebtStartedAt)
			} else {
				assert.Nil(t, tt.student.StudentDebtStartedAt)
			}

			// remaining tidak pernah negatif
			assert.GreaterOrEqual(t, tt.student.StudentRemainingSessions, 0)
		})
	}
}

// Transisi active → debt satu arah: sekali debt, recount berikutnya
// tidak membalikkan status dan tidak menyentuh debt_started_at.
func TestApplyAttendedCountDebtMonotonic(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)

	student := activeStudent(10)

	ApplyAttendedCount(student, 11, now)
	require.Equal(t, studentModel.StudentStatusDebt, student.StudentStatus)
	require.Equal(t, 1, student.StudentDebtSessions)
	firstDebtAt := *student.StudentDebtStartedAt

	// hadir terus setelah debt
	ApplyAttendedCount(student, 12, later)
	assert.Equal(t, studentModel.StudentStatusDebt, student.StudentStatus)
	assert.Equal(t, 12, student.StudentAttendedSessions)
	// guard hanya jalan saat active → jejak debt pertama tidak ditimpa
	assert.Equal(t, 1, student.StudentDebtSessions)
	assert.Equal(t, firstDebtAt, *student.StudentDebtStartedAt)

	// entri historis dihapus → recount turun, status TETAP debt
	ApplyAttendedCount(student, 9, later)
	assert.Equal(t, studentModel.StudentStatusDebt, student.StudentStatus)
	assert.Equal(t, 9, student.StudentAttendedSessions)
}

// Recompute stability: recount dengan angka sama dua kali = hasil identik.
func TestApplyAttendedCountIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	a := activeStudent(10)
	b := activeStudent(10)

	ApplyAttendedCount(a, 11, now)
	ApplyAttendedCount(b, 11, now)
	ApplyAttendedCount(b, 11, now)

	assert.Equal(t, a.StudentStatus, b.StudentStatus)
	assert.Equal(t, a.StudentAttendedSessions, b.StudentAttendedSessions)
	assert.Equal(t, a.StudentDebtSessions, b.StudentDebtSessions)
	assert.Equal(t, *a.StudentDebtStartedAt, *b.StudentDebtStartedAt)
}
