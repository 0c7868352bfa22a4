package service

import (
	attendanceDTO "kursusku_backend/internals/features/attendance/attendance_records/dto"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
)

/* ========================================================
   Entry Normalizer — pure, tanpa I/O.

   Roster boleh disubmit sebelum semua murid ditandai;
   entri pending ("") dibuang dari set yang dipersist DAN
   dari semua agregat. Hanya mark final yang durable.
   ======================================================== */

type RosterAggregates struct {
	Present  int `json:"present"`  // on-time + late
	Absent   int `json:"absent"`
	Reserved int `json:"reserved"`
	Tutored  int `json:"tutored"`
}

// Finalized: jumlah entri final = present+absent+reserved+tutored
func (a RosterAggregates) Finalized() int {
	return a.Present + a.Absent + a.Reserved + a.Tutored
}

// NormalizeRoster memfilter roster ke subset final dan menghitung agregatnya.
func NormalizeRoster(roster []attendanceDTO.RosterEntryRequest) ([]attendanceDTO.RosterEntryRequest, RosterAggregates) {
	finalized := make([]attendanceDTO.RosterEntryRequest, 0, len(roster))
	var agg RosterAggregates

	for _, e := range roster {
		if !e.Status.Final() {
			continue
		}
		finalized = append(finalized, e)

		switch e.Status {
		case attendanceModel.EntryMarkOnTime, attendanceModel.EntryMarkLate:
			agg.Present++
		case attendanceModel.EntryMarkAbsent:
			agg.Absent++
		case attendanceModel.EntryMarkReserved:
			agg.Reserved++
		case attendanceModel.EntryMarkTutored:
			agg.Tutored++
		}
	}
	return finalized, agg
}
