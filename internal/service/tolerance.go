package service

import (
	"strings"

	"github.com/noah-isme/presensi-admin-api/internal/models"
)

// ToleranceLimit is the fixed late/absent threshold. Changing it is a
// behavior-breaking change for API consumers.
const ToleranceLimit = 3

// ToleranceStatus classifies an enrollment tally against the limit.
type ToleranceStatus string

// Tolerance classifications.
const (
	ToleranceOK       ToleranceStatus = "ok"
	ToleranceReached  ToleranceStatus = "reached"
	ToleranceExceeded ToleranceStatus = "exceeded"
)

// Tally holds attendance outcome counts for a single enrollment. Total only
// counts events that landed in one of the five buckets; permissions with an
// unmapped reason contribute nothing.
type Tally struct {
	Present int
	Late    int
	Absent  int
	Sick    int
	Excused int
	Total   int
}

// Tolerance evaluates the tally against ToleranceLimit. Exceeded is checked
// first, so exceeded and reached are mutually exclusive.
func (t Tally) Tolerance() ToleranceStatus {
	total := t.Late + t.Absent
	switch {
	case total > ToleranceLimit || t.Late > ToleranceLimit || t.Absent > ToleranceLimit:
		return ToleranceExceeded
	case total == ToleranceLimit || t.Late == ToleranceLimit || t.Absent == ToleranceLimit:
		return ToleranceReached
	default:
		return ToleranceOK
	}
}

// StudentRollup combines per-course tallies into a per-student view. The
// flags are per-course decisions: one exceeded course marks the student
// exceeded regardless of the others.
type StudentRollup struct {
	Late     int
	Absent   int
	Exceeded bool
	Reached  bool
}

// RollupTallies folds course tallies into a student-level rollup. Late and
// absent sums are for display only; the flags carry the classification.
func RollupTallies(tallies []Tally) StudentRollup {
	var rollup StudentRollup
	for _, tally := range tallies {
		rollup.Late += tally.Late
		rollup.Absent += tally.Absent

		switch tally.Tolerance() {
		case ToleranceExceeded:
			rollup.Exceeded = true
		case ToleranceReached:
			rollup.Reached = true
		}
	}

	if rollup.Exceeded {
		rollup.Reached = false
	}

	return rollup
}

// classifyPermissionReason maps an approved permission's reason text to an
// attendance bucket. Matching is lower-cased and trimmed; reasons outside the
// known set are silently ignored.
func classifyPermissionReason(reason string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(reason)) {
	case "sick", "medical appointment":
		return models.AttendanceStatusSick, true
	case "family emergency", "personal matter", "other":
		return models.AttendanceStatusExcused, true
	default:
		return "", false
	}
}
