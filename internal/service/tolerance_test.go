package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/presensi-admin-api/internal/models"
)

func TestTallyTolerance(t *testing.T) {
	cases := []struct {
		name   string
		late   int
		absent int
		want   ToleranceStatus
	}{
		{name: "no events", late: 0, absent: 0, want: ToleranceOK},
		{name: "below limit", late: 1, absent: 1, want: ToleranceOK},
		{name: "late at limit", late: 3, absent: 0, want: ToleranceReached},
		{name: "absent at limit", late: 0, absent: 3, want: ToleranceReached},
		{name: "combined at limit", late: 2, absent: 1, want: ToleranceReached},
		{name: "combined over limit", late: 2, absent: 2, want: ToleranceExceeded},
		{name: "late over limit", late: 4, absent: 0, want: ToleranceExceeded},
		{name: "absent over limit", late: 0, absent: 4, want: ToleranceExceeded},
		{name: "late at limit with extra absent", late: 3, absent: 1, want: ToleranceExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tally := Tally{Late: tc.late, Absent: tc.absent}
			require.Equal(t, tc.want, tally.Tolerance())
		})
	}
}

func TestRollupTalliesExceededWins(t *testing.T) {
	rollup := RollupTallies([]Tally{
		{Late: 4},
		{Late: 3},
		{Absent: 1},
	})

	require.True(t, rollup.Exceeded)
	require.False(t, rollup.Reached, "an exceeded course suppresses the reached flag")
	require.Equal(t, 7, rollup.Late)
	require.Equal(t, 1, rollup.Absent)
}

func TestRollupTalliesReachedOnly(t *testing.T) {
	rollup := RollupTallies([]Tally{
		{Late: 3},
		{Late: 1, Absent: 1},
	})

	require.False(t, rollup.Exceeded)
	require.True(t, rollup.Reached)
}

func TestRollupTalliesEmpty(t *testing.T) {
	rollup := RollupTallies(nil)

	require.False(t, rollup.Exceeded)
	require.False(t, rollup.Reached)
	require.Zero(t, rollup.Late)
	require.Zero(t, rollup.Absent)
}

func TestClassifyPermissionReason(t *testing.T) {
	cases := []struct {
		reason string
		bucket string
		mapped bool
	}{
		{reason: "sick", bucket: models.AttendanceStatusSick, mapped: true},
		{reason: "Medical Appointment", bucket: models.AttendanceStatusSick, mapped: true},
		{reason: " family emergency ", bucket: models.AttendanceStatusExcused, mapped: true},
		{reason: "personal matter", bucket: models.AttendanceStatusExcused, mapped: true},
		{reason: "Other", bucket: models.AttendanceStatusExcused, mapped: true},
		{reason: "vacation", mapped: false},
		{reason: "", mapped: false},
	}

	for _, tc := range cases {
		t.Run(tc.reason, func(t *testing.T) {
			bucket, mapped := classifyPermissionReason(tc.reason)
			require.Equal(t, tc.mapped, mapped)
			require.Equal(t, tc.bucket, bucket)
		})
	}
}
