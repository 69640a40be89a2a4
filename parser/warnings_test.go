package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWarnings_Policies(t *testing.T) {
	tests := []struct {
		name       string
		policy     WarningPolicy
		cap        int
		add        int
		wantPos    []int
		wantIssue  Issue
		suppressed int
	}{
		{name: "none", policy: WarnNone, cap: 3, add: 2, wantPos: nil},
		{name: "all_ignores_cap", policy: WarnAll, cap: 2, add: 5, wantPos: []int{0, 1, 2, 3, 4}, wantIssue: IssueLoneBrace},
		{name: "truncate_under_cap", policy: WarnTruncate, cap: 3, add: 2, wantPos: []int{0, 1}, wantIssue: IssueLoneBrace},
		// the reserved slot takes a single extra warning as is
		{name: "truncate_exact", policy: WarnTruncate, cap: 3, add: 3, wantPos: []int{0, 1, 2}, wantIssue: IssueLoneBrace, suppressed: 1},
		{name: "truncate_marker", policy: WarnTruncate, cap: 3, add: 6, wantPos: []int{0, 1, 2}, wantIssue: IssueWarningsTruncated, suppressed: 4},
		{name: "truncate_cap_one", policy: WarnTruncate, cap: 1, add: 2, wantPos: []int{0}, wantIssue: IssueWarningsTruncated, suppressed: 2},
		{name: "truncate_cap_zero", policy: WarnTruncate, cap: 0, add: 2, wantPos: nil, suppressed: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := NewWarnings(tc.policy, tc.cap)
			require.NoError(t, err)

			for i := range tc.add {
				w.Add(Warning{Issue: IssueLoneBrace, Pos: i})
			}

			list := w.List()

			var got []int
			for _, item := range list {
				got = append(got, item.Pos)
			}

			require.Equal(t, tc.wantPos, got)
			require.Equal(t, tc.suppressed, w.Suppressed())

			if len(list) > 0 {
				require.Equal(t, tc.wantIssue, list[len(list)-1].Issue)
			}
		})
	}
}

func TestWarnings_ListIsStable(t *testing.T) {
	w, err := NewWarnings(WarnTruncate, 2)
	require.NoError(t, err)

	for i := range 4 {
		w.Add(Warning{Issue: IssueLoneBrace, Pos: i})
	}

	first := w.List()
	second := w.List()
	require.Equal(t, first, second)
	require.Equal(t, "3 more warnings suppressed", second[1].Description)
	require.Len(t, first, 2)
}

func TestNewWarnings_NegativeCap(t *testing.T) {
	_, err := NewWarnings(WarnTruncate, -1)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, IssueNegativeWarningsCap, ce.Issue)
}

func TestWarningPolicy_String(t *testing.T) {
	require.Equal(t, "truncate", WarnTruncate.String())
	require.Equal(t, "WarningPolicy(9)", WarningPolicy(9).String())
}
