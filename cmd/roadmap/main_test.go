package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectWeekLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"roadmap"},
			want: []string{"roadmap"},
		},
		{
			name: "direct week ref first token",
			in:   []string{"roadmap", "week-7"},
			want: []string{"roadmap", "weeks", "show", "7"},
		},
		{
			name: "week ref after persistent flags",
			in:   []string{"roadmap", "--dir", "/tmp/x", "week-12"},
			want: []string{"roadmap", "--dir", "/tmp/x", "weeks", "show", "12"},
		},
		{
			name: "bool flag before ref",
			in:   []string{"roadmap", "--pretty", "week-3"},
			want: []string{"roadmap", "--pretty", "weeks", "show", "3"},
		},
		{
			name: "plain subcommand untouched",
			in:   []string{"roadmap", "weeks", "list"},
			want: []string{"roadmap", "weeks", "list"},
		},
		{
			name: "non-numeric suffix untouched",
			in:   []string{"roadmap", "week-abc"},
			want: []string{"roadmap", "week-abc"},
		},
		{
			name: "bare prefix untouched",
			in:   []string{"roadmap", "week-"},
			want: []string{"roadmap", "week-"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectWeekLookupArgs(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsWeekRef(t *testing.T) {
	t.Parallel()

	for ref, want := range map[string]bool{
		"week-1":   true,
		"week-52":  true,
		" week-9 ": true,
		"week-":    false,
		"week-x1":  false,
		"weeks":    false,
		"7":        false,
	} {
		if got := isWeekRef(ref); got != want {
			t.Fatalf("isWeekRef(%q) = %v, want %v", ref, got, want)
		}
	}
}
