package cli

import "testing"

func TestDiagramStatsString(t *testing.T) {
	tests := []struct {
		s    diagramStats
		want string
	}{
		{diagramStats{lifelines: 2, messages: 1}, "2 lifelines · 1 messages · fresh"},
		{diagramStats{lifelines: 3, executions: 1, comments: 2, cached: true}, "3 lifelines · 1 executions · 2 comments · cached"},
		{diagramStats{}, "fresh"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
