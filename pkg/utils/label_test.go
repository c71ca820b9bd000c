package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "both present accumulate",
			existing: Label{Value: "similar", Source: "recall"},
			incoming: Label{Value: "top_picks", Source: "personalize"},
			want:     Label{Value: "similar|top_picks", Source: "recall,personalize"},
		},
		{
			name:     "empty existing takes incoming",
			existing: Label{},
			incoming: Label{Value: "v", Source: "s"},
			want:     Label{Value: "v", Source: "s"},
		},
		{
			name:     "empty incoming keeps existing",
			existing: Label{Value: "v", Source: "s"},
			incoming: Label{},
			want:     Label{Value: "v", Source: "s"},
		},
		{
			name:     "missing incoming source",
			existing: Label{Value: "a", Source: "s1"},
			incoming: Label{Value: "b"},
			want:     Label{Value: "a|b", Source: "s1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel = %+v, want %+v", got, tt.want)
			}
		})
	}
}
