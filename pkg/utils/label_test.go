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
			name:     "empty existing takes incoming",
			existing: Label{},
			incoming: Label{Value: "catalog", Source: "recall"},
			want:     Label{Value: "catalog", Source: "recall"},
		},
		{
			name:     "empty incoming keeps existing",
			existing: Label{Value: "catalog", Source: "recall"},
			incoming: Label{},
			want:     Label{Value: "catalog", Source: "recall"},
		},
		{
			name:     "values and sources accumulate",
			existing: Label{Value: "genre", Source: "filter"},
			incoming: Label{Value: "exclusion", Source: "filter"},
			want:     Label{Value: "genre|exclusion", Source: "filter,filter"},
		},
		{
			name:     "missing source is filled",
			existing: Label{Value: "a"},
			incoming: Label{Value: "b", Source: "rank"},
			want:     Label{Value: "a|b", Source: "rank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLabelString(t *testing.T) {
	if got := (Label{Value: "rating_desc", Source: "rank"}).String(); got != "rating_desc@rank" {
		t.Errorf("String() = %q", got)
	}
	if got := (Label{Value: "x"}).String(); got != "x" {
		t.Errorf("String() = %q", got)
	}
}
