package game

import "testing"

func TestStrictPlurality(t *testing.T) {
	tests := []struct {
		name    string
		targets []uint
		want    uint
		ok      bool
	}{
		{"empty ballot", nil, 0, false},
		{"single vote", []uint{7}, 7, true},
		{"clear winner", []uint{3, 3, 5}, 3, true},
		{"two way tie", []uint{3, 3, 5, 5}, 0, false},
		{"all different", []uint{1, 2, 3}, 0, false},
		{"winner over split field", []uint{9, 9, 9, 1, 2}, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StrictPlurality(tt.targets)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("StrictPlurality(%v) = (%d, %v), want (%d, %v)",
					tt.targets, got, ok, tt.want, tt.ok)
			}
		})
	}
}
