package game

import "testing"

func TestEvaluateWin(t *testing.T) {
	tests := []struct {
		name        string
		mafiaAlive  int
		othersAlive int
		winner      Faction
		over        bool
	}{
		{"no mafia left", 0, 5, FactionCitizens, true},
		{"no mafia and no others", 0, 0, FactionCitizens, true},
		{"mafia outnumbered", 1, 2, "", false},
		{"mafia reach parity", 1, 1, FactionMafia, true},
		{"mafia outnumber", 3, 2, FactionMafia, true},
		{"game continues", 2, 6, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, over := EvaluateWin(tt.mafiaAlive, tt.othersAlive)
			if winner != tt.winner || over != tt.over {
				t.Errorf("EvaluateWin(%d, %d) = (%q, %v), want (%q, %v)",
					tt.mafiaAlive, tt.othersAlive, winner, over, tt.winner, tt.over)
			}
		})
	}
}
