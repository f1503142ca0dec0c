package game

// Faction identifies a winning side.
type Faction string

const (
	FactionCitizens Faction = "citizens"
	FactionMafia    Faction = "mafia"
)

// EvaluateWin decides whether the game has ended given the current alive
// counts. Rules are checked in order: no mafia left means the citizens win;
// mafia matching or outnumbering everyone else means the mafia win (they
// control the vote); anything else continues the game. This must run after
// every elimination event, not only at day end.
func EvaluateWin(mafiaAlive, othersAlive int) (Faction, bool) {
	if mafiaAlive == 0 {
		return FactionCitizens, true
	}
	if mafiaAlive >= othersAlive {
		return FactionMafia, true
	}
	return "", false
}
