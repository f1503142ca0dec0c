package game

import (
	"math/rand"

	"mafianight/backend/internal/models"
)

// Distribution is the per-role head count for a room of a given capacity.
type Distribution struct {
	Mafia    int `json:"mafia"`
	Doctor   int `json:"doctor"`
	Police   int `json:"police"`
	Citizens int `json:"citizens"`
}

// roleFraction is the desired share of each special role.
const roleFraction = 0.2

// RoleDistribution maps a room capacity to role counts. Capacity is clamped
// to [MinPlayers, MaxPlayers]; mafia, doctor and police each get
// max(2, floor(0.2*capacity)) and citizens take the remainder. Should the
// remainder ever go negative, special roles are reduced one at a time in the
// fixed order police, doctor, mafia down to a floor of 2 each. The reduction
// order is a product decision and must not be reordered.
func RoleDistribution(capacity int) Distribution {
	n := capacity
	if n < models.MinPlayers {
		n = models.MinPlayers
	}
	if n > models.MaxPlayers {
		n = models.MaxPlayers
	}

	special := int(float64(n) * roleFraction)
	if special < 2 {
		special = 2
	}

	d := Distribution{Mafia: special, Doctor: special, Police: special}
	d.Citizens = n - (d.Mafia + d.Doctor + d.Police)

	for i := 0; d.Citizens < 0; i++ {
		switch i % 3 {
		case 0:
			if d.Police > 2 {
				d.Police--
			}
		case 1:
			if d.Doctor > 2 {
				d.Doctor--
			}
		case 2:
			if d.Mafia > 2 {
				d.Mafia--
			}
		}
		d.Citizens = n - (d.Mafia + d.Doctor + d.Police)
		if i > 10 {
			break
		}
	}

	return d
}

// Total returns the number of players the distribution covers.
func (d Distribution) Total() int {
	return d.Mafia + d.Doctor + d.Police + d.Citizens
}

// Roles expands the distribution into its role multiset, grouped by role.
func (d Distribution) Roles() []models.Role {
	roles := make([]models.Role, 0, d.Total())
	for i := 0; i < d.Mafia; i++ {
		roles = append(roles, models.RoleMafia)
	}
	for i := 0; i < d.Doctor; i++ {
		roles = append(roles, models.RoleDoctor)
	}
	for i := 0; i < d.Police; i++ {
		roles = append(roles, models.RolePolice)
	}
	for i := 0; i < d.Citizens; i++ {
		roles = append(roles, models.RoleCitizen)
	}
	return roles
}

// Shuffled returns the role multiset in uniformly random order. Callers hand
// out roles[i] to the player in seat order i; with fewer seated players than
// capacity the tail of the slice simply goes unused.
func (d Distribution) Shuffled() []models.Role {
	roles := d.Roles()
	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	return roles
}
