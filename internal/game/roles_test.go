package game

import (
	"testing"

	"mafianight/backend/internal/models"
)

func TestRoleDistributionCoversEverySeat(t *testing.T) {
	for n := models.MinPlayers; n <= models.MaxPlayers; n++ {
		d := RoleDistribution(n)
		if d.Total() != n {
			t.Errorf("capacity %d: distribution covers %d seats", n, d.Total())
		}
		if d.Mafia < 2 || d.Doctor < 2 || d.Police < 2 {
			t.Errorf("capacity %d: special role below floor: %+v", n, d)
		}
		if d.Citizens < 0 {
			t.Errorf("capacity %d: negative citizens: %+v", n, d)
		}
	}
}

func TestRoleDistributionKnownCapacities(t *testing.T) {
	tests := []struct {
		capacity int
		want     Distribution
	}{
		{10, Distribution{Mafia: 2, Doctor: 2, Police: 2, Citizens: 4}},
		{15, Distribution{Mafia: 3, Doctor: 3, Police: 3, Citizens: 6}},
		{20, Distribution{Mafia: 4, Doctor: 4, Police: 4, Citizens: 8}},
	}
	for _, tt := range tests {
		if got := RoleDistribution(tt.capacity); got != tt.want {
			t.Errorf("RoleDistribution(%d) = %+v, want %+v", tt.capacity, got, tt.want)
		}
	}
}

func TestRoleDistributionClampsCapacity(t *testing.T) {
	if got, want := RoleDistribution(3), RoleDistribution(models.MinPlayers); got != want {
		t.Errorf("capacity below minimum: got %+v, want %+v", got, want)
	}
	if got, want := RoleDistribution(50), RoleDistribution(models.MaxPlayers); got != want {
		t.Errorf("capacity above maximum: got %+v, want %+v", got, want)
	}
}

func TestShuffledPreservesRoleCounts(t *testing.T) {
	d := RoleDistribution(13)
	roles := d.Shuffled()
	if len(roles) != d.Total() {
		t.Fatalf("got %d roles, want %d", len(roles), d.Total())
	}

	counts := make(map[models.Role]int)
	for _, r := range roles {
		counts[r]++
	}
	if counts[models.RoleMafia] != d.Mafia ||
		counts[models.RoleDoctor] != d.Doctor ||
		counts[models.RolePolice] != d.Police ||
		counts[models.RoleCitizen] != d.Citizens {
		t.Errorf("shuffle changed role counts: %v, want %+v", counts, d)
	}
}
