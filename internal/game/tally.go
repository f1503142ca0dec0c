package game

// StrictPlurality tallies target frequencies and returns the target with the
// strictly highest count. A tie for the highest count, or an empty ballot,
// yields no winner, which resolvers treat as "no elimination".
func StrictPlurality(targets []uint) (uint, bool) {
	if len(targets) == 0 {
		return 0, false
	}

	counts := make(map[uint]int, len(targets))
	for _, t := range targets {
		counts[t]++
	}

	var top uint
	max, holders := 0, 0
	for target, count := range counts {
		switch {
		case count > max:
			max, holders, top = count, 1, target
		case count == max:
			holders++
		}
	}

	if holders != 1 {
		return 0, false
	}
	return top, true
}
