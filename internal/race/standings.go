package race

// ahead reports whether a is further along the course than b. target is
// the checkpoint a is driving toward.
func ahead(a, b *Car, target Vec2) bool {
	if a.Lap != b.Lap {
		return a.Lap > b.Lap
	}
	// Within a lap NextCheck only grows: 0 means the start line is still ahead.
	if a.NextCheck != b.NextCheck {
		return a.NextCheck > b.NextCheck
	}
	return a.Pos.Sub(target).Length() < b.Pos.Sub(target).Length()
}

// ComparePosition swaps the race positions of a and b when a is listed
// behind b but is actually ahead of it.
func ComparePosition(a, b *Car, target Vec2) bool {
	if a.RacePos <= b.RacePos || !ahead(a, b, target) {
		return false
	}
	a.RacePos, b.RacePos = b.RacePos, a.RacePos
	return true
}

// UpdateStandings compares every ordered pair of cars once.
func UpdateStandings(cars []*Car, checkpoints []*Checkpoint) {
	for _, a := range cars {
		target := checkpoints[a.NextCheck%len(checkpoints)].Pos
		for _, b := range cars {
			if a != b {
				ComparePosition(a, b, target)
			}
		}
	}
}
