package brackets

// Advancement names the downstream slot fed by a completed elimination
// match: the match at (Round, MatchNumber), slot 1 or 2.
type Advancement struct {
	Round       int
	MatchNumber int
	Slot        int
}

// NextAdvancement computes where the winner of the match at
// (round, matchNumber) moves: round+1, match ceil(matchNumber/2). Winners
// of odd-numbered matches take slot 1, even-numbered take slot 2, mirroring
// the consecutive pairing rule of the generator. For the final there is no
// match at the returned position; callers treat the missing lookup as the
// end of progression.
func NextAdvancement(round, matchNumber int) Advancement {
	slot := 2
	if matchNumber%2 == 1 {
		slot = 1
	}
	return Advancement{
		Round:       round + 1,
		MatchNumber: (matchNumber + 1) / 2,
		Slot:        slot,
	}
}
