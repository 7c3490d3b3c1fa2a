package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextAdvancement(t *testing.T) {
	cases := []struct {
		round       int
		matchNumber int
		want        Advancement
	}{
		{1, 1, Advancement{Round: 2, MatchNumber: 1, Slot: 1}},
		{1, 2, Advancement{Round: 2, MatchNumber: 1, Slot: 2}},
		{1, 3, Advancement{Round: 2, MatchNumber: 2, Slot: 1}},
		{1, 4, Advancement{Round: 2, MatchNumber: 2, Slot: 2}},
		{1, 5, Advancement{Round: 2, MatchNumber: 3, Slot: 1}},
		{2, 1, Advancement{Round: 3, MatchNumber: 1, Slot: 1}},
		{2, 2, Advancement{Round: 3, MatchNumber: 1, Slot: 2}},
		{3, 7, Advancement{Round: 4, MatchNumber: 4, Slot: 1}},
		{3, 8, Advancement{Round: 4, MatchNumber: 4, Slot: 2}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("R%dM%d", tc.round, tc.matchNumber), func(t *testing.T) {
			assert.Equal(t, tc.want, NextAdvancement(tc.round, tc.matchNumber))
		})
	}
}
