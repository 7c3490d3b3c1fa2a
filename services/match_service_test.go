package services

import (
	"context"
	"testing"

	"github.com/Dosada05/card-tournaments/brackets"
	"github.com/Dosada05/card-tournaments/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func statusPtr(s models.MatchStatus) *models.MatchStatus { return &s }

// fourPlayerBracket builds the standard 4-player single elimination layout:
// round 1 holds two seeded matches, round 2 the empty final.
func fourPlayerBracket() *fakeMatchRepo {
	return &fakeMatchRepo{matches: []*models.Match{
		{ID: "m1", TournamentID: "t1", RoundNumber: 1, MatchNumber: 1,
			Player1ID: strPtr("alice"), Player2ID: strPtr("bob"), Status: models.MatchStatusPending},
		{ID: "m2", TournamentID: "t1", RoundNumber: 1, MatchNumber: 2,
			Player1ID: strPtr("carol"), Player2ID: strPtr("dave"), Status: models.MatchStatusPending},
		{ID: "final", TournamentID: "t1", RoundNumber: 2, MatchNumber: 1,
			Status: models.MatchStatusPending},
	}}
}

func newMatchServiceForTest(matchRepo *fakeMatchRepo) MatchService {
	return NewMatchService(matchRepo, brackets.NewHub(), testLogger())
}

func TestUpdateMatchCompletionAdvancesWinner(t *testing.T) {
	matchRepo := fourPlayerBracket()
	svc := newMatchServiceForTest(matchRepo)

	updated, err := svc.UpdateMatch(context.Background(), "m1", UpdateMatchInput{
		WinnerID:     strPtr("alice"),
		Player1Score: intPtr(2),
		Player2Score: intPtr(1),
		Status:       statusPtr(models.MatchStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	final, err := matchRepo.GetByID(context.Background(), "final")
	require.NoError(t, err)
	require.NotNil(t, final.Player1ID, "odd match number feeds slot 1")
	assert.Equal(t, "alice", *final.Player1ID)
	assert.Nil(t, final.Player2ID)
}

func TestUpdateMatchEvenMatchNumberFeedsSlotTwo(t *testing.T) {
	matchRepo := fourPlayerBracket()
	svc := newMatchServiceForTest(matchRepo)

	_, err := svc.UpdateMatch(context.Background(), "m2", UpdateMatchInput{
		WinnerID: strPtr("carol"),
		Status:   statusPtr(models.MatchStatusCompleted),
	})
	require.NoError(t, err)

	final, err := matchRepo.GetByID(context.Background(), "final")
	require.NoError(t, err)
	assert.Nil(t, final.Player1ID)
	require.NotNil(t, final.Player2ID)
	assert.Equal(t, "carol", *final.Player2ID)
}

func TestUpdateMatchFinalCompletionIsTerminal(t *testing.T) {
	matchRepo := fourPlayerBracket()
	svc := newMatchServiceForTest(matchRepo)

	_, err := svc.UpdateMatch(context.Background(), "m1", UpdateMatchInput{
		WinnerID: strPtr("alice"), Status: statusPtr(models.MatchStatusCompleted),
	})
	require.NoError(t, err)
	_, err = svc.UpdateMatch(context.Background(), "m2", UpdateMatchInput{
		WinnerID: strPtr("dave"), Status: statusPtr(models.MatchStatusCompleted),
	})
	require.NoError(t, err)

	// Completing the final has no downstream slot and must not error.
	final, err := svc.UpdateMatch(context.Background(), "final", UpdateMatchInput{
		WinnerID: strPtr("alice"), Status: statusPtr(models.MatchStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, final.Status)
}

func TestUpdateMatchRecompletionOverwritesSlot(t *testing.T) {
	matchRepo := fourPlayerBracket()
	svc := newMatchServiceForTest(matchRepo)

	_, err := svc.UpdateMatch(context.Background(), "m1", UpdateMatchInput{
		WinnerID: strPtr("alice"), Status: statusPtr(models.MatchStatusCompleted),
	})
	require.NoError(t, err)

	// Correcting the result re-runs the advancement and replaces the slot.
	_, err = svc.UpdateMatch(context.Background(), "m1", UpdateMatchInput{
		WinnerID: strPtr("bob"),
	})
	require.NoError(t, err)

	final, err := matchRepo.GetByID(context.Background(), "final")
	require.NoError(t, err)
	require.NotNil(t, final.Player1ID)
	assert.Equal(t, "bob", *final.Player1ID)
}

func TestUpdateMatchRejectsForeignWinner(t *testing.T) {
	matchRepo := fourPlayerBracket()
	svc := newMatchServiceForTest(matchRepo)

	_, err := svc.UpdateMatch(context.Background(), "m1", UpdateMatchInput{
		WinnerID: strPtr("mallory"),
		Status:   statusPtr(models.MatchStatusCompleted),
	})
	require.ErrorIs(t, err, ErrMatchInvalidWinner)

	final, _ := matchRepo.GetByID(context.Background(), "final")
	assert.Nil(t, final.Player1ID)
}

func TestUpdateMatchRejectsUnknownStatus(t *testing.T) {
	svc := newMatchServiceForTest(fourPlayerBracket())

	_, err := svc.UpdateMatch(context.Background(), "m1", UpdateMatchInput{
		Status: statusPtr(models.MatchStatus("WALKOVER")),
	})
	require.ErrorIs(t, err, ErrMatchInvalidStatus)
}

func TestUpdateMatchRejectsNegativeScores(t *testing.T) {
	svc := newMatchServiceForTest(fourPlayerBracket())

	_, err := svc.UpdateMatch(context.Background(), "m1", UpdateMatchInput{
		Player1Score: intPtr(-1),
	})
	require.ErrorIs(t, err, ErrMatchNegativeScore)
}

func TestUpdateMatchUnknownMatch(t *testing.T) {
	svc := newMatchServiceForTest(&fakeMatchRepo{})

	_, err := svc.UpdateMatch(context.Background(), "missing", UpdateMatchInput{
		Player1Score: intPtr(1),
	})
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestUpdateMatchByeNeverAdvances(t *testing.T) {
	// 3-player bracket: match 2 of round 1 is a bye, it stays PENDING until
	// an operator resolves it, nothing advances automatically.
	matchRepo := &fakeMatchRepo{matches: []*models.Match{
		{ID: "m1", TournamentID: "t1", RoundNumber: 1, MatchNumber: 1,
			Player1ID: strPtr("alice"), Player2ID: strPtr("bob"), Status: models.MatchStatusPending},
		{ID: "bye", TournamentID: "t1", RoundNumber: 1, MatchNumber: 2,
			Player1ID: strPtr("carol"), Status: models.MatchStatusPending},
		{ID: "final", TournamentID: "t1", RoundNumber: 2, MatchNumber: 1,
			Status: models.MatchStatusPending},
	}}
	svc := newMatchServiceForTest(matchRepo)

	_, err := svc.UpdateMatch(context.Background(), "m1", UpdateMatchInput{
		WinnerID: strPtr("alice"), Status: statusPtr(models.MatchStatusCompleted),
	})
	require.NoError(t, err)

	bye, err := matchRepo.GetByID(context.Background(), "bye")
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusPending, bye.Status)

	final, err := matchRepo.GetByID(context.Background(), "final")
	require.NoError(t, err)
	require.NotNil(t, final.Player1ID)
	assert.Equal(t, "alice", *final.Player1ID)
	assert.Nil(t, final.Player2ID, "the bye winner is not advanced for free")
}
