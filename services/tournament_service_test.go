package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTournamentServiceForTest(tournamentRepo *fakeTournamentRepo, matchRepo *fakeMatchRepo, resultRepo *fakeResultRepo) TournamentService {
	return NewTournamentService(tournamentRepo, matchRepo, resultRepo, testLogger())
}

func TestCreateTournamentValidation(t *testing.T) {
	svc := newTournamentServiceForTest(newFakeTournamentRepo(), &fakeMatchRepo{}, &fakeResultRepo{})

	base := CreateTournamentInput{
		Name:            "Friday Cup",
		Format:          models.FormatSingleElimination,
		MaxParticipants: 8,
		StartDate:       time.Now(),
		EndDate:         time.Now().Add(24 * time.Hour),
	}

	cases := []struct {
		name    string
		mutate  func(*CreateTournamentInput)
		wantErr error
	}{
		{"empty name", func(in *CreateTournamentInput) { in.Name = "" }, ErrTournamentNameRequired},
		{"unknown format", func(in *CreateTournamentInput) { in.Format = "SWISS" }, ErrTournamentInvalidFormat},
		{"zero capacity", func(in *CreateTournamentInput) { in.MaxParticipants = 0 }, ErrTournamentInvalidCapacity},
		{"end before start", func(in *CreateTournamentInput) { in.EndDate = in.StartDate.Add(-time.Hour) }, ErrTournamentInvalidDateRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			tc.mutate(&input)
			_, err := svc.CreateTournament(context.Background(), input)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateTournamentDefaults(t *testing.T) {
	svc := newTournamentServiceForTest(newFakeTournamentRepo(), &fakeMatchRepo{}, &fakeResultRepo{})

	created, err := svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name:            "Friday Cup",
		Format:          models.FormatRoundRobin,
		MaxParticipants: 8,
		StartDate:       time.Now(),
		EndDate:         time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.TournamentStatusUpcoming, created.Status)
	assert.Equal(t, "0", created.EntryFeeAmount)
}

func TestUpdateTournamentStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    models.TournamentStatus
		to      models.TournamentStatus
		wantErr error
	}{
		{"upcoming to ongoing", models.TournamentStatusUpcoming, models.TournamentStatusOngoing, nil},
		{"upcoming to cancelled", models.TournamentStatusUpcoming, models.TournamentStatusCancelled, nil},
		{"ongoing to completed", models.TournamentStatusOngoing, models.TournamentStatusCompleted, nil},
		{"upcoming to completed", models.TournamentStatusUpcoming, models.TournamentStatusCompleted, ErrTournamentInvalidStatusTransition},
		{"completed to ongoing", models.TournamentStatusCompleted, models.TournamentStatusOngoing, ErrTournamentInvalidStatusTransition},
		{"cancelled to upcoming", models.TournamentStatusCancelled, models.TournamentStatusUpcoming, ErrTournamentInvalidStatusTransition},
		{"unknown status", models.TournamentStatusUpcoming, models.TournamentStatus("PAUSED"), ErrTournamentInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tournament := upcomingTournament("t1", models.FormatSingleElimination)
			tournament.Status = tc.from
			svc := newTournamentServiceForTest(newFakeTournamentRepo(tournament), &fakeMatchRepo{}, &fakeResultRepo{})

			updated, err := svc.UpdateTournamentStatus(context.Background(), "t1", tc.to)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, updated.Status)
		})
	}
}

func TestCompleteFinishedTournamentsRecordsPlacements(t *testing.T) {
	tournament := upcomingTournament("t1", models.FormatSingleElimination)
	tournament.Status = models.TournamentStatusOngoing
	tournamentRepo := newFakeTournamentRepo(tournament)

	now := time.Now()
	matchRepo := &fakeMatchRepo{matches: []*models.Match{
		{ID: "m1", TournamentID: "t1", RoundNumber: 1, MatchNumber: 1,
			Player1ID: strPtr("alice"), Player2ID: strPtr("bob"), WinnerID: strPtr("alice"),
			Status: models.MatchStatusCompleted, CompletedAt: &now},
		{ID: "m2", TournamentID: "t1", RoundNumber: 1, MatchNumber: 2,
			Player1ID: strPtr("carol"), Player2ID: strPtr("dave"), WinnerID: strPtr("dave"),
			Status: models.MatchStatusCompleted, CompletedAt: &now},
		{ID: "final", TournamentID: "t1", RoundNumber: 2, MatchNumber: 1,
			Player1ID: strPtr("alice"), Player2ID: strPtr("dave"), WinnerID: strPtr("alice"),
			Status: models.MatchStatusCompleted, CompletedAt: &now},
	}}
	resultRepo := &fakeResultRepo{}
	svc := newTournamentServiceForTest(tournamentRepo, matchRepo, resultRepo)

	require.NoError(t, svc.CompleteFinishedTournaments(context.Background()))

	updated, _ := tournamentRepo.GetByID(context.Background(), "t1")
	assert.Equal(t, models.TournamentStatusCompleted, updated.Status)

	results, err := resultRepo.ListByTournament(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alice", results[0].UserID)
	assert.Equal(t, 1, results[0].Placement)
	assert.Equal(t, "dave", results[1].UserID)
	assert.Equal(t, 2, results[1].Placement)
}

func TestCompleteFinishedTournamentsSkipsUnfinishedFinal(t *testing.T) {
	tournament := upcomingTournament("t1", models.FormatSingleElimination)
	tournament.Status = models.TournamentStatusOngoing
	tournamentRepo := newFakeTournamentRepo(tournament)

	matchRepo := &fakeMatchRepo{matches: []*models.Match{
		{ID: "m1", TournamentID: "t1", RoundNumber: 1, MatchNumber: 1,
			Player1ID: strPtr("alice"), Player2ID: strPtr("bob"), WinnerID: strPtr("alice"),
			Status: models.MatchStatusCompleted},
		{ID: "final", TournamentID: "t1", RoundNumber: 2, MatchNumber: 1,
			Player1ID: strPtr("alice"), Status: models.MatchStatusPending},
	}}
	resultRepo := &fakeResultRepo{}
	svc := newTournamentServiceForTest(tournamentRepo, matchRepo, resultRepo)

	require.NoError(t, svc.CompleteFinishedTournaments(context.Background()))

	updated, _ := tournamentRepo.GetByID(context.Background(), "t1")
	assert.Equal(t, models.TournamentStatusOngoing, updated.Status)
	assert.Empty(t, resultRepo.results)
}

func TestCompleteFinishedTournamentsIsIdempotentOnResults(t *testing.T) {
	tournament := upcomingTournament("t1", models.FormatSingleElimination)
	tournament.Status = models.TournamentStatusOngoing
	tournamentRepo := newFakeTournamentRepo(tournament)

	matchRepo := &fakeMatchRepo{matches: []*models.Match{
		{ID: "final", TournamentID: "t1", RoundNumber: 1, MatchNumber: 1,
			Player1ID: strPtr("alice"), Player2ID: strPtr("bob"), WinnerID: strPtr("bob"),
			Status: models.MatchStatusCompleted},
	}}
	resultRepo := &fakeResultRepo{}
	svc := newTournamentServiceForTest(tournamentRepo, matchRepo, resultRepo)

	require.NoError(t, svc.CompleteFinishedTournaments(context.Background()))
	// A second sweep over the same state must not duplicate placements.
	tournamentObj, _ := tournamentRepo.GetByID(context.Background(), "t1")
	tournamentObj.Status = models.TournamentStatusOngoing
	require.NoError(t, svc.CompleteFinishedTournaments(context.Background()))

	results, _ := resultRepo.ListByTournament(context.Background(), "t1")
	assert.Len(t, results, 2)
}
