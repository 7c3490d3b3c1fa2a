package services

import (
	"context"
	"sort"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/Dosada05/card-tournaments/repositories"
)

// In-memory repository fakes. They hold pointers, so service-side mutations
// are visible to subsequent reads, same as a real row update.

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[string]*models.Tournament)}
	for _, t := range tournaments {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, t := range r.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.CardID != nil && (t.CardID == nil || *t.CardID != *filter.CardID) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id string, status models.TournamentStatus) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) ListOngoingElimination(ctx context.Context) ([]*models.Tournament, error) {
	var out []*models.Tournament
	for _, t := range r.tournaments {
		if t.Status == models.TournamentStatusOngoing && t.Format.Elimination() {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeRegistrationRepo struct {
	regs []*models.Registration
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	for _, existing := range r.regs {
		if existing.UserID == reg.UserID && existing.TournamentID == reg.TournamentID {
			return repositories.ErrRegistrationConflict
		}
	}
	r.regs = append(r.regs, reg)
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	for _, reg := range r.regs {
		if reg.ID == id {
			return reg, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) FindByUserAndTournament(ctx context.Context, userID, tournamentID string) (*models.Registration, error) {
	for _, reg := range r.regs {
		if reg.UserID == userID && reg.TournamentID == tournamentID {
			return reg, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) ListByTournament(ctx context.Context, tournamentID string, statusFilter *models.RegistrationStatus) ([]*models.Registration, error) {
	var out []*models.Registration
	for _, reg := range r.regs {
		if reg.TournamentID != tournamentID {
			continue
		}
		if statusFilter != nil && reg.Status != *statusFilter {
			continue
		}
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegistrationDate.Before(out[j].RegistrationDate)
	})
	return out, nil
}

func (r *fakeRegistrationRepo) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	count := 0
	for _, reg := range r.regs {
		if reg.TournamentID == tournamentID && reg.Status != models.RegistrationStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (r *fakeRegistrationRepo) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error {
	for _, reg := range r.regs {
		if reg.ID == id {
			reg.Status = status
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) error {
	kept := r.regs[:0]
	for _, reg := range r.regs {
		if reg.TournamentID != tournamentID {
			kept = append(kept, reg)
		}
	}
	r.regs = kept
	return nil
}

type fakeMatchRepo struct {
	matches []*models.Match

	createBatchErr error
}

func (r *fakeMatchRepo) CreateBatch(ctx context.Context, matches []*models.Match) error {
	if r.createBatchErr != nil {
		return r.createBatchErr
	}
	r.matches = append(r.matches, matches...)
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id string) (*models.Match, error) {
	for _, m := range r.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) FindByPosition(ctx context.Context, tournamentID string, round, matchNumber int) (*models.Match, error) {
	for _, m := range r.matches {
		if m.TournamentID == tournamentID && m.RoundNumber == round && m.MatchNumber == matchNumber {
			return m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID string, roundFilter *int, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if roundFilter != nil && m.RoundNumber != *roundFilter {
			continue
		}
		if statusFilter != nil && m.Status != *statusFilter {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoundNumber != out[j].RoundNumber {
			return out[i].RoundNumber < out[j].RoundNumber
		}
		return out[i].MatchNumber < out[j].MatchNumber
	})
	return out, nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, match *models.Match) error {
	for i, m := range r.matches {
		if m.ID == match.ID {
			r.matches[i] = match
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) UpdateSlot(ctx context.Context, matchID string, slot int, playerID string) error {
	for _, m := range r.matches {
		if m.ID != matchID {
			continue
		}
		p := playerID
		if slot == 1 {
			m.Player1ID = &p
		} else {
			m.Player2ID = &p
		}
		return nil
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) error {
	kept := r.matches[:0]
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			kept = append(kept, m)
		}
	}
	r.matches = kept
	return nil
}

type fakeResultRepo struct {
	results []*models.TournamentResult
}

func (r *fakeResultRepo) Create(ctx context.Context, exec repositories.SQLExecutor, result *models.TournamentResult) error {
	for _, existing := range r.results {
		if existing.TournamentID == result.TournamentID && existing.Placement == result.Placement {
			return repositories.ErrResultConflict
		}
	}
	r.results = append(r.results, result)
	return nil
}

func (r *fakeResultRepo) ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentResult, error) {
	var out []*models.TournamentResult
	for _, result := range r.results {
		if result.TournamentID == tournamentID {
			out = append(out, result)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Placement < out[j].Placement })
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(ids ...string) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, id := range ids {
		repo.users[id] = &models.User{ID: id}
	}
	return repo
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
