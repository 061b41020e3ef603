package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
	"github.com/google/uuid"
)

type memPlayerRepo struct {
	players map[uuid.UUID]*dmn.Player
	saveErr error
}

func newMemPlayerRepo() *memPlayerRepo {
	return &memPlayerRepo{players: map[uuid.UUID]*dmn.Player{}}
}

func (r *memPlayerRepo) Save(p *dmn.Player) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.players[p.ID] = p
	return nil
}

func (r *memPlayerRepo) ByID(id uuid.UUID) (*dmn.Player, error) {
	if p, ok := r.players[id]; ok {
		return p, nil
	}
	return nil, i.ErrPlayerNotFound
}

func (r *memPlayerRepo) ByUsername(username string) (*dmn.Player, error) {
	for _, p := range r.players {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, i.ErrPlayerNotFound
}

type memRunRepo struct {
	mu        sync.Mutex
	runs      map[uuid.UUID]*dmn.LevelRun
	saveErr   error
	finishErr error
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{runs: map[uuid.UUID]*dmn.LevelRun{}}
}

func (r *memRunRepo) Save(run *dmn.LevelRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *run
	r.runs[run.ID] = &cp
	return nil
}

func (r *memRunRepo) Finish(id uuid.UUID, outcome dmn.Outcome, endedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finishErr != nil {
		return r.finishErr
	}
	run, ok := r.runs[id]
	if !ok {
		return i.ErrLevelRunNotFound
	}
	run.Outcome = outcome
	run.EndedAt = &endedAt
	return nil
}

func (r *memRunRepo) ByID(id uuid.UUID) (*dmn.LevelRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, i.ErrLevelRunNotFound
	}
	cp := *run
	return &cp, nil
}

func (r *memRunRepo) ByPlayer(playerID uuid.UUID, limit int64) ([]*dmn.LevelRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var runs []*dmn.LevelRun
	for _, run := range r.runs {
		if run.PlayerID == playerID {
			cp := *run
			runs = append(runs, &cp)
		}
	}
	sort.Slice(runs, func(a, b int) bool { return runs[a].MazeNumber > runs[b].MazeNumber })
	if int64(len(runs)) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

type memLeaderboard struct {
	mu      sync.Mutex
	scores  map[uuid.UUID]int64
	counted map[uuid.UUID]bool
	calls   int
}

func newMemLeaderboard() *memLeaderboard {
	return &memLeaderboard{scores: map[uuid.UUID]int64{}, counted: map[uuid.UUID]bool{}}
}

func (b *memLeaderboard) Record(_ context.Context, playerID, runID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.counted[runID] {
		return nil
	}
	b.counted[runID] = true
	b.scores[playerID]++
	return nil
}

func (b *memLeaderboard) Top(_ context.Context, n int64) ([]dmn.Score, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var scores []dmn.Score
	for id, m := range b.scores {
		scores = append(scores, dmn.Score{PlayerID: id, Depth: m})
	}
	sort.Slice(scores, func(a, b int) bool { return scores[a].Depth > scores[b].Depth })
	if int64(len(scores)) > n {
		scores = scores[:n]
	}
	return scores, nil
}

type stubTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	s.claims = claims
	s.ttl = ttl
	return "signed-token", nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
