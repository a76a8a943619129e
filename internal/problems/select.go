package problems

import (
	"math/rand/v2"

	"github.com/theirongolddev/resolution/internal/model"
)

// Playable reports whether a problem can be offered at all.
func Playable(p model.Problem) bool {
	return !p.PaidOnly && !p.Hidden
}

// Available returns the playable, not yet completed problems of difficulty d.
func Available(all []model.Problem, d model.Difficulty, completed map[int]bool) []model.Problem {
	var out []model.Problem
	for _, p := range all {
		if !Playable(p) || p.Difficulty != d || completed[p.ID] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Pick returns up to n problems chosen at random from candidates.
func Pick(r *rand.Rand, candidates []model.Problem, n int) []model.Problem {
	if n <= 0 {
		return nil
	}
	if len(candidates) <= n {
		return append([]model.Problem(nil), candidates...)
	}
	out := make([]model.Problem, 0, n)
	for _, i := range r.Perm(len(candidates))[:n] {
		out = append(out, candidates[i])
	}
	return out
}

// FindByFrontendID returns the problem listed under the number LeetCode
// shows on its site, which is the number the routine prints.
func FindByFrontendID(all []model.Problem, frontendID int) (model.Problem, bool) {
	for _, p := range all {
		if p.FrontendID == frontendID {
			return p, true
		}
	}
	return model.Problem{}, false
}

// Find returns the problem with question id.
func Find(all []model.Problem, id int) (model.Problem, bool) {
	for _, p := range all {
		if p.ID == id {
			return p, true
		}
	}
	return model.Problem{}, false
}

// Stats counts playable problems and completions per difficulty.
func Stats(all []model.Problem, completed map[int]bool) model.ProblemStats {
	stats := model.ProblemStats{
		TotalCompleted: len(completed),
		ByDifficulty:   make(map[model.Difficulty]model.DifficultyStats, len(model.Difficulties)),
	}
	for _, d := range model.Difficulties {
		stats.ByDifficulty[d] = model.DifficultyStats{}
	}

	for _, p := range all {
		if !Playable(p) || !p.Difficulty.Valid() {
			continue
		}
		ds := stats.ByDifficulty[p.Difficulty]
		ds.Total++
		if completed[p.ID] {
			ds.Completed++
		}
		stats.ByDifficulty[p.Difficulty] = ds
	}
	return stats
}
