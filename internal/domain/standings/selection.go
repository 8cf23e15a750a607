package standings

import "sort"

// SelectionConfig caps how many results count toward standings.
type SelectionConfig struct {
	MaxCounted int
}

func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{MaxCounted: 6}
}

// SelectCounted applies the best-N policy to a player's full result
// history and returns a new slice with counted flags and sequences set.
//
// Wins are locked in chronological order: the first min(N, wins) wins
// take sequence 1..k and a later, higher-value win never displaces an
// earlier one. Remaining slots go to losses picked by strength (points
// desc, then margin desc, then more recent play date). Wins beyond the
// cap are dropped outright even when loss slots remain unused.
//
// The function is idempotent and fully deterministic; chronological
// order ties break on match id.
func SelectCounted(results []MatchResult, cfg SelectionConfig) []MatchResult {
	out := make([]MatchResult, len(results))
	copy(out, results)
	sortChronological(out)

	for i := range out {
		out[i].CountsForStandings = false
		out[i].ResultSequence = nil
	}
	if cfg.MaxCounted <= 0 || len(out) == 0 {
		return out
	}

	var winIdx, lossIdx []int
	for i, r := range out {
		if r.IsWin {
			winIdx = append(winIdx, i)
		} else {
			lossIdx = append(lossIdx, i)
		}
	}

	sequence := 0
	countedWins := len(winIdx)
	if countedWins > cfg.MaxCounted {
		countedWins = cfg.MaxCounted
	}
	for _, i := range winIdx[:countedWins] {
		sequence++
		out[i].CountsForStandings = true
		out[i].ResultSequence = intPtr(sequence)
	}

	remaining := cfg.MaxCounted - countedWins
	if remaining <= 0 || len(lossIdx) == 0 {
		return out
	}

	sort.SliceStable(lossIdx, func(a, b int) bool {
		return strongerLoss(out[lossIdx[a]], out[lossIdx[b]])
	})
	if remaining > len(lossIdx) {
		remaining = len(lossIdx)
	}
	for _, i := range lossIdx[:remaining] {
		sequence++
		out[i].CountsForStandings = true
		out[i].ResultSequence = intPtr(sequence)
	}

	return out
}

// strongerLoss orders counted-loss candidates: higher points first, then
// higher (less negative) margin, then the more recent result.
func strongerLoss(a, b MatchResult) bool {
	if a.MatchPoints != b.MatchPoints {
		return a.MatchPoints > b.MatchPoints
	}
	if a.Margin != b.Margin {
		return a.Margin > b.Margin
	}
	if !a.PlayedAt.Equal(b.PlayedAt) {
		return a.PlayedAt.After(b.PlayedAt)
	}
	return a.MatchID > b.MatchID
}

func sortChronological(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].PlayedAt.Equal(results[j].PlayedAt) {
			return results[i].PlayedAt.Before(results[j].PlayedAt)
		}
		return results[i].MatchID < results[j].MatchID
	})
}

func intPtr(v int) *int {
	return &v
}
