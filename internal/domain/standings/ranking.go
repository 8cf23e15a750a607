package standings

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Metrics is the precomputed per-player input to the ranker. Percentages
// come from counted results only; the head-to-head map from the full
// history.
type Metrics struct {
	PlayerID    string
	PlayerName  string
	TotalPoints int
	SetWinPct   float64
	GameWinPct  float64
	HeadToHead  map[string]H2HRecord
}

type RankedPlayer struct {
	Metrics
	Rank int
}

// Ranker orders a whole division. It is a pure pipeline over metric
// tables: group by exact points, resolve each group, flatten, then
// assign ranks 1..N. The tiebreak cascade always fully orders a group,
// so no two players ever share a rank.
type Ranker struct {
	collator *collate.Collator
}

// NewRanker builds a ranker whose final name tiebreak collates in the
// given locale.
func NewRanker(tag language.Tag) *Ranker {
	return &Ranker{collator: collate.New(tag, collate.IgnoreCase)}
}

func (r *Ranker) Rank(players []Metrics) []RankedPlayer {
	out := make([]RankedPlayer, 0, len(players))
	for _, group := range groupByPoints(players) {
		for _, m := range r.resolveGroup(group) {
			out = append(out, RankedPlayer{Metrics: m, Rank: len(out) + 1})
		}
	}
	return out
}

// groupByPoints partitions players into exact-points groups ordered by
// points descending. Group members start in a deterministic id order so
// downstream stable sorts never depend on input order.
func groupByPoints(players []Metrics) [][]Metrics {
	byPoints := make(map[int][]Metrics)
	points := make([]int, 0)
	for _, p := range players {
		if _, seen := byPoints[p.TotalPoints]; !seen {
			points = append(points, p.TotalPoints)
		}
		byPoints[p.TotalPoints] = append(byPoints[p.TotalPoints], p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(points)))

	out := make([][]Metrics, 0, len(points))
	for _, pts := range points {
		group := byPoints[pts]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PlayerID < group[j].PlayerID
		})
		out = append(out, group)
	}
	return out
}

func (r *Ranker) resolveGroup(group []Metrics) []Metrics {
	switch len(group) {
	case 1:
		return group
	case 2:
		return r.resolvePair(group)
	default:
		return r.resolveMultiWay(group)
	}
}

// resolvePair breaks a two-way tie on direct head-to-head wins, then the
// percentage/name cascade.
func (r *Ranker) resolvePair(group []Metrics) []Metrics {
	a, b := group[0], group[1]
	aWins := a.HeadToHead[b.PlayerID].Wins
	bWins := b.HeadToHead[a.PlayerID].Wins
	if aWins != bWins {
		if bWins > aWins {
			return []Metrics{b, a}
		}
		return []Metrics{a, b}
	}
	if r.cascadeLess(b, a) {
		return []Metrics{b, a}
	}
	return []Metrics{a, b}
}

// resolveMultiWay breaks a tie of three or more on wins scored against
// other members of the same tied group; wins against outsiders are
// ignored here. Cyclic results are not detected specially; the cascade
// resolves whatever the sub-group counts leave tied.
func (r *Ranker) resolveMultiWay(group []Metrics) []Metrics {
	inGroup := make(map[string]struct{}, len(group))
	for _, m := range group {
		inGroup[m.PlayerID] = struct{}{}
	}

	groupWins := make(map[string]int, len(group))
	for _, m := range group {
		wins := 0
		for opponentID, record := range m.HeadToHead {
			if opponentID == m.PlayerID {
				continue
			}
			if _, ok := inGroup[opponentID]; ok {
				wins += record.Wins
			}
		}
		groupWins[m.PlayerID] = wins
	}

	resolved := make([]Metrics, len(group))
	copy(resolved, group)
	sort.SliceStable(resolved, func(i, j int) bool {
		if groupWins[resolved[i].PlayerID] != groupWins[resolved[j].PlayerID] {
			return groupWins[resolved[i].PlayerID] > groupWins[resolved[j].PlayerID]
		}
		return r.cascadeLess(resolved[i], resolved[j])
	})
	return resolved
}

// cascadeLess is the shared tail of every tiebreak: set percentage
// descending, game percentage descending, collated name ascending, and
// finally player id for total determinism.
func (r *Ranker) cascadeLess(a, b Metrics) bool {
	if a.SetWinPct != b.SetWinPct {
		return a.SetWinPct > b.SetWinPct
	}
	if a.GameWinPct != b.GameWinPct {
		return a.GameWinPct > b.GameWinPct
	}
	if cmp := r.collator.CompareString(a.PlayerName, b.PlayerName); cmp != 0 {
		return cmp < 0
	}
	return a.PlayerID < b.PlayerID
}
