package standings

import (
	"testing"

	"golang.org/x/text/language"
)

func h2h(pairs ...any) map[string]H2HRecord {
	out := make(map[string]H2HRecord)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i].(string)] = pairs[i+1].(H2HRecord)
	}
	return out
}

func rankedOrder(ranked []RankedPlayer) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.PlayerID)
	}
	return out
}

func assertOrder(t *testing.T, ranked []RankedPlayer, want ...string) {
	t.Helper()
	got := rankedOrder(ranked)
	if len(got) != len(want) {
		t.Fatalf("ranked %d players, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Fatalf("rank at position %d: got %d, want %d", i, r.Rank, i+1)
		}
	}
}

func TestRank_PointsOrderWithoutTies(t *testing.T) {
	ranker := NewRanker(language.English)
	ranked := ranker.Rank([]Metrics{
		{PlayerID: "low", PlayerName: "Low", TotalPoints: 10},
		{PlayerID: "high", PlayerName: "High", TotalPoints: 30},
		{PlayerID: "mid", PlayerName: "Mid", TotalPoints: 20},
	})

	assertOrder(t, ranked, "high", "mid", "low")
}

func TestRank_PairTieBrokenByHeadToHead(t *testing.T) {
	ranker := NewRanker(language.English)
	ranked := ranker.Rank([]Metrics{
		{
			PlayerID: "a", PlayerName: "Anna", TotalPoints: 20, SetWinPct: 0.9,
			HeadToHead: h2h("b", H2HRecord{Wins: 0, Losses: 2}),
		},
		{
			// Worse percentages, but owns the direct rivalry.
			PlayerID: "b", PlayerName: "Ben", TotalPoints: 20, SetWinPct: 0.4,
			HeadToHead: h2h("a", H2HRecord{Wins: 2, Losses: 0}),
		},
	})

	assertOrder(t, ranked, "b", "a")
}

func TestRank_PairTieFallsThroughCascade(t *testing.T) {
	ranker := NewRanker(language.English)

	// Split head-to-head: set percentage decides.
	ranked := ranker.Rank([]Metrics{
		{
			PlayerID: "a", PlayerName: "Anna", TotalPoints: 20, SetWinPct: 0.5,
			HeadToHead: h2h("b", H2HRecord{Wins: 1, Losses: 1}),
		},
		{
			PlayerID: "b", PlayerName: "Ben", TotalPoints: 20, SetWinPct: 0.7,
			HeadToHead: h2h("a", H2HRecord{Wins: 1, Losses: 1}),
		},
	})
	assertOrder(t, ranked, "b", "a")

	// Identical everywhere else: collated name decides.
	ranked = ranker.Rank([]Metrics{
		{PlayerID: "p9", PlayerName: "zoe", TotalPoints: 20, SetWinPct: 0.5, GameWinPct: 0.5},
		{PlayerID: "p2", PlayerName: "Albert", TotalPoints: 20, SetWinPct: 0.5, GameWinPct: 0.5},
	})
	assertOrder(t, ranked, "p2", "p9")
}

func TestRank_ThreeWayTieByGroupWins(t *testing.T) {
	ranker := NewRanker(language.English)
	ranked := ranker.Rank([]Metrics{
		{
			// 0 wins inside the group; wins against outsiders are ignored.
			PlayerID: "c", PlayerName: "Cara", TotalPoints: 20,
			HeadToHead: h2h("a", H2HRecord{Losses: 1}, "b", H2HRecord{Losses: 1}, "x", H2HRecord{Wins: 5}),
		},
		{
			// 2 wins inside the group.
			PlayerID: "a", PlayerName: "Anna", TotalPoints: 20,
			HeadToHead: h2h("b", H2HRecord{Wins: 1}, "c", H2HRecord{Wins: 1}),
		},
		{
			// 1 win inside the group.
			PlayerID: "b", PlayerName: "Ben", TotalPoints: 20,
			HeadToHead: h2h("a", H2HRecord{Losses: 1}, "c", H2HRecord{Wins: 1}),
		},
	})

	assertOrder(t, ranked, "a", "b", "c")
}

func TestRank_CyclicTieResolvedByCascade(t *testing.T) {
	ranker := NewRanker(language.English)

	// a beats b, b beats c, c beats a: one group win each, so the
	// percentage cascade decides.
	ranked := ranker.Rank([]Metrics{
		{
			PlayerID: "a", PlayerName: "Anna", TotalPoints: 20, SetWinPct: 0.5,
			HeadToHead: h2h("b", H2HRecord{Wins: 1}, "c", H2HRecord{Losses: 1}),
		},
		{
			PlayerID: "b", PlayerName: "Ben", TotalPoints: 20, SetWinPct: 0.7,
			HeadToHead: h2h("c", H2HRecord{Wins: 1}, "a", H2HRecord{Losses: 1}),
		},
		{
			PlayerID: "c", PlayerName: "Cara", TotalPoints: 20, SetWinPct: 0.6,
			HeadToHead: h2h("a", H2HRecord{Wins: 1}, "b", H2HRecord{Losses: 1}),
		},
	})

	assertOrder(t, ranked, "b", "c", "a")
}

func TestRank_DeterministicAcrossInputOrder(t *testing.T) {
	ranker := NewRanker(language.English)
	players := []Metrics{
		{PlayerID: "a", PlayerName: "Anna", TotalPoints: 20, SetWinPct: 0.5, GameWinPct: 0.5},
		{PlayerID: "b", PlayerName: "Ben", TotalPoints: 20, SetWinPct: 0.5, GameWinPct: 0.5},
		{PlayerID: "c", PlayerName: "Cara", TotalPoints: 30},
	}
	reversed := []Metrics{players[2], players[1], players[0]}

	first := rankedOrder(ranker.Rank(players))
	second := rankedOrder(ranker.Rank(reversed))

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("ordering depends on input order: %v vs %v", first, second)
		}
	}
}
