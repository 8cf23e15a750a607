package scoring

import (
	"errors"
	"testing"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/match"
)

func TestParseSetScores(t *testing.T) {
	tests := []struct {
		name    string
		sets    []match.SetScore
		cfg     Config
		want    Outcome
		wantErr error
	}{
		{
			name: "straight sets",
			sets: []match.SetScore{{Team1: 6, Team2: 2}, {Team1: 6, Team2: 2}},
			cfg:  DefaultConfig(),
			want: Outcome{Team1Units: 2, Team2Units: 0, Team1Games: 12, Team2Games: 4, Winner: SideTeam1},
		},
		{
			name: "three sets with comeback",
			sets: []match.SetScore{{Team1: 4, Team2: 6}, {Team1: 6, Team2: 3}, {Team1: 6, Team2: 4}},
			cfg:  DefaultConfig(),
			want: Outcome{Team1Units: 2, Team2Units: 1, Team1Games: 16, Team2Games: 13, Winner: SideTeam1},
		},
		{
			name: "deciding tiebreak counts as one game",
			sets: []match.SetScore{{Team1: 6, Team2: 4}, {Team1: 3, Team2: 6}, {Team1: 10, Team2: 7, DecidingTiebreak: true}},
			cfg:  DefaultConfig(),
			want: Outcome{Team1Units: 2, Team2Units: 1, Team1Games: 10, Team2Games: 10, Winner: SideTeam1},
		},
		{
			name: "deciding tiebreak counts raw points",
			sets: []match.SetScore{{Team1: 6, Team2: 4}, {Team1: 3, Team2: 6}, {Team1: 10, Team2: 7, DecidingTiebreak: true}},
			cfg:  Config{ParticipationPoints: 1, WinBonusPoints: 2, DecidingTiebreakCountsGames: true},
			want: Outcome{Team1Units: 2, Team2Units: 1, Team1Games: 19, Team2Games: 17, Winner: SideTeam1},
		},
		{
			name: "five sets exceeds best of three",
			sets: []match.SetScore{
				{Team1: 6, Team2: 4}, {Team1: 4, Team2: 6}, {Team1: 6, Team2: 4},
				{Team1: 4, Team2: 6}, {Team1: 6, Team2: 4},
			},
			cfg:     DefaultConfig(),
			wantErr: ErrScoreOutOfRange,
		},
		{
			name:    "three-set sweep exceeds best of three",
			sets:    []match.SetScore{{Team1: 6, Team2: 2}, {Team1: 6, Team2: 2}, {Team1: 6, Team2: 2}},
			cfg:     DefaultConfig(),
			wantErr: ErrScoreOutOfRange,
		},
		{
			name:    "no sets",
			sets:    nil,
			cfg:     DefaultConfig(),
			wantErr: ErrNoScores,
		},
		{
			name:    "drawn set",
			sets:    []match.SetScore{{Team1: 6, Team2: 6}},
			cfg:     DefaultConfig(),
			wantErr: ErrUnresolvedWinner,
		},
		{
			name:    "equal set counts",
			sets:    []match.SetScore{{Team1: 6, Team2: 4}, {Team1: 4, Team2: 6}},
			cfg:     DefaultConfig(),
			wantErr: ErrUnresolvedWinner,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSetScores(tc.sets, tc.cfg)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("outcome mismatch: got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseGameScores(t *testing.T) {
	games := []match.GameScore{
		{Team1: 11, Team2: 7},
		{Team1: 9, Team2: 11},
		{Team1: 11, Team2: 5},
	}

	got, err := ParseGameScores(games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Outcome{Team1Units: 2, Team2Units: 1, Team1Games: 2, Team2Games: 1, Winner: SideTeam1}
	if got != want {
		t.Fatalf("outcome mismatch: got %+v, want %+v", got, want)
	}

	if _, err := ParseGameScores(nil); !errors.Is(err, ErrNoScores) {
		t.Fatalf("expected ErrNoScores, got %v", err)
	}
	if _, err := ParseGameScores([]match.GameScore{{Team1: 10, Team2: 10}}); !errors.Is(err, ErrUnresolvedWinner) {
		t.Fatalf("expected ErrUnresolvedWinner, got %v", err)
	}

	sweep := []match.GameScore{
		{Team1: 11, Team2: 3},
		{Team1: 11, Team2: 7},
		{Team1: 11, Team2: 9},
	}
	if _, err := ParseGameScores(sweep); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange for a three-game sweep, got %v", err)
	}
}

func TestParseOutcome_FormatDispatch(t *testing.T) {
	m := match.Match{
		Format: match.FormatGames,
		Games:  []match.GameScore{{Team1: 11, Team2: 3}},
		Sets:   []match.SetScore{{Team1: 6, Team2: 0}},
	}

	got, err := ParseOutcome(m, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Team1Units != 1 || got.Team1Games != 1 {
		t.Fatalf("expected game format parse, got %+v", got)
	}

	m.Format = ""
	got, err = ParseOutcome(m, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Team1Games != 6 {
		t.Fatalf("expected set format parse by default, got %+v", got)
	}

	m.Format = "quarters"
	if _, err := ParseOutcome(m, DefaultConfig()); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
