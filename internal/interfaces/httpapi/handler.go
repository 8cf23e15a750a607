package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/NxTech4021/dl-backend-sub007/internal/domain/match"
	"github.com/NxTech4021/dl-backend-sub007/internal/domain/standings"
	"github.com/NxTech4021/dl-backend-sub007/internal/platform/logging"
	"github.com/NxTech4021/dl-backend-sub007/internal/usecase"
)

type Handler struct {
	standingsService *usecase.StandingsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(standingsService *usecase.StandingsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService: standingsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDivisionStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDivisionStandings")
	defer span.End()

	key := standings.Key{
		DivisionID: r.PathValue("divisionID"),
		SeasonID:   r.PathValue("seasonID"),
	}

	rows, err := h.standingsService.ListStandings(ctx, key)
	if err != nil {
		h.logger.ErrorContext(ctx, "get division standings failed", "division_id", key.DivisionID, "season_id", key.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, divisionStandingsDTO{
		DivisionID: key.DivisionID,
		SeasonID:   key.SeasonID,
		Standings:  rows,
	})
}

func (h *Handler) ListPlayerResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerResults")
	defer span.End()

	key := standings.Key{
		DivisionID: r.PathValue("divisionID"),
		SeasonID:   r.PathValue("seasonID"),
	}
	playerID := r.PathValue("playerID")

	results, err := h.standingsService.ListPlayerResults(ctx, key, playerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list player results failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerResultDTO, 0, len(results))
	for _, item := range results {
		out = append(out, playerResultDTO{
			MatchID:            item.MatchID,
			OpponentID:         item.OpponentID,
			PlayedAt:           item.PlayedAt,
			IsWin:              item.IsWin,
			SetsWon:            item.SetsWon,
			SetsLost:           item.SetsLost,
			GamesWon:           item.GamesWon,
			GamesLost:          item.GamesLost,
			MatchPoints:        item.MatchPoints,
			Margin:             item.Margin,
			CountsForStandings: item.CountsForStandings,
			ResultSequence:     item.ResultSequence,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, playerResultsDTO{
		PlayerID: playerID,
		Results:  out,
	})
}

func (h *Handler) IngestCompletedMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestCompletedMatch")
	defer span.End()

	var req completedMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.standingsService.RecordCompletedMatch(ctx, req.toDomain()); err != nil {
		h.logger.ErrorContext(ctx, "ingest completed match failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"matchId": req.MatchID,
		"status":  "recorded",
	})
}

func (h *Handler) VoidMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VoidMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.standingsService.VoidMatch(ctx, matchID); err != nil {
		h.logger.ErrorContext(ctx, "void match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"matchId": matchID,
		"status":  "voided",
	})
}

// RunRecalculationJob recalculates one division+season when the request
// names one, or every known division+season when all=true.
func (h *Handler) RunRecalculationJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculationJob")
	defer span.End()

	var req recalculationJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	if req.All {
		result, err := h.standingsService.RecalculateAll(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "batch recalculation job failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, result)
		return
	}

	key := standings.Key{DivisionID: req.DivisionID, SeasonID: req.SeasonID}
	if err := h.standingsService.Recalculate(ctx, key); err != nil {
		h.logger.ErrorContext(ctx, "recalculation job failed", "division_id", key.DivisionID, "season_id", key.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"divisionId": key.DivisionID,
		"seasonId":   key.SeasonID,
		"status":     "recalculated",
	})
}

type divisionStandingsDTO struct {
	DivisionID string                `json:"divisionId"`
	SeasonID   string                `json:"seasonId"`
	Standings  []usecase.StandingRow `json:"standings"`
}

type playerResultsDTO struct {
	PlayerID string            `json:"playerId"`
	Results  []playerResultDTO `json:"results"`
}

type playerResultDTO struct {
	MatchID            string    `json:"matchId"`
	OpponentID         string    `json:"opponentId"`
	PlayedAt           time.Time `json:"playedAt"`
	IsWin              bool      `json:"isWin"`
	SetsWon            int       `json:"setsWon"`
	SetsLost           int       `json:"setsLost"`
	GamesWon           int       `json:"gamesWon"`
	GamesLost          int       `json:"gamesLost"`
	MatchPoints        int       `json:"matchPoints"`
	Margin             int       `json:"margin"`
	CountsForStandings bool      `json:"countsForStandings"`
	ResultSequence     *int      `json:"resultSequence,omitempty"`
}

type completedMatchRequest struct {
	MatchID      string                   `json:"match_id" validate:"required"`
	DivisionID   string                   `json:"division_id" validate:"required"`
	SeasonID     string                   `json:"season_id" validate:"required"`
	PlayedAt     time.Time                `json:"played_at" validate:"required"`
	Format       string                   `json:"format" validate:"omitempty,oneof=sets games"`
	Participants []matchParticipantRecord `json:"participants" validate:"required,eq=2|eq=4,dive"`
	Sets         []setScoreRecord         `json:"sets" validate:"omitempty,max=3,dive"`
	Games        []gameScoreRecord        `json:"games" validate:"omitempty,max=3,dive"`
}

type matchParticipantRecord struct {
	PlayerID string `json:"player_id" validate:"required"`
	Team     string `json:"team" validate:"omitempty,oneof=team1 team2"`
}

type setScoreRecord struct {
	Team1            int  `json:"team1" validate:"min=0"`
	Team2            int  `json:"team2" validate:"min=0"`
	DecidingTiebreak bool `json:"deciding_tiebreak"`
}

type gameScoreRecord struct {
	Team1 int `json:"team1" validate:"min=0"`
	Team2 int `json:"team2" validate:"min=0"`
}

type recalculationJobRequest struct {
	All        bool   `json:"all"`
	DivisionID string `json:"division_id"`
	SeasonID   string `json:"season_id"`
}

func (req completedMatchRequest) toDomain() match.Match {
	participants := make([]match.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		participants = append(participants, match.Participant{
			PlayerID: p.PlayerID,
			Team:     match.Team(p.Team),
		})
	}

	sets := make([]match.SetScore, 0, len(req.Sets))
	for _, s := range req.Sets {
		sets = append(sets, match.SetScore{
			Team1:            s.Team1,
			Team2:            s.Team2,
			DecidingTiebreak: s.DecidingTiebreak,
		})
	}

	games := make([]match.GameScore, 0, len(req.Games))
	for _, g := range req.Games {
		games = append(games, match.GameScore{Team1: g.Team1, Team2: g.Team2})
	}

	return match.Match{
		ID:           req.MatchID,
		DivisionID:   req.DivisionID,
		SeasonID:     req.SeasonID,
		PlayedAt:     req.PlayedAt,
		Status:       match.StatusCompleted,
		Format:       match.Format(req.Format),
		Participants: participants,
		Sets:         sets,
		Games:        games,
	}
}
