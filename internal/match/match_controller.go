package match

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/DhavalSuthar-24/gully/config"
	"github.com/DhavalSuthar-24/gully/internal/live"
	"github.com/DhavalSuthar-24/gully/internal/middleware"
	"github.com/DhavalSuthar-24/gully/internal/team"
	"github.com/DhavalSuthar-24/gully/pkg/responses"
	"github.com/DhavalSuthar-24/gully/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MatchController serves the scoring API. Live matches are held in memory
// and mutated under a per-match lock; the database write happens after the
// transition, off the request path. The in-memory state is authoritative
// while a match is live.
type MatchController struct {
	repo     MatchRepository
	teamRepo team.TeamRepository
	hub      *live.Hub
	config   *config.Config

	mu   sync.Mutex
	open map[string]*liveMatch
}

type liveMatch struct {
	sync.Mutex
	m *Match
}

func NewMatchController(repo MatchRepository, teamRepo team.TeamRepository, hub *live.Hub, cfg *config.Config) *MatchController {
	return &MatchController{
		repo:     repo,
		teamRepo: teamRepo,
		hub:      hub,
		config:   cfg,
		open:     make(map[string]*liveMatch),
	}
}

// acquire returns the in-memory entry for a match, loading it from the
// repository on first touch. Nil with no error means not found.
func (mc *MatchController) acquire(publicID string) (*liveMatch, error) {
	mc.mu.Lock()
	entry, ok := mc.open[publicID]
	mc.mu.Unlock()
	if ok {
		return entry, nil
	}

	m, err := mc.repo.GetMatchByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	if entry, ok = mc.open[publicID]; ok {
		return entry, nil
	}
	entry = &liveMatch{m: m}
	mc.open[publicID] = entry
	return entry, nil
}

// withMatch runs fn under the match lock and handles the not-found path.
func (mc *MatchController) withMatch(c *gin.Context, fn func(m *Match) error) {
	entry, err := mc.acquire(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to load match")
		return
	}
	if entry == nil {
		responses.NotFound(c, "Match")
		return
	}

	entry.Lock()
	defer entry.Unlock()
	if err := fn(entry.m); err != nil {
		sendEngineError(c, err)
	}
}

// sendEngineError maps engine sentinels to HTTP statuses.
func sendEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidStateTransition):
		responses.Conflict(c, err.Error())
	case errors.Is(err, ErrIllegalDelivery),
		errors.Is(err, ErrMissingSelection),
		errors.Is(err, ErrDuplicatePlayerReference),
		errors.Is(err, ErrIneligiblePlayer),
		errors.Is(err, ErrNoReplacementAvailable):
		responses.BadRequest(c, err.Error())
	default:
		responses.InternalServerError(c, err.Error())
	}
}

// persist writes the current state behind the request. The in-memory copy
// already moved on; a failed save is logged and retried on the next one.
func (mc *MatchController) persist(m *Match, newDelivery *Delivery, undone *Delivery) {
	snapshot := *m
	var d *Delivery
	if newDelivery != nil {
		cp := *newDelivery
		d = &cp
	}
	var gone *Delivery
	if undone != nil {
		cp := *undone
		gone = &cp
	}

	go func() {
		if d != nil {
			if err := mc.repo.SaveDelivery(d); err != nil {
				log.Printf("match %s: failed to persist delivery %d: %v", snapshot.PublicID, d.Seq, err)
			}
		}
		if gone != nil {
			if err := mc.repo.DeleteDelivery(snapshot.ID, gone.Seq); err != nil {
				log.Printf("match %s: failed to remove undone delivery %d: %v", snapshot.PublicID, gone.Seq, err)
			}
		}
		if err := mc.repo.UpdateMatch(&snapshot); err != nil {
			log.Printf("match %s: failed to persist state: %v", snapshot.PublicID, err)
		}
	}()
}

// broadcast pushes the spectator summary for the match's room.
func (mc *MatchController) broadcast(m *Match) {
	mc.hub.Broadcast(m.Code, buildSummaryPayload(m))
}

// CreateMatchRequest sets up a new match between two existing rosters.
type CreateMatchRequest struct {
	Team1ID         uint `json:"team1_id" binding:"required"`
	Team2ID         uint `json:"team2_id" binding:"required"`
	OversPerInnings int  `json:"overs_per_innings" binding:"required,min=1,max=50"`
	TeamSize        int  `json:"team_size" binding:"required,min=2,max=16"`
}

// TossRequest records who won the toss and what they chose.
type TossRequest struct {
	WinnerTeamID uint       `json:"winner_team_id" binding:"required"`
	Choice       TossChoice `json:"choice" binding:"required,oneof=bat bowl"`
}

// OpenersRequest selects the opening pair and bowler.
type OpenersRequest struct {
	StrikerID    uint `json:"striker_id" binding:"required"`
	NonStrikerID uint `json:"non_striker_id" binding:"required"`
	BowlerID     uint `json:"bowler_id" binding:"required"`
}

// PlayerRequest carries a single player selection.
type PlayerRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

// @Summary      Create a match
// @Description  Set up a limited-overs match between two of your rosters.
// @Tags         Match
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        match  body  CreateMatchRequest  true  "Match setup"
// @Success      201  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	scorerID, err := middleware.GetScorerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	if req.Team1ID == req.Team2ID {
		responses.BadRequest(c, "A team cannot play itself")
		return
	}

	team1, err := mc.teamRepo.GetTeamByID(req.Team1ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load teams")
		return
	}
	team2, err := mc.teamRepo.GetTeamByID(req.Team2ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load teams")
		return
	}
	if team1 == nil || team2 == nil {
		responses.NotFound(c, "Team")
		return
	}
	if len(team1.Players) < req.TeamSize || len(team2.Players) < req.TeamSize {
		responses.BadRequest(c, "team_size exceeds a roster")
		return
	}

	m := &Match{
		PublicID:          uuid.NewString(),
		Code:              utils.GenerateJoinCode(6),
		Type:              TypeSingle,
		CreatedByScorerID: scorerID,
		Team1ID:           team1.ID,
		Team1:             *team1,
		Team2ID:           team2.ID,
		Team2:             *team2,
		OversPerInnings:   req.OversPerInnings,
		TeamSize:          req.TeamSize,
		Status:            StatusMatchLive,
	}
	if err := mc.repo.CreateMatch(m); err != nil {
		// Join codes are short; a collision shows up as a unique violation.
		m.Code = utils.GenerateJoinCode(6)
		if err := mc.repo.CreateMatch(m); err != nil {
			responses.InternalServerError(c, "Failed to create match")
			return
		}
	}

	responses.SendSuccess(c, http.StatusCreated, "Match created", m)
}

// @Summary      List my matches
// @Tags         Match
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  responses.PaginatedResponse
// @Router       /matches [get]
func (mc *MatchController) ListMatches(c *gin.Context) {
	scorerID, err := middleware.GetScorerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}

	matches, total, err := mc.repo.GetScorerMatches(scorerID, c.Query("status"), page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", matches, total, page, limit)
}

// @Summary      Get match state
// @Tags         Match
// @Produce      json
// @Param        id  path  string  true  "Match public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	mc.withMatch(c, func(m *Match) error {
		responses.SendSuccess(c, http.StatusOK, "", gin.H{
			"match": m,
			"phase": m.Phase(),
		})
		return nil
	})
}

// @Summary      Get match by join code
// @Description  Spectator lookup: resolve the short join code to the match.
// @Tags         Match
// @Produce      json
// @Param        code  path  string  true  "Join code"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/code/{code} [get]
func (mc *MatchController) GetMatchByCode(c *gin.Context) {
	m, err := mc.GetLiveMatchByCode(c.Param("code"))
	if err != nil {
		responses.InternalServerError(c, "Failed to load match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"match": m,
		"phase": m.Phase(),
	})
}

// @Summary      Record the toss
// @Tags         Match
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string       true  "Match public ID"
// @Param        toss  body  TossRequest  true  "Toss outcome"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /matches/{id}/toss [post]
func (mc *MatchController) RecordToss(c *gin.Context) {
	var req TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	mc.withMatch(c, func(m *Match) error {
		if err := RecordToss(m, req.WinnerTeamID, req.Choice); err != nil {
			return err
		}
		mc.persist(m, nil, nil)
		mc.broadcast(m)
		responses.SendSuccess(c, http.StatusOK, "Toss recorded", gin.H{
			"match": m,
			"phase": m.Phase(),
		})
		return nil
	})
}

// @Summary      Select openers
// @Tags         Match
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string          true  "Match public ID"
// @Param        openers  body  OpenersRequest  true  "Opening pair and bowler"
// @Success      200  {object}  responses.SuccessResponse
// @Router       /matches/{id}/openers [post]
func (mc *MatchController) SelectOpeners(c *gin.Context) {
	var req OpenersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	mc.withMatch(c, func(m *Match) error {
		if err := SelectOpeners(m, req.StrikerID, req.NonStrikerID, req.BowlerID); err != nil {
			return err
		}
		mc.persist(m, nil, nil)
		mc.broadcast(m)
		responses.SendSuccess(c, http.StatusOK, "Openers selected", gin.H{
			"match": m,
			"phase": m.Phase(),
		})
		return nil
	})
}

// @Summary      Record a delivery
// @Description  Score one ball: runs, extras, wicket. The response carries
// @Description  the pending selections the scorer must resolve next.
// @Tags         Match
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string   true  "Match public ID"
// @Param        outcome  body  Outcome  true  "Delivery outcome"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /matches/{id}/deliveries [post]
func (mc *MatchController) RecordDelivery(c *gin.Context) {
	var req Outcome
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	mc.withMatch(c, func(m *Match) error {
		result, err := RecordDelivery(m, req)
		if err != nil {
			return err
		}
		mc.persist(m, result.Delivery, nil)
		mc.broadcast(m)
		responses.SendSuccess(c, http.StatusOK, "Delivery recorded", gin.H{
			"result": result,
			"phase":  m.Phase(),
		})
		return nil
	})
}

// @Summary      Undo the last delivery
// @Tags         Match
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Match public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /matches/{id}/undo [post]
func (mc *MatchController) UndoLastDelivery(c *gin.Context) {
	mc.withMatch(c, func(m *Match) error {
		popped, err := UndoLastDelivery(m)
		if err != nil {
			return err
		}
		if popped != nil {
			mc.persist(m, nil, popped)
			mc.broadcast(m)
		}
		responses.SendSuccess(c, http.StatusOK, "Last delivery undone", gin.H{
			"undone": popped,
			"phase":  m.Phase(),
		})
		return nil
	})
}

// @Summary      Select replacement batsman
// @Tags         Match
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string         true  "Match public ID"
// @Param        player  body  PlayerRequest  true  "Incoming batsman"
// @Success      200  {object}  responses.SuccessResponse
// @Router       /matches/{id}/batsman [post]
func (mc *MatchController) SelectReplacementBatsman(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	mc.withMatch(c, func(m *Match) error {
		if err := SelectReplacementBatsman(m, req.PlayerID); err != nil {
			return err
		}
		mc.persist(m, nil, nil)
		mc.broadcast(m)
		responses.SendSuccess(c, http.StatusOK, "Batsman selected", gin.H{
			"match": m,
			"phase": m.Phase(),
		})
		return nil
	})
}

// @Summary      Select next bowler
// @Tags         Match
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string         true  "Match public ID"
// @Param        player  body  PlayerRequest  true  "Next bowler"
// @Success      200  {object}  responses.SuccessResponse
// @Router       /matches/{id}/bowler [post]
func (mc *MatchController) SelectNextBowler(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	mc.withMatch(c, func(m *Match) error {
		if err := SelectNextBowler(m, req.PlayerID); err != nil {
			return err
		}
		mc.persist(m, nil, nil)
		mc.broadcast(m)
		responses.SendSuccess(c, http.StatusOK, "Bowler selected", gin.H{
			"match": m,
			"phase": m.Phase(),
		})
		return nil
	})
}

// @Summary      Swap batsmen ends
// @Tags         Match
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Match public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Router       /matches/{id}/swap [post]
func (mc *MatchController) SwapEnds(c *gin.Context) {
	mc.withMatch(c, func(m *Match) error {
		if err := SwapEnds(m); err != nil {
			return err
		}
		mc.persist(m, nil, nil)
		mc.broadcast(m)
		responses.SendSuccess(c, http.StatusOK, "Ends swapped", gin.H{
			"striker_id":     m.StrikerID,
			"non_striker_id": m.NonStrikerID,
		})
		return nil
	})
}

// @Summary      Start the second innings
// @Tags         Match
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Match public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /matches/{id}/second-innings [post]
func (mc *MatchController) StartSecondInnings(c *gin.Context) {
	mc.withMatch(c, func(m *Match) error {
		if err := AdvanceToSecondInnings(m); err != nil {
			return err
		}
		mc.persist(m, nil, nil)
		mc.broadcast(m)
		responses.SendSuccess(c, http.StatusOK, "Second innings started", gin.H{
			"match":  m,
			"phase":  m.Phase(),
			"target": m.Target(),
		})
		return nil
	})
}

// @Summary      Finalize the match
// @Description  Compute and store the result. Safe to call again on a
// @Description  completed match.
// @Tags         Match
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Match public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /matches/{id}/finalize [post]
func (mc *MatchController) FinalizeMatch(c *gin.Context) {
	mc.withMatch(c, func(m *Match) error {
		if err := FinalizeMatch(m); err != nil {
			return err
		}
		mc.persist(m, nil, nil)
		mc.broadcast(m)
		responses.SendSuccess(c, http.StatusOK, "Match finalized", gin.H{
			"result":         m.Result,
			"winner_team_id": m.WinnerTeamID,
		})
		return nil
	})
}

// buildSummaryPayload is injected by the routes wiring to avoid an import
// cycle between match and stats. It defaults to the raw match.
var buildSummaryPayload = func(m *Match) interface{} { return m }

// SetSummaryBuilder installs the spectator summary renderer.
func SetSummaryBuilder(fn func(m *Match) interface{}) {
	if fn != nil {
		buildSummaryPayload = fn
	}
}

// SnapshotByPublicID returns a read-locked copy of the match for derived
// views.
func (mc *MatchController) SnapshotByPublicID(publicID string) (*Match, error) {
	entry, err := mc.acquire(publicID)
	if err != nil || entry == nil {
		return nil, err
	}
	entry.Lock()
	snapshot := *entry.m
	entry.Unlock()
	return &snapshot, nil
}

// GetLiveMatchByCode exposes a read-locked snapshot for the live feed and
// public views.
func (mc *MatchController) GetLiveMatchByCode(code string) (*Match, error) {
	mc.mu.Lock()
	for _, entry := range mc.open {
		if entry.m.Code == code {
			mc.mu.Unlock()
			entry.Lock()
			snapshot := *entry.m
			entry.Unlock()
			return &snapshot, nil
		}
	}
	mc.mu.Unlock()
	return mc.repo.GetMatchByCode(code)
}
