package stats

import (
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/gully/internal/match"
	"github.com/DhavalSuthar-24/gully/pkg/responses"
	"github.com/gin-gonic/gin"
)

// StatsController serves the derived read views: summary, scorecards and
// the MVP award. Everything here is recomputed from the ledger on demand.
type StatsController struct {
	matches *match.MatchController
}

func NewStatsController(matches *match.MatchController) *StatsController {
	return &StatsController{matches: matches}
}

func (sc *StatsController) snapshot(c *gin.Context) *match.Match {
	m, err := sc.matches.SnapshotByPublicID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to load match")
		return nil
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return nil
	}
	return m
}

// @Summary      Live summary
// @Description  Compact spectator view: scores, batsmen at the crease,
// @Description  current bowler, last ball, target.
// @Tags         Stats
// @Produce      json
// @Param        id  path  string  true  "Match public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id}/summary [get]
func (sc *StatsController) GetSummary(c *gin.Context) {
	m := sc.snapshot(c)
	if m == nil {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", BuildSummary(m))
}

// @Summary      Full scorecard
// @Description  Batting, bowling, extras, fall of wickets and partnerships
// @Description  for every innings played so far, or one innings when asked.
// @Tags         Stats
// @Produce      json
// @Param        id       path   string  true   "Match public ID"
// @Param        innings  query  int     false  "Restrict to one innings (1 or 2)"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id}/scorecard [get]
func (sc *StatsController) GetScorecard(c *gin.Context) {
	m := sc.snapshot(c)
	if m == nil {
		return
	}

	first, last := 1, m.CurrentInnings
	if raw := c.Query("innings"); raw != "" {
		inning, err := strconv.Atoi(raw)
		if err != nil || inning < 1 || inning > m.CurrentInnings {
			responses.BadRequest(c, "innings must name an innings already played")
			return
		}
		first, last = inning, inning
	}

	var cards []Scorecard
	for inning := first; inning <= last; inning++ {
		cards = append(cards, BuildScorecard(m, inning))
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"match_id":   m.PublicID,
		"result":     m.Result,
		"scorecards": cards,
	})
}

// @Summary      Man of the match
// @Description  The best performance across both sides by weighted points.
// @Tags         Stats
// @Produce      json
// @Param        id  path  string  true  "Match public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id}/mvp [get]
func (sc *StatsController) GetMVP(c *gin.Context) {
	m := sc.snapshot(c)
	if m == nil {
		return
	}

	best := ManOfTheMatch(m, DefaultWeights())
	if best == nil {
		responses.NotFound(c, "Performance data")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", best)
}
