package team

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/gully/internal/middleware"
	"github.com/DhavalSuthar-24/gully/pkg/responses"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamController struct {
	repo TeamRepository
}

func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// PlayerInput is one roster entry in a team creation request.
type PlayerInput struct {
	Name string     `json:"name" binding:"required,min=1,max=64"`
	Role PlayerRole `json:"role" binding:"required,oneof=Batsman Bowler All-rounder Keeper"`
}

// CreateTeamRequest is the roster creation payload. Captain and keeper are
// indexes into Players.
type CreateTeamRequest struct {
	Name         string        `json:"name" binding:"required,min=2,max=64"`
	Players      []PlayerInput `json:"players" binding:"required,min=2,max=16,dive"`
	CaptainIndex *int          `json:"captain_index,omitempty"`
}

// validateRoster enforces the squad shape rules: size bounds from the
// binding tags plus exactly one keeper.
func validateRoster(players []PlayerInput) error {
	keepers := 0
	for _, p := range players {
		if p.Role == RoleKeeper {
			keepers++
		}
	}
	if keepers != 1 {
		return fmt.Errorf("a team must have exactly one keeper, got %d", keepers)
	}
	return nil
}

// @Summary      Create a team
// @Description  Create a roster of 2-16 named players with exactly one keeper.
// @Tags         Team
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        team  body  CreateTeamRequest  true  "Roster details"
// @Success      201  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	scorerID, err := middleware.GetScorerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	if err := validateRoster(req.Players); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if req.CaptainIndex != nil && (*req.CaptainIndex < 0 || *req.CaptainIndex >= len(req.Players)) {
		responses.BadRequest(c, "captain_index is out of range")
		return
	}

	newTeam := &Team{
		PublicID:          uuid.NewString(),
		Name:              req.Name,
		CreatedByScorerID: scorerID,
	}
	for _, p := range req.Players {
		newTeam.Players = append(newTeam.Players, Player{Name: p.Name, Role: p.Role})
	}

	err = tc.repo.WithTransaction(func(txRepo TeamRepository) error {
		if err := txRepo.CreateTeam(newTeam); err != nil {
			return err
		}
		// Captain and keeper ids only exist after the insert.
		if req.CaptainIndex != nil {
			newTeam.CaptainID = &newTeam.Players[*req.CaptainIndex].ID
		}
		for i := range newTeam.Players {
			if newTeam.Players[i].Role == RoleKeeper {
				newTeam.KeeperID = &newTeam.Players[i].ID
				break
			}
		}
		return txRepo.UpdateTeam(newTeam)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", newTeam)
}

// @Summary      Get a team
// @Tags         Team
// @Produce      json
// @Param        id  path  string  true  "Team public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /teams/{id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	team, err := tc.repo.GetTeamByPublicID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to load team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", team)
}

// @Summary      List my teams
// @Tags         Team
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  responses.PaginatedResponse
// @Router       /teams [get]
func (tc *TeamController) ListTeams(c *gin.Context) {
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

	teams, total, err := tc.repo.GetScorerTeams(scorerID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, limit)
}

// @Summary      Delete a team
// @Tags         Team
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Team public ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	scorerID, err := middleware.GetScorerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	team, err := tc.repo.GetTeamByPublicID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to load team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}
	if team.CreatedByScorerID != scorerID {
		responses.Forbidden(c, "You can only delete teams you created")
		return
	}

	if err := tc.repo.DeleteTeam(team.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted", nil)
}
