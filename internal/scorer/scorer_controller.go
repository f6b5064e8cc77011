package scorer

import (
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/gully/config"
	"github.com/DhavalSuthar-24/gully/internal/middleware"
	"github.com/DhavalSuthar-24/gully/pkg/responses"
	"github.com/DhavalSuthar-24/gully/pkg/token"
	"github.com/DhavalSuthar-24/gully/pkg/utils"
	"github.com/gin-gonic/gin"
)

type ScorerController struct {
	repo   ScorerRepository
	config *config.Config
}

func NewScorerController(repo ScorerRepository, cfg *config.Config) *ScorerController {
	return &ScorerController{repo: repo, config: cfg}
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the signed token plus the account it belongs to.
type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	Scorer      *Scorer `json:"scorer"`
}

// @Summary      Register a new scorer
// @Description  Create a scorer account with name, email and password.
// @Tags         Scorer
// @Accept       json
// @Produce      json
// @Param        scorer  body  RegisterRequest  true  "Scorer registration details"
// @Success      201  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /auth/register [post]
func (sc *ScorerController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	email := strings.ToLower(req.Email)
	existing, err := sc.repo.GetScorerByEmail(email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing accounts")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A scorer with this email already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Error hashing password")
		return
	}

	newScorer := &Scorer{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := sc.repo.CreateScorer(newScorer); err != nil {
		responses.InternalServerError(c, "Failed to create scorer account")
		return
	}

	accessToken, err := token.GenerateJWT(newScorer.ID, sc.config.JWT.AccessTokenSecret, sc.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Token generation failed")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Scorer registered successfully", AuthResponse{
		AccessToken: accessToken,
		Scorer:      newScorer,
	})
}

// @Summary      Log in
// @Description  Exchange email and password for an access token.
// @Tags         Scorer
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /auth/login [post]
func (sc *ScorerController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	scorer, err := sc.repo.GetScorerByEmail(strings.ToLower(req.Email))
	if err != nil {
		responses.InternalServerError(c, "Login failed")
		return
	}
	if scorer == nil || !utils.CheckPassword(req.Password, scorer.PasswordHash) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, err := token.GenerateJWT(scorer.ID, sc.config.JWT.AccessTokenSecret, sc.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Token generation failed")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", AuthResponse{
		AccessToken: accessToken,
		Scorer:      scorer,
	})
}

// @Summary      Current scorer
// @Description  Return the account behind the presented token.
// @Tags         Scorer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  responses.SuccessResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /auth/me [get]
func (sc *ScorerController) Me(c *gin.Context) {
	scorerID, err := middleware.GetScorerIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	scorer, err := sc.repo.GetScorerByID(scorerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load scorer")
		return
	}
	if scorer == nil {
		responses.NotFound(c, "Scorer")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", scorer)
}
