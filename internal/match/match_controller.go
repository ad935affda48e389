package match

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DhavalSuthar-24/livescore/internal/common"
	"github.com/DhavalSuthar-24/livescore/internal/scoring"
	responses "github.com/DhavalSuthar-24/livescore/pkg/matchresponse"
	"github.com/gin-gonic/gin"
)

// MatchController handles match-related HTTP requests
type MatchController struct {
	service *Service
}

// NewMatchController creates a new match controller
func NewMatchController(service *Service) *MatchController {
	return &MatchController{service: service}
}

// --- Helper Functions ---

func getMatchID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

// expectedVersion reads the version the client based its action on. The
// If-Match header wins over the body field; both are optional.
func expectedVersion(c *gin.Context, body *int64) (*int64, error) {
	h := strings.TrimSpace(c.GetHeader("If-Match"))
	if h == "" || h == "*" {
		return body, nil
	}
	h = strings.Trim(strings.TrimPrefix(h, "W/"), `"`)
	v, err := strconv.ParseInt(h, 10, 64)
	if err != nil || v < 1 {
		return nil, fmt.Errorf("invalid If-Match header %q", c.GetHeader("If-Match"))
	}
	return &v, nil
}

func (mc *MatchController) respond(c *gin.Context, status int, m *Match, err error) {
	if err != nil {
		responses.ErrorResponse(c, StatusFor(err), PublicMessage(err))
		return
	}
	c.Header("ETag", fmt.Sprintf(`"%d"`, m.Version))
	c.JSON(status, m.ToResponse())
}

func (mc *MatchController) transition(c *gin.Context, body *int64, action scoring.Action) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := getMatchID(c)
	if !ok {
		return
	}
	version, err := expectedVersion(c, body)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	m, err := mc.service.Transition(c.Request.Context(), userID, id, version, action)
	mc.respond(c, http.StatusOK, m, err)
}

// @Summary      Create a match
// @Description  Sets up an upcoming match with both rosters and its participant lists. Requires the organizer or admin role.
// @Tags         Matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        match body CreateMatchRequest true "Match setup"
// @Success      201 {object} MatchResponse
// @Failure      400 {object} map[string]string "Invalid setup"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      403 {object} map[string]string "Forbidden"
// @Failure      409 {object} map[string]string "Match code already exists"
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.service.Create(c.Request.Context(), userID, req)
	mc.respond(c, http.StatusCreated, m, err)
}

// @Summary      Get a match
// @Description  Returns the authoritative match aggregate and its version. Clients re-fetch this after a lost response instead of replaying the action.
// @Tags         Matches
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Match ID"
// @Success      200 {object} MatchResponse
// @Failure      403 {object} map[string]string "Not a participant"
// @Failure      404 {object} map[string]string "Match not found"
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := getMatchID(c)
	if !ok {
		return
	}
	m, err := mc.service.Get(c.Request.Context(), userID, id)
	mc.respond(c, http.StatusOK, m, err)
}

// @Summary      Record the toss
// @Description  Starts the first innings. Only valid while the match is upcoming.
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path   int          true  "Match ID"
// @Param        If-Match header string       false "Version the client read"
// @Param        toss     body   TossRequest  true  "Toss winner and decision"
// @Success      200 {object} MatchResponse
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string "Version conflict"
// @Router       /matches/{id}/toss [post]
func (mc *MatchController) Toss(c *gin.Context) {
	var req TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.transition(c, req.Version, scoring.Toss{Winner: req.Winner, Decision: scoring.TossDecision(req.Decision)})
}

// @Summary      Select batsmen and bowler
// @Description  Fills the striker, non-striker and bowler slots. Empty fields keep the current selection. The previous over's bowler cannot be selected.
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id        path   int                   true  "Match ID"
// @Param        If-Match  header string                false "Version the client read"
// @Param        selection body   SelectPlayersRequest  true  "Selection"
// @Success      200 {object} MatchResponse
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string "Version conflict"
// @Router       /matches/{id}/players [post]
func (mc *MatchController) SelectPlayers(c *gin.Context) {
	var req SelectPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.transition(c, req.Version, scoring.SelectPlayers{
		Batsman1: req.Batsman1,
		Batsman2: req.Batsman2,
		Bowler:   req.Bowler,
		Striker:  scoring.StrikerSlot(req.Striker),
	})
}

// @Summary      Score a ball
// @Description  Applies one delivery. outcome is one of 0-6, W, WD, NB, B, LB; extraRuns is what the batsmen ran off an extra.
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path   int          true  "Match ID"
// @Param        If-Match header string       false "Version the client read"
// @Param        ball     body   BallRequest  true  "Ball signal"
// @Success      200 {object} MatchResponse
// @Failure      400 {object} map[string]string "Invalid ball or match not ready"
// @Failure      403 {object} map[string]string "Not a scorer"
// @Failure      409 {object} map[string]string "Version conflict"
// @Router       /matches/{id}/ball [post]
func (mc *MatchController) ScoreBall(c *gin.Context) {
	var req BallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	mc.transition(c, req.Version, scoring.ScoreBall{Outcome: scoring.Outcome(req.Outcome), ExtraRuns: req.ExtraRuns})
}

// @Summary      Undo the last ball
// @Description  Reverses the most recent delivery. The body is optional.
// @Tags         Scoring
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true  "Match ID"
// @Param        If-Match header string  false "Version the client read"
// @Success      200 {object} MatchResponse
// @Failure      400 {object} map[string]string "Nothing to undo"
// @Failure      404 {object} map[string]string "Match or player not found"
// @Failure      409 {object} map[string]string "Version conflict"
// @Router       /matches/{id}/undo [post]
func (mc *MatchController) UndoBall(c *gin.Context) {
	var req UndoRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.ValidationErrorResponse(c, err)
			return
		}
	}
	mc.transition(c, req.Version, scoring.UndoBall{})
}
