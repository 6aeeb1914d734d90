package handlers

import (
	"errors"
	"log"
	"net/http"
	"votex/internal/polls"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PollHandler struct {
	service *polls.Service
}

func NewPollHandler(service *polls.Service) *PollHandler {
	return &PollHandler{service: service}
}

type createPollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Visibility  string   `json:"visibility"`
	Password    string   `json:"password"`
	Options     []string `json:"options"`
}

func (h *PollHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createPollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	poll, err := h.service.Create(user.ID, polls.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		Password:    req.Password,
		Options:     req.Options,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "poll created", "poll_id": poll.PublicID})
}

func (h *PollHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	summaries, err := h.service.List(user.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"polls": summaries})
}

// Get returns the poll view. An optional password query parameter unlocks
// private polls in the same request, so there is no verify-then-reread gap.
func (h *PollHandler) Get(c *gin.Context) {
	user := CurrentUser(c)
	pollID, ok := h.parsePollID(c)
	if !ok {
		return
	}

	view, err := h.service.GetView(pollID, user.ID, c.Query("password"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type verifyRequest struct {
	Password string `json:"password"`
}

func (h *PollHandler) VerifyPassword(c *gin.Context) {
	pollID, ok := h.parsePollID(c)
	if !ok {
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	verified, err := h.service.VerifyPassword(pollID, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if !verified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password", "verified": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password verified", "verified": true})
}

type voteRequest struct {
	OptionID uint   `json:"option_id" binding:"required"`
	Password string `json:"password"`
}

func (h *PollHandler) Vote(c *gin.Context) {
	user := CurrentUser(c)
	pollID, ok := h.parsePollID(c)
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "option_id required"})
		return
	}

	if err := h.service.CastVote(pollID, user.ID, req.OptionID, req.Password); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vote recorded"})
}

func (h *PollHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	pollID, ok := h.parsePollID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(pollID, user.ID); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "poll deleted"})
}

// parsePollID reads the :id route parameter. Malformed ids report NotFound:
// an id that cannot exist is indistinguishable from one that does not.
func (h *PollHandler) parsePollID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "poll not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *PollHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, polls.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "poll not found"})
	case errors.Is(err, polls.ErrPasswordRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "password required", "requires_password": true})
	case errors.Is(err, polls.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password", "requires_password": true})
	case errors.Is(err, polls.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
	case errors.Is(err, polls.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option"})
	case errors.Is(err, polls.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": "already voted on this poll"})
	case errors.Is(err, polls.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("poll handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
