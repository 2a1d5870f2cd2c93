package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"copyforge/models"
	"copyforge/services"
)

// GenerateController exposes the generation pipeline and the rewrite loop to
// the UI. Services are injected at construction; there is no global state.
type GenerateController struct {
	Pipeline *services.Pipeline
	Rewriter *services.Rewriter
}

func NewGenerateController(pipeline *services.Pipeline, rewriter *services.Rewriter) *GenerateController {
	return &GenerateController{Pipeline: pipeline, Rewriter: rewriter}
}

// Generate runs one generation request and returns the typed result. Failure
// of the primary model call is reported distinctly from a legitimate empty
// result.
func (gc *GenerateController) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if req.Topic == "" || req.TargetAudience == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic and targetAudience are required"})
		return
	}

	result, err := gc.Pipeline.Generate(c.Request.Context(), req)
	if err != nil {
		respondGenerateError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RewriteRequest carries one rated candidate plus its generation context.
type RewriteRequest struct {
	Candidate      models.Candidate `json:"candidate" binding:"required"`
	Channel        string           `json:"channel" binding:"required"`
	Topic          string           `json:"topic" binding:"required"`
	TargetAudience string           `json:"targetAudience" binding:"required"`
}

type RewriteResponse struct {
	Candidate models.Candidate `json:"candidate"`
	Changed   bool             `json:"changed"`
}

// Rewrite runs one revision pass over a candidate. A candidate with no
// listed weaknesses comes back unchanged.
func (gc *GenerateController) Rewrite(c *gin.Context) {
	var req RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	channel, err := models.ParseChannel(req.Channel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	improved := gc.Rewriter.Rewrite(c.Request.Context(), req.Candidate, channel, req.Topic, req.TargetAudience)
	c.JSON(http.StatusOK, RewriteResponse{
		Candidate: improved,
		Changed:   improved.Content != req.Candidate.Content,
	})
}

func respondGenerateError(c *gin.Context, err error) {
	var unknownChannel *services.UnknownChannelError
	var generation *services.GenerationError

	switch {
	case errors.As(err, &unknownChannel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generation service not configured"})
	case errors.As(err, &generation):
		logrus.WithError(err).Error("generation request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("unexpected generation error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
