package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"copyforge/db"
	"copyforge/models"
)

// PostController exposes the saved-posts library: save, list, record
// performance, and channel insights. A nil store means persistence is
// disabled; writes report that, reads return empty results.
type PostController struct {
	Store *db.Store
}

func NewPostController(store *db.Store) *PostController {
	return &PostController{Store: store}
}

// SavePostRequest is the save payload. The post is always created
// unpublished; performance arrives later through RecordPerformance.
type SavePostRequest struct {
	Content        string   `json:"content" binding:"required"`
	Topic          string   `json:"topic" binding:"required"`
	TargetAudience string   `json:"targetAudience" binding:"required"`
	Channel        string   `json:"channel" binding:"required"`
	Framework      string   `json:"framework"`
	QualityScore   float64  `json:"qualityScore"`
	Triggers       []string `json:"triggers"`
	ImageURL       string   `json:"imageUrl"`
}

func (pc *PostController) SavePost(c *gin.Context) {
	var req SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	channel, err := models.ParseChannel(req.Channel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := pc.Store.Save(c.Request.Context(), models.SavedPost{
		Content:        req.Content,
		Topic:          req.Topic,
		TargetAudience: req.TargetAudience,
		Channel:        channel,
		Framework:      req.Framework,
		QualityScore:   req.QualityScore,
		Triggers:       req.Triggers,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		respondStoreError(c, err, "failed to save post")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListPosts returns saved posts, newest first. Optional query params:
// channel, limit (default 50).
func (pc *PostController) ListPosts(c *gin.Context) {
	var channel models.Channel
	if raw := c.Query("channel"); raw != "" {
		parsed, err := models.ParseChannel(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		channel = parsed
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	posts, err := pc.Store.List(c.Request.Context(), channel, limit)
	if err != nil {
		respondStoreError(c, err, "failed to list posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// PerformanceRequest carries the raw counters observed on the platform.
// Each submission replaces the previous snapshot outright.
type PerformanceRequest struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Reach    int `json:"reach"`
}

func (pc *PostController) RecordPerformance(c *gin.Context) {
	var req PerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if req.Likes < 0 || req.Comments < 0 || req.Shares < 0 || req.Reach < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "counters must be non-negative"})
		return
	}

	id := c.Param("id")
	if err := pc.Store.RecordPerformance(c.Request.Context(), id, req.Likes, req.Comments, req.Shares, req.Reach); err != nil {
		respondStoreError(c, err, "failed to record performance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// Insights summarizes what performs for a channel ("" aggregates all).
func (pc *PostController) Insights(c *gin.Context) {
	var channel models.Channel
	if raw := c.Query("channel"); raw != "" {
		parsed, err := models.ParseChannel(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		channel = parsed
	}

	insights, err := pc.Store.ComputeInsights(c.Request.Context(), channel)
	if err != nil {
		respondStoreError(c, err, "failed to compute insights")
		return
	}
	c.JSON(http.StatusOK, insights)
}

func respondStoreError(c *gin.Context, err error, msg string) {
	if errors.Is(err, db.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence not configured"})
		return
	}
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	logrus.WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
