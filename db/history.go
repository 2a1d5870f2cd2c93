package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"copyforge/models"
)

// ErrNotConfigured is returned by write operations when no database is
// available. Reads degrade to empty results instead.
var ErrNotConfigured = errors.New("history store not configured")

// ErrNotFound is returned when a post id matches nothing.
var ErrNotFound = errors.New("post not found")

// TopPerforming returns up to limit published posts for a channel, ordered
// by descending engagement rate, mapped to prompt-context examples.
func (s *Store) TopPerforming(ctx context.Context, channel models.Channel, limit int) ([]models.HistoricalExample, error) {
	if !s.IsConfigured() {
		return nil, nil
	}

	filter := bson.M{
		"channel":     channel,
		"published":   true,
		"performance": bson.M{"$ne": nil},
	}
	opts := options.Find().
		SetSort(bson.M{"performance.engagementRate": -1}).
		SetLimit(int64(limit))

	cursor, err := s.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query top performers: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.SavedPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode top performers: %w", err)
	}

	examples := make([]models.HistoricalExample, 0, len(posts))
	for _, p := range posts {
		if p.Performance == nil {
			continue
		}
		examples = append(examples, models.HistoricalExample{
			Content:        p.Content,
			Framework:      p.Framework,
			Likes:          p.Performance.Likes,
			Comments:       p.Performance.Comments,
			Shares:         p.Performance.Shares,
			Reach:          p.Performance.Reach,
			EngagementRate: p.Performance.EngagementRate,
		})
	}
	return examples, nil
}

// Save persists an accepted candidate as an unpublished post and returns the
// new record id.
func (s *Store) Save(ctx context.Context, post models.SavedPost) (string, error) {
	if !s.IsConfigured() {
		return "", ErrNotConfigured
	}

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt == 0 {
		post.CreatedAt = time.Now().Unix()
	}
	post.Published = false
	post.Performance = nil

	result, err := s.posts.InsertOne(ctx, post)
	if err != nil {
		return "", fmt.Errorf("failed to save post: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type")
	}
	return id.Hex(), nil
}

// RecordPerformance overwrites the four raw counters for a post with a fully
// recomputed engagement rate and marks the post published. Concurrent
// updates are last-write-wins; nothing is incremented.
func (s *Store) RecordPerformance(ctx context.Context, id string, likes, comments, shares, reach int) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post id: %w", err)
	}

	snapshot := models.PerformanceSnapshot{
		Likes:          likes,
		Comments:       comments,
		Shares:         shares,
		Reach:          reach,
		EngagementRate: models.EngagementRate(likes, comments, shares, reach),
	}
	update := bson.M{"$set": bson.M{
		"performance": snapshot,
		"published":   true,
		"publishedAt": time.Now().Unix(),
	}}

	result, err := s.posts.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to record performance: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// List returns saved posts, newest first, optionally filtered by channel.
func (s *Store) List(ctx context.Context, channel models.Channel, limit int) ([]models.SavedPost, error) {
	if !s.IsConfigured() {
		return []models.SavedPost{}, nil
	}

	filter := bson.M{}
	if channel != "" {
		filter["channel"] = channel
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))

	cursor, err := s.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.SavedPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// Insights summarizes what works for a channel: averages plus the best
// frameworks and triggers ranked by average engagement.
type Insights struct {
	AvgEngagementRate float64           `json:"avgEngagementRate"`
	BestFrameworks    []RankedDimension `json:"bestFrameworks"`
	BestTriggers      []RankedDimension `json:"bestTriggers"`
	TotalPosts        int               `json:"totalPosts"`
	PublishedPosts    int               `json:"publishedPosts"`
}

type RankedDimension struct {
	Name          string  `json:"name"`
	AvgEngagement float64 `json:"avgEngagement"`
}

// ComputeInsights aggregates saved posts for a channel ("" for all).
func (s *Store) ComputeInsights(ctx context.Context, channel models.Channel) (Insights, error) {
	insights := Insights{
		BestFrameworks: []RankedDimension{},
		BestTriggers:   []RankedDimension{},
	}
	if !s.IsConfigured() {
		return insights, nil
	}

	filter := bson.M{}
	if channel != "" {
		filter["channel"] = channel
	}
	cursor, err := s.posts.Find(ctx, filter)
	if err != nil {
		return insights, fmt.Errorf("failed to query posts for insights: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.SavedPost
	if err := cursor.All(ctx, &posts); err != nil {
		return insights, fmt.Errorf("failed to decode posts for insights: %w", err)
	}

	frameworks := map[string]*dimensionStats{}
	triggers := map[string]*dimensionStats{}
	var rateSum float64
	var rated int

	for _, p := range posts {
		insights.TotalPosts++
		if p.Published {
			insights.PublishedPosts++
		}
		if p.Performance == nil {
			continue
		}
		rate := p.Performance.EngagementRate
		rateSum += rate
		rated++

		if p.Framework != "" {
			accumulate(frameworks, p.Framework, rate)
		}
		for _, t := range p.Triggers {
			accumulate(triggers, t, rate)
		}
	}

	if rated > 0 {
		insights.AvgEngagementRate = rateSum / float64(rated)
	}
	insights.BestFrameworks = rank(frameworks, 5)
	insights.BestTriggers = rank(triggers, 5)
	return insights, nil
}

type dimensionStats struct {
	total float64
	count int
}

func accumulate(stats map[string]*dimensionStats, key string, rate float64) {
	st, ok := stats[key]
	if !ok {
		st = &dimensionStats{}
		stats[key] = st
	}
	st.total += rate
	st.count++
}

func rank(stats map[string]*dimensionStats, top int) []RankedDimension {
	ranked := make([]RankedDimension, 0, len(stats))
	for name, st := range stats {
		ranked = append(ranked, RankedDimension{Name: name, AvgEngagement: st.total / float64(st.count)})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].AvgEngagement > ranked[j].AvgEngagement })
	if len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}
