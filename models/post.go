package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SavedPost is the persisted form of an accepted candidate. Created
// unpublished; recording performance marks it published.
type SavedPost struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Content        string               `json:"content" bson:"content"`
	Topic          string               `json:"topic" bson:"topic"`
	TargetAudience string               `json:"targetAudience" bson:"targetAudience"`
	Channel        Channel              `json:"channel" bson:"channel"`
	Framework      string               `json:"framework,omitempty" bson:"framework,omitempty"`
	QualityScore   float64              `json:"qualityScore" bson:"qualityScore"`
	Triggers       []string             `json:"triggers,omitempty" bson:"triggers,omitempty"`
	ImageURL       string               `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Published      bool                 `json:"published" bson:"published"`
	PublishedAt    int64                `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	CreatedAt      int64                `json:"createdAt" bson:"createdAt"`
	Performance    *PerformanceSnapshot `json:"performance,omitempty" bson:"performance,omitempty"`
}

// PerformanceSnapshot holds observed engagement counters for a published post.
// Updates are full overwrites of the four raw counters; the rate is always
// recomputed, never accumulated.
type PerformanceSnapshot struct {
	Likes          int     `json:"likes" bson:"likes"`
	Comments       int     `json:"comments" bson:"comments"`
	Shares         int     `json:"shares" bson:"shares"`
	Reach          int     `json:"reach" bson:"reach"`
	EngagementRate float64 `json:"engagementRate" bson:"engagementRate"`
}

// HistoricalExample is a prior high performer used as prompt context.
type HistoricalExample struct {
	Content        string  `json:"content" bson:"content"`
	Framework      string  `json:"framework" bson:"framework"`
	Likes          int     `json:"likes" bson:"likes"`
	Comments       int     `json:"comments" bson:"comments"`
	Shares         int     `json:"shares" bson:"shares"`
	Reach          int     `json:"reach" bson:"reach"`
	EngagementRate float64 `json:"engagementRate" bson:"engagementRate"`
}

// EngagementRate derives the engagement percentage from raw counters. Zero
// reach yields zero regardless of the other counters.
func EngagementRate(likes, comments, shares, reach int) float64 {
	if reach <= 0 {
		return 0
	}
	return float64(likes+comments+shares) / float64(reach) * 100
}
