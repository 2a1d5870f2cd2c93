package models

// Candidate is one generated unit of copy. Rating and ImageURL are attached
// by later pipeline stages; parse order is preserved end to end.
type Candidate struct {
	Content   string        `json:"content" bson:"content"`
	Framework string        `json:"framework" bson:"framework"`
	Triggers  []string      `json:"triggers" bson:"triggers"`
	Rating    QualityRating `json:"rating" bson:"rating"`
	ImageURL  string        `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}
