package models

// ReferenceImage carries an uploaded brand image used for style extraction.
type ReferenceImage struct {
	Data     []byte `json:"data"`
	MimeType string `json:"mimeType"`
}

// GenerationRequest is the immutable input collected by the UI for one
// generation run. Channel-specific fields are only read for their channel.
type GenerationRequest struct {
	Channel        Channel `json:"channel"`
	Topic          string  `json:"topic"`
	TargetAudience string  `json:"targetAudience"`
	Goal           string  `json:"goal"`
	Tone           string  `json:"tone"`
	Description    string  `json:"description"`
	Keywords       string  `json:"keywords"` // comma-delimited

	// Social channels
	Triggers    []string `json:"triggers"`
	ContentType string   `json:"contentType"` // instagram: feed, reel, story
	PostType    string   `json:"postType"`    // facebook: organic, ad

	// Landing page
	Framework   string `json:"framework"` // AIDA, PAS, BAB
	UniqueValue string `json:"uniqueValue"`

	// Email
	CampaignType string `json:"campaignType"` // welcome, nurture, promotional, announcement

	// Website
	Section string `json:"section"` // homepage, about, services, pricing, contact

	ReferenceImage *ReferenceImage `json:"referenceImage,omitempty"`
}
