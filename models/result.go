package models

// LandingPageCopy is the structured output shape for the landing-page channel.
type LandingPageCopy struct {
	Headline      string        `json:"headline"`
	Subheadline   string        `json:"subheadline"`
	HeroCopy      string        `json:"heroCopy"`
	Features      []string      `json:"features"`
	SocialProof   string        `json:"socialProof"`
	Cta           string        `json:"cta"`
	CtaSupporting string        `json:"ctaSupporting"`
	Rating        QualityRating `json:"rating"`
}

// EmailCopy is the structured output shape for the email channel.
type EmailCopy struct {
	SubjectLines []string      `json:"subjectLines"`
	PreviewText  string        `json:"previewText"`
	Body         string        `json:"body"`
	Cta          string        `json:"cta"`
	Rating       QualityRating `json:"rating"`
}

// WebsiteCopy is the structured output shape for the website channel.
type WebsiteCopy struct {
	Headline    string        `json:"headline"`
	Subheadline string        `json:"subheadline"`
	BodyCopy    []string      `json:"bodyCopy"`
	Cta         string        `json:"cta"`
	Rating      QualityRating `json:"rating"`
}

// GenerationResult is the discriminated union returned to the UI. Exactly one
// payload group is populated, selected by Channel: Variations (plus Hashtags
// and StoryText for Instagram) for the social channels, or one of the
// structured objects for the page-style channels.
type GenerationResult struct {
	Channel    Channel     `json:"channel"`
	Variations []Candidate `json:"variations,omitempty"`

	// Instagram auxiliaries
	Hashtags  []string `json:"hashtags,omitempty"`
	StoryText string   `json:"storyText,omitempty"`

	LandingPage *LandingPageCopy `json:"landingPage,omitempty"`
	Email       *EmailCopy       `json:"email,omitempty"`
	Website     *WebsiteCopy     `json:"website,omitempty"`
}
