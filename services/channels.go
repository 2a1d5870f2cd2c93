package services

import "copyforge/models"

// outputShape selects how the raw model response is parsed.
type outputShape int

const (
	// shapeVariations: repeated VARIATION blocks, rated and filtered
	// individually (social channels).
	shapeVariations outputShape = iota
	// shapeObject: one JSON object with a single composite rating
	// (landing page, email, website).
	shapeObject
)

// channelSpec is the per-channel rule set: output shape, acceptance
// threshold, image aspect ratio, and prompt parameters. The threshold
// asymmetry (8.0 LinkedIn/Facebook vs 9.2 Instagram) is deliberate and
// observable; do not unify.
type channelSpec struct {
	Channel     models.Channel
	Shape       outputShape
	Threshold   float64
	AspectRatio string
	Hashtags    bool  // keywords double as hashtags on these channels
	Image       bool  // one shared image is generated for survivors
	MaxTokens   int32 // completion budget for the main call
	RatingName  string
}

var channelSpecs = map[models.Channel]channelSpec{
	models.ChannelLinkedIn: {
		Channel:     models.ChannelLinkedIn,
		Shape:       shapeVariations,
		Threshold:   8.0,
		AspectRatio: "16:9",
		Hashtags:    true,
		Image:       true,
		MaxTokens:   4000,
		RatingName:  "LinkedIn",
	},
	models.ChannelInstagram: {
		Channel:     models.ChannelInstagram,
		Shape:       shapeVariations,
		Threshold:   9.2,
		AspectRatio: "1:1",
		Hashtags:    true,
		Image:       true,
		MaxTokens:   4000,
		RatingName:  "Instagram",
	},
	models.ChannelFacebook: {
		Channel:     models.ChannelFacebook,
		Shape:       shapeVariations,
		Threshold:   8.0,
		AspectRatio: "16:9",
		Image:       true,
		MaxTokens:   4000,
		RatingName:  "Facebook",
	},
	models.ChannelLandingPage: {
		Channel:    models.ChannelLandingPage,
		Shape:      shapeObject,
		MaxTokens:  3000,
		RatingName: "Landing Page",
	},
	models.ChannelEmail: {
		Channel:    models.ChannelEmail,
		Shape:      shapeObject,
		MaxTokens:  3000,
		RatingName: "Email",
	},
	models.ChannelWebsite: {
		Channel:    models.ChannelWebsite,
		Shape:      shapeObject,
		MaxTokens:  3000,
		RatingName: "Website",
	},
}

// specFor resolves the rule set for a channel, failing for identifiers the
// studio does not know.
func specFor(channel models.Channel) (channelSpec, error) {
	spec, ok := channelSpecs[channel]
	if !ok {
		return channelSpec{}, &UnknownChannelError{Channel: channel}
	}
	return spec, nil
}
