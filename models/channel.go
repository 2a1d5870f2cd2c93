package models

import "fmt"

// Channel identifies one of the six supported content types.
type Channel string

const (
	ChannelLinkedIn    Channel = "linkedin"
	ChannelInstagram   Channel = "instagram"
	ChannelFacebook    Channel = "facebook"
	ChannelLandingPage Channel = "landing-page"
	ChannelEmail       Channel = "email"
	ChannelWebsite     Channel = "website"
)

// AllChannels lists every supported channel.
var AllChannels = []Channel{
	ChannelLinkedIn,
	ChannelInstagram,
	ChannelFacebook,
	ChannelLandingPage,
	ChannelEmail,
	ChannelWebsite,
}

// ParseChannel validates a channel identifier coming from the UI.
func ParseChannel(s string) (Channel, error) {
	for _, ch := range AllChannels {
		if string(ch) == s {
			return ch, nil
		}
	}
	return "", fmt.Errorf("unknown channel: %q", s)
}
