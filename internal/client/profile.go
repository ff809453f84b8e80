package client

// ProfileKey is the storage key every player keeps their profile under.
const ProfileKey = "profile"

// Profile is the per-player record shared with the rest of the match.
type Profile struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	Status   string `json:"status"`
}

// NetDefault implements storage.Data.
func (Profile) NetDefault() Profile {
	return Profile{Status: "new"}
}
