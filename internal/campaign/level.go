// Package campaign defines the advertising records shown by the dashboard.
package campaign

import (
	"fmt"
	"strings"
)

// Level is one layer of the advertising hierarchy.
type Level string

// Levels from the top of the hierarchy down.
const (
	LevelAccounts  Level = "accounts"
	LevelCampaigns Level = "campaigns"
	LevelAdSets    Level = "adsets"
	LevelAds       Level = "ads"
)

// Levels lists every level in hierarchy order.
var Levels = []Level{LevelAccounts, LevelCampaigns, LevelAdSets, LevelAds}

// ParseLevel converts a path segment or flag value into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accounts", "account":
		return LevelAccounts, nil
	case "campaigns", "campaign":
		return LevelCampaigns, nil
	case "adsets", "adset", "ad_sets", "ad-sets":
		return LevelAdSets, nil
	case "ads", "ad":
		return LevelAds, nil
	default:
		return "", fmt.Errorf("unknown level %q", s)
	}
}

// Parent returns the level above l, or "" for accounts.
func (l Level) Parent() Level {
	for i, lv := range Levels {
		if lv == l && i > 0 {
			return Levels[i-1]
		}
	}
	return ""
}

// Child returns the level below l, or "" for ads.
func (l Level) Child() Level {
	for i, lv := range Levels {
		if lv == l && i < len(Levels)-1 {
			return Levels[i+1]
		}
	}
	return ""
}

// Title is the human readable name of l.
func (l Level) Title() string {
	switch l {
	case LevelAccounts:
		return "Accounts"
	case LevelCampaigns:
		return "Campaigns"
	case LevelAdSets:
		return "Ad Sets"
	case LevelAds:
		return "Ads"
	default:
		return string(l)
	}
}
