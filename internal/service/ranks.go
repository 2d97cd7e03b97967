package service

// MaxStars caps the monthly-resetting star balance. Reaching it puts
// the user in the top tier.
const MaxStars = 4

type RankInfo struct {
	Name     string
	MinStars int
	Emoji    string
	Color    string
}

// Ranks is ordered by ascending star threshold.
var Ranks = []RankInfo{
	{Name: "Bronze", MinStars: 0, Emoji: "🥉", Color: "#CD7F32"},
	{Name: "Silver", MinStars: 1, Emoji: "🥈", Color: "#C0C0C0"},
	{Name: "Gold", MinStars: 2, Emoji: "🥇", Color: "#FFD700"},
	{Name: "Platinum", MinStars: 3, Emoji: "💎", Color: "#E5E4E2"},
	{Name: "Legend", MinStars: 4, Emoji: "🏆", Color: "#FF6B35"},
}

// BaseRank is the tier every user starts in and returns to on monthly
// reset.
var BaseRank = Ranks[0]

// RankFor returns the highest tier whose threshold is within the given
// star count. Negative input maps to the base tier.
func RankFor(stars int) RankInfo {
	if stars < 0 {
		stars = 0
	}
	for i := len(Ranks) - 1; i >= 0; i-- {
		if stars >= Ranks[i].MinStars {
			return Ranks[i]
		}
	}
	return Ranks[0]
}

// NextRank returns the tier above the named one, or nil from the top.
func NextRank(name string) *RankInfo {
	for i, r := range Ranks {
		if r.Name == name && i < len(Ranks)-1 {
			next := Ranks[i+1]
			return &next
		}
	}
	return nil
}
