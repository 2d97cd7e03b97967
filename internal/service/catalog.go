package service

import (
	"math/rand"

	"bravoo/internal/model"
)

type QuestTemplate struct {
	ID             string
	TitleKey       string
	DescriptionKey string
	Emoji          string
	GoldReward     int
	Type           model.QuestType
}

var DailyTemplates = []QuestTemplate{
	{ID: "d_squats10", TitleKey: "quest.daily.squats10", DescriptionKey: "quest.daily.squats10.desc", Emoji: "🦵", GoldReward: 100, Type: model.QuestTypeDaily},
	{ID: "d_pushups5", TitleKey: "quest.daily.pushups5", DescriptionKey: "quest.daily.pushups5.desc", Emoji: "💪", GoldReward: 100, Type: model.QuestTypeDaily},
	{ID: "d_jumpingjacks10", TitleKey: "quest.daily.jumpingjacks10", DescriptionKey: "quest.daily.jumpingjacks10.desc", Emoji: "⭐", GoldReward: 120, Type: model.QuestTypeDaily},
	{ID: "d_plank30", TitleKey: "quest.daily.plank30", DescriptionKey: "quest.daily.plank30.desc", Emoji: "🧘", GoldReward: 150, Type: model.QuestTypeDaily},
	{ID: "d_highknees15", TitleKey: "quest.daily.highknees15", DescriptionKey: "quest.daily.highknees15.desc", Emoji: "🏃", GoldReward: 100, Type: model.QuestTypeDaily},
	{ID: "d_lunges10", TitleKey: "quest.daily.lunges10", DescriptionKey: "quest.daily.lunges10.desc", Emoji: "🦿", GoldReward: 120, Type: model.QuestTypeDaily},
	{ID: "d_armcircles20", TitleKey: "quest.daily.armcircles20", DescriptionKey: "quest.daily.armcircles20.desc", Emoji: "🔄", GoldReward: 80, Type: model.QuestTypeDaily},
	{ID: "d_crunches10", TitleKey: "quest.daily.crunches10", DescriptionKey: "quest.daily.crunches10.desc", Emoji: "🔥", GoldReward: 100, Type: model.QuestTypeDaily},
	{ID: "d_wallsit30", TitleKey: "quest.daily.wallsit30", DescriptionKey: "quest.daily.wallsit30.desc", Emoji: "🧱", GoldReward: 150, Type: model.QuestTypeDaily},
	{ID: "d_stretch1", TitleKey: "quest.daily.stretch1", DescriptionKey: "quest.daily.stretch1.desc", Emoji: "🌅", GoldReward: 80, Type: model.QuestTypeDaily},
}

var WeeklyTemplates = []QuestTemplate{
	{ID: "w_run2k", TitleKey: "quest.weekly.run2k", DescriptionKey: "quest.weekly.run2k.desc", Emoji: "🏃", GoldReward: 500, Type: model.QuestTypeWeekly},
	{ID: "w_squats50", TitleKey: "quest.weekly.squats50", DescriptionKey: "quest.weekly.squats50.desc", Emoji: "🦵", GoldReward: 400, Type: model.QuestTypeWeekly},
	{ID: "w_pushups30", TitleKey: "quest.weekly.pushups30", DescriptionKey: "quest.weekly.pushups30.desc", Emoji: "💪", GoldReward: 400, Type: model.QuestTypeWeekly},
	{ID: "w_plank5min", TitleKey: "quest.weekly.plank5min", DescriptionKey: "quest.weekly.plank5min.desc", Emoji: "🧘", GoldReward: 500, Type: model.QuestTypeWeekly},
	{ID: "w_jumpingjacks100", TitleKey: "quest.weekly.jumpingjacks100", DescriptionKey: "quest.weekly.jumpingjacks100.desc", Emoji: "⭐", GoldReward: 350, Type: model.QuestTypeWeekly},
	{ID: "w_lunges45", TitleKey: "quest.weekly.lunges45", DescriptionKey: "quest.weekly.lunges45.desc", Emoji: "🦿", GoldReward: 400, Type: model.QuestTypeWeekly},
	{ID: "w_coreblast", TitleKey: "quest.weekly.coreblast", DescriptionKey: "quest.weekly.coreblast.desc", Emoji: "🔥", GoldReward: 450, Type: model.QuestTypeWeekly},
	{ID: "w_burpees20", TitleKey: "quest.weekly.burpees20", DescriptionKey: "quest.weekly.burpees20.desc", Emoji: "💥", GoldReward: 500, Type: model.QuestTypeWeekly},
	{ID: "w_dance10", TitleKey: "quest.weekly.dance10", DescriptionKey: "quest.weekly.dance10.desc", Emoji: "💃", GoldReward: 300, Type: model.QuestTypeWeekly},
	{ID: "w_walk5000", TitleKey: "quest.weekly.walk5000", DescriptionKey: "quest.weekly.walk5000.desc", Emoji: "🚶", GoldReward: 350, Type: model.QuestTypeWeekly},
}

// pickTemplates draws up to count templates uniformly without
// replacement from the eligible subset.
func pickTemplates(rng *rand.Rand, templates []QuestTemplate, count int, exclude map[string]struct{}) []QuestTemplate {
	available := make([]QuestTemplate, 0, len(templates))
	for _, t := range templates {
		if _, excluded := exclude[t.ID]; !excluded {
			available = append(available, t)
		}
	}

	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	if count > len(available) {
		count = len(available)
	}
	return available[:count]
}
