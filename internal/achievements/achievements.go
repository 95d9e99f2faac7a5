package achievements

import "github.com/crucial707/daily-habits/internal/models"

// BadgesFor evaluates the badge thresholds against the user's best current
// streak and total check-ins. Predicates are independent and checked in a
// fixed order, so a user can hold every badge at once.
func BadgesFor(maxStreak, totalCompletions int) []models.Badge {
	badges := []models.Badge{}
	if totalCompletions >= 1 {
		badges = append(badges, models.Badge{Icon: "🌱", Title: "First Steps", Description: "You made your very first check-in"})
	}
	if maxStreak >= 3 {
		badges = append(badges, models.Badge{Icon: "🔥", Title: "Fire Streak", Description: "Three days in a row"})
	}
	if maxStreak >= 7 {
		badges = append(badges, models.Badge{Icon: "👑", Title: "Habit Hero", Description: "A full week of consistency"})
	}
	if maxStreak >= 14 {
		badges = append(badges, models.Badge{Icon: "⚡", Title: "Unstoppable Person", Description: "Two straight weeks without missing a day"})
	}
	if totalCompletions >= 30 {
		badges = append(badges, models.Badge{Icon: "💎", Title: "Master", Description: "Thirty check-ins and counting"})
	}
	if totalCompletions >= 50 {
		badges = append(badges, models.Badge{Icon: "🏆", Title: "World Champion", Description: "Fifty check-ins, a true champion"})
	}
	return badges
}
