package services

import (
	"fmt"
	"strings"

	"github.com/nicholasph05/myc-restaurant-app/models"
)

const maxRecommendations = 5

// BuildRecommendations derives suggestion entries for a customer from their
// stored preferences and the currently available menu. Favourite dishes come
// first, then dishes whose category matches a preferred style; anything
// matching a declared intolerance is skipped.
func BuildRecommendations(prefs models.Preference, dishes []models.Dish, date string) []models.RecommendationEntry {
	entries := []models.RecommendationEntry{}
	seen := map[string]bool{}

	intolerant := map[string]bool{}
	for _, in := range prefs.Intolerances {
		intolerant[strings.ToLower(in)] = true
	}
	favourite := map[string]bool{}
	for _, f := range prefs.FavoriteDishes {
		favourite[strings.ToLower(f)] = true
	}
	styles := map[string]bool{}
	for _, s := range prefs.PreferredStyles {
		styles[strings.ToLower(s)] = true
	}

	for _, dish := range dishes {
		if len(entries) >= maxRecommendations {
			break
		}
		if !dish.Available || seen[dish.Name] {
			continue
		}
		if intolerant[strings.ToLower(dish.Category)] {
			continue
		}

		switch {
		case favourite[strings.ToLower(dish.Name)]:
			entries = append(entries, models.RecommendationEntry{
				Date:   date,
				Dish:   dish.Name,
				Reason: "one of your favourite dishes",
			})
		case styles[strings.ToLower(dish.Category)]:
			entries = append(entries, models.RecommendationEntry{
				Date:   date,
				Dish:   dish.Name,
				Reason: fmt.Sprintf("matches your preferred %s style", dish.Category),
			})
		default:
			continue
		}
		seen[dish.Name] = true
	}

	return entries
}
