package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE interactions, saved_places, places, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting users")
	if err := seedUsers(ctx, pool, rng, 20); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Println("[seed] inserting places")
	if err := seedPlaces(ctx, pool, rng, 50); err != nil {
		return fmt.Errorf("seed places: %w", err)
	}

	log.Println("[seed] inserting interactions")
	if err := seedInteractions(ctx, pool, rng, 400); err != nil {
		return fmt.Errorf("seed interactions: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	locations := []string{"Lisbon", "Austin", "Berlin", "Melbourne", "Toronto", "Osaka", "Cape Town", "Oslo"}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		username := fmt.Sprintf("traveler%02d", i+1)
		externalID := fmt.Sprintf("ext_%08x", rng.Uint32())
		email := username + "@example.com"
		picture := fmt.Sprintf("https://cdn.example.com/avatars/%d.png", i+1)
		location := locations[rng.Intn(len(locations))]
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, externalID, username, email, picture, location, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO users (external_id, username, email, picture, location, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedPlaces(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	names := []string{
		"Hidden Ramen Bar", "Cliffside Lookout", "Old Town Bookshop", "Night Market",
		"Riverside Sauna", "Basalt Cave Trail", "Rooftop Jazz Club", "Harbor Fish Grill",
		"Botanic Tea House", "Sunrise Surf Point", "Mountain Hot Spring", "Vintage Arcade",
		"Lighthouse Walk", "Street Art Alley", "Floating Market", "Cedar Forest Path",
	}
	cities := []string{"Lisbon", "Kyoto", "Mexico City", "Tbilisi", "Hanoi", "Porto", "Seoul", "Valparaiso"}
	tagPool := []string{"food", "hiking", "nightlife", "culture", "beach", "coffee", "views", "hidden-gem", "family", "budget"}
	descriptions := []string{
		"A quiet spot the guidebooks miss.",
		"Go early to beat the crowds.",
		"Best sushi this side of the harbor.",
		"Locals queue here every weekend.",
		"Worth the climb for the views alone.",
		"",
	}
	bestTimes := []string{"spring", "early morning", "sunset", "weekdays", "after dark", ""}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		name := names[i%len(names)]
		if i >= len(names) {
			name = fmt.Sprintf("%s %d", name, i/len(names)+1)
		}
		description := descriptions[rng.Intn(len(descriptions))]
		bestTime := bestTimes[rng.Intn(len(bestTimes))]
		location := cities[rng.Intn(len(cities))]

		tagCount := 1 + rng.Intn(3)
		tags := make([]string, 0, tagCount)
		for len(tags) < tagCount {
			t := tagPool[rng.Intn(len(tagPool))]
			if !contains(tags, t) {
				tags = append(tags, t)
			}
		}

		image := fmt.Sprintf("https://cdn.example.com/places/%d.jpg", i+1)
		ownerID := powerLawID(rng, 20)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(730))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, name, description, bestTime, location, tags, image, ownerID, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO places (name, description, best_time_to_visit, location, hashtags, image, owner_id, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedInteractions(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	actions := []string{"view", "save", "unsave", "search", "tag_click"}
	actionWeights := []float64{0.6, 0.15, 0.05, 0.1, 0.1}
	searchPool := []string{"sushi", "hiking", "rooftop", "market", "coffee", "beach", "museum"}
	tagPool := []string{"food", "hiking", "nightlife", "culture", "beach", "coffee", "views", "hidden-gem"}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		userID := powerLawID(rng, 20)
		action := weightedChoice(rng, actions, actionWeights)
		createdAt := time.Now().Add(-time.Duration(rng.Intn(90*24)) * time.Hour)

		var placeID any
		var terms []string
		var tags []string

		if action == "search" {
			count := 1 + rng.Intn(2)
			for c := 0; c < count; c++ {
				terms = append(terms, searchPool[rng.Intn(len(searchPool))])
			}
		} else {
			placeID = powerLawID(rng, 50)
			if action == "tag_click" || rng.Float64() < 0.3 {
				tags = append(tags, tagPool[rng.Intn(len(tagPool))])
			}
		}
		if terms == nil {
			terms = []string{}
		}
		if tags == nil {
			tags = []string{}
		}

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, userID, action, placeID, terms, tags, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO interactions (user_id, action, place_id, search_terms, tags, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// powerLawID skews ids toward the low end so a few users and places get
// most of the activity, mirroring real traffic.
func powerLawID(rng *rand.Rand, max int64) int64 {
	id := int64(math.Ceil(math.Pow(rng.Float64(), 1.5) * float64(max)))
	if id < 1 {
		return 1
	}
	if id > max {
		return max
	}
	return id
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
