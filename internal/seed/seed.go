// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSwaps    int
	ShouldClean bool
}

var skillPool = []string{
	"Go Programming", "Python Programming", "JavaScript", "SQL", "Linux Administration",
	"Guitar", "Piano", "Singing", "Music Production",
	"Spanish", "French", "German", "Japanese", "Mandarin",
	"Photography", "Video Editing", "Graphic Design", "Illustration",
	"Cooking", "Baking", "Gardening", "Woodworking", "Knitting",
	"Yoga", "Personal Training", "Running Coaching", "Swimming",
	"Public Speaking", "Creative Writing", "Resume Writing", "Tax Preparation",
	"Car Maintenance", "Bike Repair", "Home Repair", "Plumbing Basics",
	"Chess", "Drawing", "Calligraphy", "Pottery",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d swaps...", opts.NumUsers, opts.NumSwaps)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d test users", len(users))

	swaps, err := createSwaps(db, users, opts.NumSwaps)
	if err != nil {
		return fmt.Errorf("failed to create swaps: %w", err)
	}
	log.Printf("created %d swaps", len(swaps))

	ratings, err := createRatings(db, swaps)
	if err != nil {
		return fmt.Errorf("failed to create ratings: %w", err)
	}
	log.Printf("created %d ratings", ratings)

	if err := recomputeAggregates(db); err != nil {
		return fmt.Errorf("failed to recompute aggregates: %w", err)
	}

	log.Println("Database seeding completed.")
	log.Println("All test users have the password: Password123!seed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE ratings, notifications, admin_messages, reports, swaps, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func pickSkills(r *rand.Rand, count int) []string {
	perm := r.Perm(len(skillPool))
	skills := make([]string, 0, count)
	for _, idx := range perm[:count] {
		skills = append(skills, skillPool[idx])
	}
	return skills
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!seed"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	users := make([]models.User, 0, count)

	// One well-known admin account for local development
	admin := models.User{
		Name:     "Platform Admin",
		Email:    "admin@skillswap.local",
		Password: string(hash),
		IsAdmin:  true,
		IsPublic: false,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}

	for i := 0; i < count; i++ {
		user := models.User{
			Name:          gofakeit.Name(),
			Email:         fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password:      string(hash),
			Location:      gofakeit.City(),
			ProfilePhoto:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			SkillsOffered: pickSkills(r, 2+r.Intn(3)),
			SkillsWanted:  pickSkills(r, 2+r.Intn(3)),
			Availability:  gofakeit.RandomString([]string{"weekends", "weekday evenings", "flexible", "mornings"}),
			IsPublic:      r.Intn(10) != 0,
			CreatedAt:     time.Now().AddDate(0, 0, -r.Intn(180)),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func createSwaps(db *gorm.DB, users []models.User, count int) ([]models.Swap, error) {
	if len(users) < 2 {
		return nil, fmt.Errorf("need at least 2 users to create swaps")
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	statuses := []models.SwapStatus{
		models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected,
		models.SwapStatusCompleted, models.SwapStatusCompleted, models.SwapStatusCancelled,
	}

	swaps := make([]models.Swap, 0, count)
	for i := 0; i < count; i++ {
		requester := users[r.Intn(len(users))]
		provider := users[r.Intn(len(users))]
		if requester.ID == provider.ID || len(provider.SkillsOffered) == 0 || len(requester.SkillsWanted) == 0 {
			continue
		}

		created := time.Now().AddDate(0, 0, -r.Intn(90))
		swap := models.Swap{
			RequesterID:  requester.ID,
			ProviderID:   provider.ID,
			SkillOffered: provider.SkillsOffered[r.Intn(len(provider.SkillsOffered))],
			SkillWanted:  requester.SkillsWanted[r.Intn(len(requester.SkillsWanted))],
			Description:  gofakeit.Sentence(12),
			Status:       statuses[r.Intn(len(statuses))],
			ProposedTime: gofakeit.RandomString([]string{"Saturday morning", "Tuesday 7pm", "next weekend", "flexible"}),
			Duration:     gofakeit.RandomString([]string{"1 hour", "90 minutes", "2 hours"}),
			Location:     gofakeit.RandomString([]string{"online", requester.Location, provider.Location}),
			CreatedAt:    created,
		}

		// Accept and reject stamp a response date; completion additionally
		// stamps a completion date.
		switch swap.Status {
		case models.SwapStatusAccepted, models.SwapStatusRejected:
			responded := created.Add(time.Duration(1+r.Intn(72)) * time.Hour)
			swap.ResponseDate = &responded
		case models.SwapStatusCompleted:
			responded := created.Add(time.Duration(1+r.Intn(72)) * time.Hour)
			completed := responded.Add(time.Duration(1+r.Intn(240)) * time.Hour)
			swap.ResponseDate = &responded
			swap.CompletionDate = &completed
		}

		if err := db.Create(&swap).Error; err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}

	return swaps, nil
}

func createRatings(db *gorm.DB, swaps []models.Swap) (int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for _, swap := range swaps {
		if swap.Status != models.SwapStatusCompleted || swap.CompletionDate == nil {
			continue
		}

		// Most completed swaps get at least one rating, some get both sides.
		participants := [][2]uint{{swap.RequesterID, swap.ProviderID}}
		if r.Intn(2) == 0 {
			participants = append(participants, [2]uint{swap.ProviderID, swap.RequesterID})
		}

		for _, pair := range participants {
			if r.Intn(5) == 0 {
				continue
			}
			rating := models.Rating{
				SwapID:         swap.ID,
				RaterID:        pair[0],
				RatedID:        pair[1],
				Rating:         3 + r.Intn(3),
				Comment:        gofakeit.Sentence(10),
				SkillExchanged: swap.SkillOffered,
				CreatedAt:      swap.CompletionDate.Add(time.Duration(r.Intn(48)) * time.Hour),
			}
			if err := db.Create(&rating).Error; err != nil {
				return created, err
			}
			created++
		}
	}

	return created, nil
}

// recomputeAggregates rewrites the derived rating and completion counters so
// seeded data satisfies the same consistency the services maintain at runtime.
func recomputeAggregates(db *gorm.DB) error {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return err
	}

	for i := range users {
		u := &users[i]

		var agg struct {
			Count int64
			Avg   float64
		}
		err := db.Model(&models.Rating{}).
			Select("count(*) as count, coalesce(avg(rating), 0) as avg").
			Where("rated_id = ?", u.ID).
			Scan(&agg).Error
		if err != nil {
			return err
		}

		var completed int64
		err = db.Model(&models.Swap{}).
			Where("(requester_id = ? OR provider_id = ?) AND status = ?", u.ID, u.ID, models.SwapStatusCompleted).
			Count(&completed).Error
		if err != nil {
			return err
		}

		err = db.Model(&models.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
			"average_rating":  math.Round(agg.Avg*10) / 10,
			"total_ratings":   agg.Count,
			"completed_swaps": completed,
		}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
