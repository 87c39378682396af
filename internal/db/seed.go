package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedTestData resets the database and populates it with demo data.
//
// Behavior:
//  1. Clears all tables (children first).
//  2. Creates the gender lookup rows and 20 users scattered around
//     Amsterdam with hashed passwords, birthdates and locations.
//  3. Generates swipes with ~70% likes; every 3rd like is made mutual
//     and materialized into a match + conversation.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(database *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start, children first ---
	tables := []string{
		"messages", "conversations", "matches", "swipes",
		"block_relations", "reports", "pictures",
		"preferred_genders", "preferences", "users", "genders",
	}
	for _, tbl := range tables {
		if err := database.Exec("DELETE FROM " + tbl).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", tbl, err)
		}
	}

	switch database.Dialector.Name() {
	case "mysql":
		for _, tbl := range tables {
			database.Exec("ALTER TABLE " + tbl + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		for _, tbl := range tables {
			database.Exec("DELETE FROM sqlite_sequence WHERE name = ?", tbl)
		}
	}

	log.Println("Cleared existing data")

	// --- Genders ---
	genders := []Gender{{Name: "male"}, {Name: "female"}, {Name: "non-binary"}}
	if err := database.Create(&genders).Error; err != nil {
		return fmt.Errorf("failed to seed genders: %w", err)
	}

	// --- Users (10 male, 10 female) around Amsterdam ---
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var users []User
	for i := 1; i <= 20; i++ {
		genderID := genders[0].ID
		if i > 10 {
			genderID = genders[1].ID
		}

		// spread within roughly 20km of the city centre
		lat := 52.37 + (r.Float64()-0.5)*0.3
		lon := 4.90 + (r.Float64()-0.5)*0.3

		user := User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			PhoneNumber:  fmt.Sprintf("+3161234%04d", i),
			Bio:          fmt.Sprintf("Hi, I am user%d.", i),
			DateOfBirth:  time.Date(1980+r.Intn(25), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC),
			GenderID:     genderID,
			Latitude:     &lat,
			Longitude:    &lon,
			Active:       true,
			Verified:     i%4 == 0,
			Role:         RoleUser,
		}
		if err := database.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Println("Seeded 20 users.")

	// One admin account for moderation endpoints.
	adm := User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		DateOfBirth:  time.Date(1985, time.June, 1, 0, 0, 0, 0, time.UTC),
		GenderID:     genders[2].ID,
		Active:       true,
		Verified:     true,
		Role:         RoleAdmin,
	}
	if err := database.Create(&adm).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	// --- Swipes, mutual likes and matches ---
	counter := 0
	for i := range users {
		actor := users[i]
		for j := 0; j < 8; j++ {
			target := users[r.Intn(len(users))]
			if actor.ID == target.ID || actor.GenderID == target.GenderID {
				continue
			}

			liked := r.Intn(100) < 70

			// guarantee mutual likes every 3rd pair
			if counter%3 == 0 {
				liked = true
				recip := Swipe{SwiperID: target.ID, SwipedID: actor.ID, Liked: true}
				database.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "swiped_id"}},
					DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
				}).Create(&recip)
			}

			swipe := Swipe{SwiperID: actor.ID, SwipedID: target.ID, Liked: liked}
			if err := database.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "swiped_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
			}).Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			// materialize the mutual pair like the swipe path would
			if liked && counter%3 == 0 {
				lo, hi := actor.ID, target.ID
				if lo > hi {
					lo, hi = hi, lo
				}
				match := Match{User1ID: lo, User2ID: hi}
				res := database.Clauses(clause.OnConflict{DoNothing: true}).Create(&match)
				if res.Error == nil && res.RowsAffected > 0 {
					conv := Conversation{MatchID: match.ID}
					if err := database.Create(&conv).Error; err != nil {
						return fmt.Errorf("failed to seed conversation: %w", err)
					}
				}
			}

			counter++
		}
	}
	log.Printf("Seeded %d swipes.", counter)

	return nil
}
