// Command main runs the database seeder for Inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of published posts to create")
	commentsPerPost := flag.Int("comments", 4, "Comments per post")
	likesPerPost := flag.Int("likes", 8, "Likes per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named seeder preset (e.g. MegaPopulated)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *preset != "" {
		log.Printf("Applying preset %s (ignoring other flags)", *preset)
		if err := s.ApplyPreset(*preset); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	} else {
		users, err := s.SeedWriters(*numUsers)
		if err != nil {
			log.Fatalf("User seeding failed: %v", err)
		}
		if _, err := s.SeedContent(users, *numPosts, *commentsPerPost, *likesPerPost); err != nil {
			log.Fatalf("Content seeding failed: %v", err)
		}
	}

	log.Println("Done. The database is populated with demo data.")
}
