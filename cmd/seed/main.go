package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sahilchouksey/university-catalog/database"
	"github.com/sahilchouksey/university-catalog/model"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("University Catalog - Database Seeding")
	fmt.Println(separator)

	for _, u := range sampleUniversities() {
		if err := store.CreateUniversity(u); err != nil {
			log.Fatalf("Seeding failed for %q: %v", u.Name, err)
		}
		fmt.Printf("  seeded %s (%d categories)\n", u.Name, len(u.Categories))
	}

	fmt.Println(separator)
	fmt.Println("Seeding completed successfully")
}

func sampleUniversities() []*model.University {
	now := time.Now().UTC()

	eng := model.NewCategory("Engineering")
	eng.Courses = append(eng.Courses,
		model.NewCourse("Computer Science"),
		model.NewCourse("Mechanical Engineering"),
	)
	mgmt := model.NewCategory("Management")
	mgmt.Courses = append(mgmt.Courses, model.NewCourse("MBA"))

	arts := model.NewCategory("Arts and Humanities")
	arts.Courses = append(arts.Courses,
		model.NewCourse("English Literature"),
		model.NewCourse("History"),
	)

	grade := "A+"
	rankedBy := "NIRF"

	return []*model.University{
		{
			ID:              uuid.NewString(),
			Name:            "Woodland Institute of Technology",
			EstablishedYear: 1962,
			ApprovedBy:      "UGC",
			Type:            "Private",
			NAACGrade:       &grade,
			RankedBy:        &rankedBy,
			Categories:      []model.Category{eng, mgmt},
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.NewString(),
			Name:            "Riverside State University",
			EstablishedYear: 1948,
			ApprovedBy:      "AICTE",
			Type:            "Government",
			Categories:      []model.Category{arts},
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}
