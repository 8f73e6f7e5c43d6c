package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	"lms/models"
	"lms/services"
)

// Bulk-imports a course catalog from CourseCatalog.csv. Expected columns:
// mentor_email, title, description, level, category, price. Mentors are
// created on the fly when the email is unknown; courses are left in DRAFT
// for review before publishing.
func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	imported := 0
	for i, record := range records {
		if i == 0 {
			continue // header row
		}
		if len(record) < 6 {
			log.Printf("Row %d: expected 6 columns, got %d, skipping", i, len(record))
			continue
		}

		email := strings.TrimSpace(record[0])
		title := strings.TrimSpace(record[1])
		if email == "" || title == "" {
			log.Printf("Row %d: missing mentor email or title, skipping", i)
			continue
		}

		price, err := strconv.ParseUint(strings.TrimSpace(record[5]), 10, 64)
		if err != nil {
			log.Printf("Row %d: invalid price %q, skipping", i, record[5])
			continue
		}

		var mentor models.User
		if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&mentor).Error; err != nil {
			mentor = models.User{
				Name:     email,
				Username: email,
				Email:    email,
				Role:     "MENTOR",
				Password: "imported",
			}
			if err := db.Create(&mentor).Error; err != nil {
				log.Printf("Row %d: failed to create mentor %s: %v", i, email, err)
				continue
			}
			log.Printf("Created mentor account: %s", email)
		}

		_, err = services.CreateCourse(db, mentor.ID, services.CreateCourseInput{
			Title:       title,
			Description: strings.TrimSpace(record[2]),
			Level:       strings.TrimSpace(record[3]),
			Category:    strings.TrimSpace(record[4]),
			Price:       price,
		})
		if err != nil {
			log.Printf("Row %d: failed to create course %q: %v", i, title, err)
			continue
		}
		imported++
	}

	log.Printf("Import finished: %d courses created", imported)
}
