package main

import (
	"log"
	"os"
	"time"

	"sms-assistant-be/internal/constant"
	"sms-assistant-be/internal/model"
	"sms-assistant-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Sample Resources...")
	seedResources(db)

	log.Println("Seeding Sample Events...")
	seedEvents(db)

	log.Println("Seeding Sample Polls...")
	seedPolls(db)

	log.Println("✅ Seeding completed!")
}

func seedResources(db *gorm.DB) {
	resources := []model.Resource{
		{
			Title: "Parking Instructions",
			Kind:  constant.ResourceKindFaq,
			Body:  "Street parking is free after 6 PM. The lot behind the building is permit-only; visitor permits hang by the side door.",
			Tag:   "logistics",
		},
		{
			Title: "Potluck Signup",
			Kind:  constant.ResourceKindDocument,
			Body:  "Sign up for a dish in the shared sheet. Mains and sides are covered; we still need desserts and drinks.",
			URL:   "https://example.com/potluck-sheet",
			Tag:   "food",
		},
		{
			Title: "Fall Kickoff Meeting",
			Kind:  constant.ResourceKindEvent,
			Body:  "First meeting of the season. Agenda: budget review, event calendar, new member intros. Snacks provided.",
			Tag:   "meetings",
		},
	}

	for _, r := range resources {
		var existing model.Resource
		if err := db.Where("title = ?", r.Title).First(&existing).Error; err == nil {
			log.Printf("Resource '%s' already exists, skipping...", r.Title)
			continue
		}

		if err := db.Create(&r).Error; err != nil {
			log.Printf("Error creating resource '%s': %v", r.Title, err)
		} else {
			log.Printf("Created resource: %s", r.Title)
		}
	}
}

func seedEvents(db *gorm.DB) {
	nextWeek := time.Now().AddDate(0, 0, 7).Truncate(time.Hour)
	nextMonth := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)

	events := []model.Event{
		{Name: "Fall Kickoff Meeting", StartAt: &nextWeek, Location: "Clubhouse", Required: true},
		{Name: "Community Potluck", StartAt: &nextMonth, Location: "Back Patio"},
		{Name: "Planning Session", Location: "TBD"},
	}

	for _, e := range events {
		var existing model.Event
		if err := db.Where("name = ?", e.Name).First(&existing).Error; err == nil {
			log.Printf("Event '%s' already exists, skipping...", e.Name)
			continue
		}

		if err := db.Create(&e).Error; err != nil {
			log.Printf("Error creating event '%s': %v", e.Name, err)
		} else {
			log.Printf("Created event: %s", e.Name)
		}
	}
}

func seedPolls(db *gorm.DB) {
	polls := []model.Poll{
		{
			Question: "What should we serve at the potluck?",
			Options:  datatypes.JSON([]byte(`["Tacos","BBQ","Pizza"]`)),
			Status:   constant.PollStatusOpen,
		},
	}

	for _, p := range polls {
		var existing model.Poll
		if err := db.Where("question = ?", p.Question).First(&existing).Error; err == nil {
			log.Printf("Poll '%s' already exists, skipping...", p.Question)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating poll '%s': %v", p.Question, err)
		} else {
			log.Printf("Created poll: %s", p.Question)
		}
	}
}
