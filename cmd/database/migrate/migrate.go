package migration

import (
	"fmt"
	"github.com/tanmald/plate-check-mvp/entities"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.UserProfile{}); err != nil {
		log.Printf("Error migrating profiles table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.NutritionPlan{}, &entities.MealTemplate{}); err != nil {
		log.Printf("Error migrating nutrition plan tables: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealLog{}); err != nil {
		log.Printf("Error migrating meal log table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DailyProgress{}); err != nil {
		log.Printf("Error migrating daily progress table: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
