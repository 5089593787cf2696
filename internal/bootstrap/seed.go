package bootstrap

import (
	"log"

	"anoa.com/campuscircle/internal/model"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Student{},
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.MadeBy{},
	)
}

// SeedStudents loads a small roster for development. Existing roll numbers are
// left untouched, so running it twice is safe.
func SeedStudents(db *gorm.DB) error {
	roster := []model.Student{
		{RollNumber: "ADMIN001", DOB: "1990-01-01", Name: "Administrator", Department: "Administration", Batch: "2020"},
		{RollNumber: "CS2021001", DOB: "2003-05-14", Name: "Aarav Sharma", Department: "Computer Science", Batch: "2021"},
		{RollNumber: "CS2021002", DOB: "2003-08-22", Name: "Priya Patel", Department: "Computer Science", Batch: "2021"},
		{RollNumber: "EC2021001", DOB: "2002-11-30", Name: "Rahul Verma", Department: "Electronics", Batch: "2021"},
		{RollNumber: "ME2022001", DOB: "2004-02-17", Name: "Sneha Iyer", Department: "Mechanical", Batch: "2022"},
	}

	for _, student := range roster {
		var count int64
		if err := db.Model(&model.Student{}).
			Where("roll_number = ?", student.RollNumber).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&student).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Student roster seeded")
	return nil
}

func SeedMadeBy(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.MadeBy{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	record := model.MadeBy{
		DeveloperName: "CampusCircle Team",
		Github:        "https://github.com/campuscircle",
		Instagram:     "https://instagram.com/campuscircle",
		Message:       "Built for students, by students.",
	}

	return db.Create(&record).Error
}
