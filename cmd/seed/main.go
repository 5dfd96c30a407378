package main

import (
	"log"
	"os"
	"time"

	"course-platform-be/internal/model"
	"course-platform-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func intPtr(v int) *int { return &v }

func main() {
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

	color.Cyan("Seeding development data...")

	seedUsers(db)
	courses := seedCourses(db)
	seedCoupons(db, courses)

	color.Green("✅ Seeding complete.")
}

func seedUsers(db *gorm.DB) {
	users := []model.User{
		{Email: "admin@example.com", Name: "Platform Admin", Role: "ADMIN"},
		{Email: "student@example.com", Name: "Test Student", Phone: "010-1234-5678", Role: "STUDENT"},
	}
	for _, u := range users {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&u).Error
		if err != nil {
			color.Red("Failed to seed user %s: %v", u.Email, err)
			continue
		}
		color.White("  user: %s (%s)", u.Email, u.Role)
	}
}

func seedCourses(db *gorm.DB) []model.Course {
	courses := []model.Course{
		{Title: "Go Backend Bootcamp", Description: "REST APIs, databases, and deployment.", Price: 99000, IsPublished: true},
		{Title: "PostgreSQL Deep Dive", Description: "Indexes, query planning, transactions.", Price: 79000, IsPublished: true},
		{Title: "System Design Draft", Description: "Work in progress.", Price: 120000, IsPublished: false},
	}
	for i := range courses {
		var existing model.Course
		err := db.Where("title = ?", courses[i].Title).First(&existing).Error
		if err == nil {
			courses[i] = existing
			continue
		}
		if err := db.Create(&courses[i]).Error; err != nil {
			color.Red("Failed to seed course %s: %v", courses[i].Title, err)
			continue
		}
		color.White("  course: %s (%d KRW)", courses[i].Title, courses[i].Price)

		videos := []model.Video{
			{CourseId: courses[i].Id, Title: "Orientation", SortOrder: 1},
			{CourseId: courses[i].Id, Title: "Core Concepts", SortOrder: 2},
			{CourseId: courses[i].Id, Title: "Hands-on Project", SortOrder: 3},
		}
		if err := db.Create(&videos).Error; err != nil {
			color.Red("Failed to seed videos for %s: %v", courses[i].Title, err)
		}
	}
	return courses
}

func seedCoupons(db *gorm.DB, courses []model.Course) {
	until := time.Now().AddDate(0, 3, 0)
	coupons := []model.Coupon{
		{
			Code:              "WELCOME10",
			Description:       "10 percent off for new students",
			DiscountType:      "PERCENTAGE",
			DiscountValue:     10,
			MaxDiscountAmount: intPtr(20000),
			ValidFrom:         time.Now().AddDate(0, 0, -1),
			ValidUntil:        &until,
			UsageLimitPerUser: intPtr(1),
			IsActive:          true,
		},
		{
			Code:              "LAUNCH5000",
			Description:       "5000 KRW off the Go bootcamp",
			DiscountType:      "FIXED_AMOUNT",
			DiscountValue:     5000,
			MinPurchaseAmount: intPtr(50000),
			ValidFrom:         time.Now().AddDate(0, 0, -1),
			ValidUntil:        &until,
			UsageLimit:        intPtr(100),
			IsActive:          true,
		},
	}
	for i, c := range coupons {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&c).Error
		if err != nil {
			color.Red("Failed to seed coupon %s: %v", c.Code, err)
			continue
		}
		color.White("  coupon: %s", c.Code)

		// The launch coupon only applies to the first seeded course.
		if i == 1 && len(courses) > 0 {
			link := model.CouponCourse{CouponId: c.Id, CourseId: courses[0].Id}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				color.Red("Failed to link coupon %s: %v", c.Code, err)
			}
		}
	}
}
