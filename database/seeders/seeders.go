package seeders

import (
	"log"
	"time"

	"madrasha_go/database"
	"madrasha_go/models"
	"madrasha_go/utils"

	"github.com/shopspring/decimal"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedUsers()
	SeedBatches()
	SeedFees()
	SeedExpenses()

	log.Println("Database seeding completed successfully!")
}

// SeedUsers seeds the users table
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	// Hash the default password
	hashedPassword, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			FirstName: "Abdur",
			LastName:  "Rahman",
			Phone:     "01712345678",
			Email:     "admin@madrasha.example",
			Password:  hashedPassword,
			Role:      models.RoleSuperUser,
			IsActive:  true,
		},
		{
			FirstName: "Abdullah",
			LastName:  "Al Mamun",
			Phone:     "01812345678",
			Email:     "ustadh@madrasha.example",
			Password:  hashedPassword,
			Role:      models.RoleTeacher,
			IsActive:  true,
		},
		{
			FirstName: "Muhammad",
			LastName:  "Yusuf",
			Phone:     "01612345678",
			Email:     "junior@madrasha.example",
			Password:  hashedPassword,
			Role:      models.RoleJuniorUstadh,
			IsActive:  true,
		},
		{
			FirstName: "Imran",
			LastName:  "Hossain",
			Phone:     "01912345678",
			Password:  hashedPassword,
			Role:      models.RoleStudent,
			IsActive:  true,
		},
	}

	for _, user := range users {
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v", user.Phone, err)
		}
	}

	log.Println("Users seeded successfully")
}

// SeedBatches seeds the madrasha classes
func SeedBatches() {
	var count int64
	database.DB.Model(&models.Batch{}).Count(&count)
	if count > 0 {
		log.Println("Batches already seeded, skipping...")
		return
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	batches := []models.Batch{
		{
			Name:        "বেবি ক্লাস",
			Description: "আরবি ও বাংলা বর্ণমালা, মৌলিক দোয়া ও সুরা",
			FeeAmount:   decimal.RequireFromString("500.00"),
			StartDate:   start,
			IsActive:    true,
		},
		{
			Name:        "প্রথম শ্রেণী",
			Description: "কুরআন নাযেরা, বাংলা, গণিত, আকাইদ ও ফিকহ",
			FeeAmount:   decimal.RequireFromString("800.00"),
			StartDate:   start,
			IsActive:    true,
		},
		{
			Name:        "দ্বিতীয় শ্রেণী",
			Description: "কুরআন নাযেরা, বাংলা, ইংরেজি, গণিত, আরবি ব্যাকরণ",
			FeeAmount:   decimal.RequireFromString("900.00"),
			StartDate:   start,
			IsActive:    true,
		},
		{
			Name:        "তৃতীয় শ্রেণী",
			Description: "কুরআন তাজবীদসহ, বাংলা, ইংরেজি, গণিত, হাদীস ও ফিকহ",
			FeeAmount:   decimal.RequireFromString("1000.00"),
			StartDate:   start,
			IsActive:    true,
		},
		{
			Name:        "চতুর্থ শ্রেণী",
			Description: "কুরআন হিফজ শুরু, সকল সাধারণ বিষয়, আরবি সাহিত্য, ইসলামের ইতিহাস",
			FeeAmount:   decimal.RequireFromString("1200.00"),
			StartDate:   start,
			IsActive:    true,
		},
	}

	for _, batch := range batches {
		if err := database.DB.Create(&batch).Error; err != nil {
			log.Printf("Error seeding batch %s: %v", batch.Name, err)
		}
	}

	// Enroll the sample student in the third class
	var student models.User
	var batch models.Batch
	if database.DB.Where("phone = ?", "01912345678").First(&student).Error == nil &&
		database.DB.Where("name = ?", "তৃতীয় শ্রেণী").First(&batch).Error == nil {
		if err := database.DB.Model(&batch).Association("Students").Append(&student); err != nil {
			log.Printf("Error enrolling sample student: %v", err)
		}
	}

	log.Println("Batches seeded successfully")
}

// SeedFees seeds sample fee records for the enrolled student
func SeedFees() {
	var count int64
	database.DB.Model(&models.Fee{}).Count(&count)
	if count > 0 {
		log.Println("Fees already seeded, skipping...")
		return
	}

	var student models.User
	var batch models.Batch
	if database.DB.Where("phone = ?", "01912345678").First(&student).Error != nil ||
		database.DB.Where("name = ?", "তৃতীয় শ্রেণী").First(&batch).Error != nil {
		log.Println("Sample student or batch missing, skipping fee seed")
		return
	}

	janPaid := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
	fees := []models.Fee{
		{
			UserID:        student.ID,
			BatchID:       batch.ID,
			Month:         1,
			Year:          2025,
			Amount:        batch.FeeAmount,
			DueDate:       time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local),
			Status:        models.FeeStatusPaid,
			PaidDate:      &janPaid,
			PaymentMethod: "Cash",
		},
		{
			UserID:  student.ID,
			BatchID: batch.ID,
			Month:   2,
			Year:    2025,
			Amount:  batch.FeeAmount,
			DueDate: time.Date(2025, 2, 28, 0, 0, 0, 0, time.Local),
			Status:  models.FeeStatusPending,
		},
		{
			UserID:  student.ID,
			BatchID: batch.ID,
			Month:   3,
			Year:    2025,
			Amount:  batch.FeeAmount,
			DueDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.Local),
			Status:  models.FeeStatusOverdue,
			LateFee: decimal.RequireFromString("100.00"),
		},
	}

	for _, fee := range fees {
		if err := database.DB.Create(&fee).Error; err != nil {
			log.Printf("Error seeding fee for %d/%d: %v", fee.Month, fee.Year, err)
		}
	}

	log.Println("Fees seeded successfully")
}

// SeedExpenses seeds sample expense records
func SeedExpenses() {
	var count int64
	database.DB.Model(&models.Expense{}).Count(&count)
	if count > 0 {
		log.Println("Expenses already seeded, skipping...")
		return
	}

	expenses := []models.Expense{
		{
			Category:      "salary",
			Description:   "উস্তাদ মাসিক বেতন - জানুয়ারি ২০২৫",
			Amount:        decimal.RequireFromString("15000.00"),
			Date:          time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local),
			Recipient:     "উস্তাদ আব্দুল্লাহ",
			PaymentMethod: "Cash",
			Notes:         "প্রধান উস্তাদ মাসিক বেতন",
		},
		{
			Category:      "salary",
			Description:   "সহকারী উস্তাদ বেতন - জানুয়ারি",
			Amount:        decimal.RequireFromString("10000.00"),
			Date:          time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local),
			Recipient:     "উস্তাদ মুহাম্মদ",
			PaymentMethod: "Bank Transfer",
		},
		{
			Category:      "books",
			Description:   "কুরআন শিক্ষার বই ক্রয়",
			Amount:        decimal.RequireFromString("3500.00"),
			Date:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local),
			Recipient:     "ইসলামিক বুক ডিপো",
			PaymentMethod: "Cash",
		},
		{
			Category:      "utilities",
			Description:   "বিদ্যুৎ বিল - জানুয়ারি",
			Amount:        decimal.RequireFromString("1200.00"),
			Date:          time.Date(2025, 1, 20, 0, 0, 0, 0, time.Local),
			Recipient:     "DESCO",
			PaymentMethod: "Online Payment",
		},
		{
			Category:      "stationery",
			Description:   "খাতা, কলম ও স্টেশনারি",
			Amount:        decimal.RequireFromString("1500.00"),
			Date:          time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local),
			Recipient:     "স্টেশনারি মার্ট",
			PaymentMethod: "Cash",
		},
	}

	for _, expense := range expenses {
		if err := database.DB.Create(&expense).Error; err != nil {
			log.Printf("Error seeding expense %s: %v", expense.Category, err)
		}
	}

	log.Println("Expenses seeded successfully")
}
