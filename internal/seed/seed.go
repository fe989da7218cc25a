package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmarken/shiftpulse/internal/domain"
)

const seededDays = 40

// rotation is a typical roster the seeded users cycle through.
var rotation = []string{"D", "D", "N", "N", "OFF", "OFF", "E"}

// Run seeds the database with sample users and day logs. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.DayLog{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	anchor := time.Now().UTC().AddDate(0, 0, -12)
	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam", CycleLengthDays: 28, PeriodLengthDays: 5},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York", CycleTrackingOn: true, LastPeriodStart: &anchor, CycleLengthDays: 29, PeriodLengthDays: 4},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo", CycleLengthDays: 28, PeriodLengthDays: 5},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Timezone: "Australia/Sydney", CycleLengthDays: 28, PeriodLengthDays: 5},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i, user := range users {
		if err := seedDayLogsForUser(db, user, rng, i); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedDayLogsForUser(db *gorm.DB, user domain.User, rng *rand.Rand, offset int) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < seededDays; i++ {
		date := today.AddDate(0, 0, -i)

		// Leave gaps so imputation and reliability decay show up in the data
		if rng.Intn(10) < 2 {
			continue
		}

		shift := rotation[(i+offset)%len(rotation)]
		dayLog := domain.DayLog{
			ID:     uuid.New(),
			UserID: user.ID,
			Date:   date,
			Shift:  shift,
		}

		sleep := 6.0 + rng.Float64()*2.5
		if shift == "N" {
			sleep -= 1.0 + rng.Float64()
		}
		quality := 2 + rng.Intn(3)
		stress := rng.Intn(4)
		activity := rng.Intn(4)
		mood := 2 + rng.Intn(3)
		dayLog.SleepHours = &sleep
		dayLog.SleepQuality = &quality
		dayLog.Stress = &stress
		dayLog.Activity = &activity
		dayLog.Mood = &mood

		if rng.Intn(2) == 0 {
			caffeine := 80 + rng.Intn(220)
			at := fmt.Sprintf("%02d:%02d", 8+rng.Intn(12), rng.Intn(60))
			dayLog.CaffeineMg = &caffeine
			dayLog.CaffeineLastAt = &at
		}
		if shift == "N" && rng.Intn(3) == 0 {
			overtime := float64(1 + rng.Intn(3))
			dayLog.OvertimeHours = &overtime
		}

		err := db.Where("user_id = ? AND date = ?", user.ID, date).FirstOrCreate(&dayLog).Error
		if err != nil {
			return fmt.Errorf("failed to create day log: %w", err)
		}
	}

	return nil
}
