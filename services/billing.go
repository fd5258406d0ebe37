package services

import (
	"errors"
	"time"

	"madrasha_go/config"
	"madrasha_go/database"
	"madrasha_go/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// periodDueDate returns the last day of the billed month.
func periodDueDate(month, year int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
}

// OpenBillingPeriod creates one pending fee per active enrollment for the
// given month/year. Periods already billed for an enrollment are skipped, and
// the composite unique index on (user, batch, month, year) backstops the
// check against racing generators.
func OpenBillingPeriod(month, year int) (created int, skipped int, err error) {
	var batches []models.Batch
	if err := database.DB.Preload("Students", "is_archived = ? AND is_active = ?", false, true).
		Where("is_active = ?", true).
		Find(&batches).Error; err != nil {
		return 0, 0, err
	}

	// Fees fall due on the last day of the month
	dueDate := periodDueDate(month, year)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, batch := range batches {
			for _, student := range batch.Students {
				var existing models.Fee
				lookupErr := tx.Where("user_id = ? AND batch_id = ? AND month = ? AND year = ?",
					student.ID, batch.ID, month, year).First(&existing).Error
				if lookupErr == nil {
					skipped++
					continue
				}
				if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
					return lookupErr
				}

				fee := models.Fee{
					UserID:  student.ID,
					BatchID: batch.ID,
					Month:   month,
					Year:    year,
					Amount:  batch.FeeAmount,
					DueDate: dueDate,
					Status:  models.FeeStatusPending,
				}
				if createErr := tx.Create(&fee).Error; createErr != nil {
					if errors.Is(createErr, gorm.ErrDuplicatedKey) {
						skipped++
						continue
					}
					return createErr
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	logrus.WithFields(logrus.Fields{
		"month":   month,
		"year":    year,
		"created": created,
		"skipped": skipped,
	}).Info("Billing period opened")

	return created, skipped, nil
}

// StartBillingScheduler opens the current billing period on the first day of
// every month.
func StartBillingScheduler() *cron.Cron {
	if !config.AppConfig.EnableBillingScheduler {
		logrus.Info("Billing scheduler disabled by configuration")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc("0 0 1 * *", func() {
		now := time.Now()
		if _, _, err := OpenBillingPeriod(int(now.Month()), now.Year()); err != nil {
			logrus.WithError(err).Error("Scheduled billing period generation failed")
		}
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to register billing scheduler")
		return nil
	}

	c.Start()
	logrus.Info("Billing scheduler started (monthly)")
	return c
}
