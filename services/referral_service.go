package services

import (
	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/notifications"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const ReferralRewardAmount = 5.00

// CompleteReferralIfApplicable credits the referrer once the referred user
// makes their first paid enrollment. No-op when the user was not referred or
// the referral is already completed.
func CompleteReferralIfApplicable(userID uint) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var referral models.Referral
		if err := tx.Preload("Referrer").Where("referred_user_id = ? AND status = ?", userID, "pending").First(&referral).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		referrer := referral.Referrer
		referrer.CreditBalance += ReferralRewardAmount
		if err := tx.Save(&referrer).Error; err != nil {
			return err
		}

		referral.Status = "completed"
		referral.RewardAmount = ReferralRewardAmount
		if err := tx.Save(&referral).Error; err != nil {
			return err
		}

		go notifications.SendEmail(
			referrer.FullName,
			referrer.Email,
			"You've Earned a Referral Credit!",
			"<h1>Congratulations!</h1><p>Someone you referred has enrolled in their first course. A credit of $5.00 has been added to your account.</p>",
		)

		return nil
	})

	if err != nil {
		logrus.Errorf("🔥 Error processing referral for user %d: %v", userID, err)
	}
}
