package utils

import (
	"math/rand"
	"time"

	"github.com/anjiri1684/english_academy/models"
	"gorm.io/gorm"
)

const referralCodeLength = 8
const referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueReferralCode returns a short code not yet assigned to any
// user. Must run inside the same transaction that creates the user so the
// unique column catches a race anyway.
func GenerateUniqueReferralCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, referralCodeLength)
		for i := range b {
			b[i] = referralCodeAlphabet[seededRand.Intn(len(referralCodeAlphabet))]
		}
		code := string(b)

		var user models.User
		err := tx.Where("referral_code = ?", code).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
