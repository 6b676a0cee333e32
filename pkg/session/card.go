package session

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateCardNo issues a reader card number: "L" + yymmdd + 4 random digits.
func GenerateCardNo() string {
	now := time.Now()
	random := rand.IntN(9000) + 1000
	return fmt.Sprintf("L%s%04d", now.Format("060102"), random)
}
