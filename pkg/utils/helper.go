package utils

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"
)

// Round2 rounds a money amount to the cent.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatAmount renders a money amount as a 2-decimal string ("150.00").
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(Round2(amount), 'f', 2, 64)
}

// ToCents converts a major-unit amount into integer cents.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// GenerateOrderID creates a unique order reference with timestamp
func GenerateOrderID() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	// Format: RENT-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("RENT-%s-%s-%s", datePart, timePart, randomPart)
}
