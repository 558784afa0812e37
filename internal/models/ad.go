package models

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Ad is a posted listing. ID is a UUIDv7 string, so ordering ids lexically
// orders ads by creation.
type Ad struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"imageURL"`
	UserEmail   string    `json:"userEmail"`
	CreatedAt   time.Time `json:"createdAt"`
}

var ErrInvalidPrice = errors.New("price must be a non-negative number")

// FormatPrice normalises a user-entered price to a decimal string with two
// fractional digits ("5" -> "5.00", "19.999" -> "20.00").
func FormatPrice(raw string) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return "", ErrInvalidPrice
	}
	return strconv.FormatFloat(v, 'f', 2, 64), nil
}

// DisplayPrice formats a stored price for a card. Values that do not parse
// are shown as stored.
func DisplayPrice(price string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return price
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// SortNewestFirst orders ads by descending id. Ads with equal ids keep their
// relative order.
func SortNewestFirst(ads []Ad) {
	sort.SliceStable(ads, func(i, j int) bool {
		return ads[i].ID > ads[j].ID
	})
}
