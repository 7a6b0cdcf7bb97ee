package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"villa-backend/models"
)

// Direct-booking discounts as fractions of the reference rate. Manual
// rate updates use the standing weekday discount; the Airbnb lookup
// path applies the larger book-direct discount.
const (
	DefaultDiscount = 0.10
	LookupDiscount  = 0.15
)

// PricingService derives the discounted direct-booking rate from an
// externally sourced reference rate and keeps the public room cards in
// sync with it.
type PricingService struct {
	DB *gorm.DB
	// Discount applied by UpdateReferenceRate. Zero means DefaultDiscount.
	Discount float64
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db, Discount: DefaultDiscount}
}

func (s *PricingService) discount() float64 {
	if s.Discount <= 0 || s.Discount >= 1 {
		return DefaultDiscount
	}
	return s.Discount
}

// DeriveDirectRate is the pricing transform: round(rate * (1 - discount)).
func DeriveDirectRate(referenceRate, discount float64) float64 {
	return math.Round(referenceRate * (1 - discount))
}

// Rates returns all room rates ordered by room code.
func (s *PricingService) Rates() ([]models.RoomRate, error) {
	var rates []models.RoomRate
	if err := s.DB.Order("room_code ASC").Find(&rates).Error; err != nil {
		return nil, &StorageError{Op: "list room rates", Err: err}
	}
	return rates, nil
}

// UpdateReferenceRate sets the reference rate for one room, recomputes
// the direct rate and stamps lastUpdated. A non-positive rate fails
// validation and leaves the stored rates untouched.
func (s *PricingService) UpdateReferenceRate(roomCode string, rate float64) (models.RoomRate, error) {
	return s.applyRate(roomCode, rate, s.discount())
}

func (s *PricingService) applyRate(roomCode string, rate, discount float64) (models.RoomRate, error) {
	if rate <= 0 {
		return models.RoomRate{}, validationf("reference rate must be positive, got %.2f", rate)
	}

	var entry models.RoomRate
	if err := s.DB.Where("room_code = ?", roomCode).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoomRate{}, ErrNotFound
		}
		return models.RoomRate{}, &StorageError{Op: "load room rate", Err: err}
	}

	entry.ReferenceRate = rate
	entry.DirectRate = DeriveDirectRate(rate, discount)
	entry.DiscountPct = discount
	entry.LastUpdated = time.Now()

	if err := s.DB.Save(&entry).Error; err != nil {
		return models.RoomRate{}, &StorageError{Op: "save room rate", Err: err}
	}

	// Mirror the direct rate onto the public room card.
	if err := s.DB.Model(&models.Room{}).
		Where("room_code = ?", roomCode).
		Update("price", entry.DirectRate).Error; err != nil {
		log.Warn().Err(err).Str("room", roomCode).Msg("failed to mirror direct rate onto room card")
	}

	log.Info().Str("room", roomCode).Float64("reference", rate).
		Float64("direct", entry.DirectRate).Msg("room rate updated")
	return entry, nil
}

// RateFetcher retrieves the current nightly price for a listing URL.
type RateFetcher interface {
	Fetch(ctx context.Context, url string) (float64, error)
}

// HTTPRateFetcher pulls rates from a partner price endpoint returning
// {"price": <number>}. It relies on the client's default timeout
// behavior; there are no retries.
type HTTPRateFetcher struct {
	Client *http.Client
}

func (f *HTTPRateFetcher) Fetch(ctx context.Context, url string) (float64, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &UpstreamError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, &UpstreamError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &UpstreamError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, &UpstreamError{URL: url, Err: err}
	}
	if body.Price <= 0 {
		return 0, &UpstreamError{URL: url, Err: fmt.Errorf("no price in response")}
	}
	return body.Price, nil
}

// LookupResult is the per-room outcome of an external rate lookup.
type LookupResult struct {
	RoomCode     string  `json:"roomCode"`
	Name         string  `json:"name"`
	Status       string  `json:"status"` // success | failed
	FetchedRate  float64 `json:"fetchedRate,omitempty"`
	DirectRate   float64 `json:"directRate,omitempty"`
	Error        string  `json:"error,omitempty"`
	ResponseTime float64 `json:"responseTime"`
}

// Lookup fetches the reference rate for every room that has a listing
// URL configured and feeds successful fetches through the pricing
// transform with the book-direct discount. One room's failure never
// blocks the others.
func (s *PricingService) Lookup(ctx context.Context, fetcher RateFetcher) ([]LookupResult, error) {
	rates, err := s.Rates()
	if err != nil {
		return nil, err
	}

	results := make([]LookupResult, 0, len(rates))
	for _, entry := range rates {
		if entry.AirbnbURL == "" {
			continue
		}

		start := time.Now()
		res := LookupResult{RoomCode: entry.RoomCode, Name: entry.Name}

		price, err := fetcher.Fetch(ctx, entry.AirbnbURL)
		res.ResponseTime = time.Since(start).Seconds()
		if err != nil {
			res.Status = "failed"
			res.Error = err.Error()
			log.Warn().Err(err).Str("room", entry.RoomCode).Msg("rate lookup failed")
			results = append(results, res)
			continue
		}

		updated, err := s.applyRate(entry.RoomCode, price, LookupDiscount)
		if err != nil {
			res.Status = "failed"
			res.Error = err.Error()
			results = append(results, res)
			continue
		}

		res.Status = "success"
		res.FetchedRate = price
		res.DirectRate = updated.DirectRate
		results = append(results, res)
	}
	return results, nil
}
