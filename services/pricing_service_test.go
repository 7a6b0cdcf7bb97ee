package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"villa-backend/models"
)

func newPricingSvc(t *testing.T) (*PricingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Room{Code: "KNP1", Name: "Master Family Suite", Price: 107}).Error)
	require.NoError(t, db.Create(&models.RoomRate{
		RoomCode: "KNP1", Name: "Master Family Suite", AirbnbURL: "https://rates.example.com/knp1",
		ReferenceRate: 119, DirectRate: 107, DiscountPct: 0.10, LastUpdated: time.Now().Add(-time.Hour),
	}).Error)
	return NewPricingService(db), db
}

func TestUpdateReferenceRate_TenPercent(t *testing.T) {
	s, db := newPricingSvc(t)

	entry, err := s.UpdateReferenceRate("KNP1", 100)
	require.NoError(t, err)
	assert.Equal(t, float64(100), entry.ReferenceRate)
	assert.Equal(t, float64(90), entry.DirectRate)
	assert.Less(t, entry.DirectRate, entry.ReferenceRate)
	assert.WithinDuration(t, time.Now(), entry.LastUpdated, time.Minute)

	// the room card mirrors the direct rate
	var room models.Room
	require.NoError(t, db.Where("room_code = ?", "KNP1").First(&room).Error)
	assert.Equal(t, float64(90), room.Price)
}

func TestUpdateReferenceRate_Rounds(t *testing.T) {
	s, _ := newPricingSvc(t)
	entry, err := s.UpdateReferenceRate("KNP1", 119)
	require.NoError(t, err)
	assert.Equal(t, float64(107), entry.DirectRate) // round(119 * 0.9) = round(107.1)
}

func TestUpdateReferenceRate_RejectsNonPositive(t *testing.T) {
	s, db := newPricingSvc(t)

	_, err := s.UpdateReferenceRate("KNP1", -5)
	assert.True(t, IsValidation(err), "expected ValidationError, got %v", err)

	_, err = s.UpdateReferenceRate("KNP1", 0)
	assert.True(t, IsValidation(err), "expected ValidationError, got %v", err)

	var stored models.RoomRate
	require.NoError(t, db.Where("room_code = ?", "KNP1").First(&stored).Error)
	assert.Equal(t, float64(119), stored.ReferenceRate, "failed update must leave prior rates unchanged")
	assert.Equal(t, float64(107), stored.DirectRate)
}

func TestUpdateReferenceRate_UnknownRoom(t *testing.T) {
	s, _ := newPricingSvc(t)
	_, err := s.UpdateReferenceRate("KNP9", 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ---------- Lookup ----------

type fakeFetcher struct {
	prices map[string]float64
	errs   map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (float64, error) {
	if err, ok := f.errs[url]; ok {
		return 0, err
	}
	return f.prices[url], nil
}

func TestLookup_AppliesBookDirectDiscount(t *testing.T) {
	s, db := newPricingSvc(t)

	fetcher := &fakeFetcher{prices: map[string]float64{
		"https://rates.example.com/knp1": 200,
	}}
	results, err := s.Lookup(context.Background(), fetcher)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "success", results[0].Status)
	assert.Equal(t, float64(200), results[0].FetchedRate)
	assert.Equal(t, float64(170), results[0].DirectRate) // 15% off

	var stored models.RoomRate
	require.NoError(t, db.Where("room_code = ?", "KNP1").First(&stored).Error)
	assert.Equal(t, LookupDiscount, stored.DiscountPct)
}

func TestLookup_OneFailureDoesNotBlockOthers(t *testing.T) {
	s, db := newPricingSvc(t)
	require.NoError(t, db.Create(&models.RoomRate{
		RoomCode: "KNP3", Name: "Triple/Twin Room", AirbnbURL: "https://rates.example.com/knp3",
		ReferenceRate: 70, DirectRate: 63, DiscountPct: 0.10, LastUpdated: time.Now(),
	}).Error)

	fetcher := &fakeFetcher{
		prices: map[string]float64{"https://rates.example.com/knp3": 80},
		errs: map[string]error{
			"https://rates.example.com/knp1": &UpstreamError{URL: "https://rates.example.com/knp1", Err: errors.New("rate limited")},
		},
	}

	results, err := s.Lookup(context.Background(), fetcher)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byRoom := map[string]LookupResult{}
	for _, r := range results {
		byRoom[r.RoomCode] = r
	}
	assert.Equal(t, "failed", byRoom["KNP1"].Status)
	assert.NotEmpty(t, byRoom["KNP1"].Error)
	assert.Equal(t, "success", byRoom["KNP3"].Status)
	assert.Equal(t, float64(68), byRoom["KNP3"].DirectRate) // round(80 * 0.85)

	var knp1 models.RoomRate
	require.NoError(t, db.Where("room_code = ?", "KNP1").First(&knp1).Error)
	assert.Equal(t, float64(119), knp1.ReferenceRate, "failed lookup leaves the room untouched")
}

func TestLookup_SkipsRoomsWithoutURL(t *testing.T) {
	s, db := newPricingSvc(t)
	require.NoError(t, db.Create(&models.RoomRate{
		RoomCode: "KNP6", Name: "Group Room", ReferenceRate: 250, DirectRate: 225, LastUpdated: time.Now(),
	}).Error)

	results, err := s.Lookup(context.Background(), &fakeFetcher{prices: map[string]float64{
		"https://rates.example.com/knp1": 120,
	}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "KNP1", results[0].RoomCode)
}

func TestDeriveDirectRate(t *testing.T) {
	assert.Equal(t, float64(90), DeriveDirectRate(100, 0.10))
	assert.Equal(t, float64(85), DeriveDirectRate(100, 0.15))
	assert.Equal(t, float64(366), DeriveDirectRate(431, 0.15)) // round(366.35)
}
