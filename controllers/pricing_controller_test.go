package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villa-backend/models"
)

func seedRate(t *testing.T, api *testAPI) {
	t.Helper()
	require.NoError(t, api.db.Create(&models.Room{Code: "KNP1", Name: "Master Family Suite", Price: 107}).Error)
	require.NoError(t, api.db.Create(&models.RoomRate{
		RoomCode: "KNP1", Name: "Master Family Suite",
		ReferenceRate: 119, DirectRate: 107, DiscountPct: 0.10, LastUpdated: time.Now(),
	}).Error)
}

func TestPricingEndpoint_Update(t *testing.T) {
	api := newTestAPI(t)
	seedRate(t, api)

	resp := api.doJSON(t, http.MethodPost, "/api/admin/pricing", map[string]any{
		"roomCode": "KNP1", "referenceRate": 100,
	}, api.token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out struct {
		Rate models.RoomRate `json:"rate"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, float64(90), out.Rate.DirectRate)
}

func TestPricingEndpoint_RejectsNonPositiveRate(t *testing.T) {
	api := newTestAPI(t)
	seedRate(t, api)

	resp := api.doJSON(t, http.MethodPost, "/api/admin/pricing", map[string]any{
		"roomCode": "KNP1", "referenceRate": -5,
	}, api.token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var stored models.RoomRate
	require.NoError(t, api.db.Where("room_code = ?", "KNP1").First(&stored).Error)
	assert.Equal(t, float64(107), stored.DirectRate, "rejected update leaves the stored rate alone")
}

func TestPricingEndpoint_UnknownRoom(t *testing.T) {
	api := newTestAPI(t)
	seedRate(t, api)

	resp := api.doJSON(t, http.MethodPost, "/api/admin/pricing", map[string]any{
		"roomCode": "KNP9", "referenceRate": 100,
	}, api.token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPricingEndpoint_ListRates(t *testing.T) {
	api := newTestAPI(t)
	seedRate(t, api)

	resp := api.doJSON(t, http.MethodGet, "/api/admin/pricing", nil, api.token)
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Rates []models.RoomRate `json:"rates"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Len(t, out.Rates, 1)
	assert.Less(t, out.Rates[0].DirectRate, out.Rates[0].ReferenceRate)
}
