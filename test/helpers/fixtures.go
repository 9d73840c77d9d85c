package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"adops_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UniqueEmail returns an address no other test has used.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.local", prefix, time.Now().UnixNano())
}

// CreateUser inserts a user directly, hashing the raw password given
// in PasswordHash.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	require.NoError(t, err, "Failed to hash test password")
	user.PasswordHash = string(hashed)

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	require.NoError(t, db.Create(user).Error, "Failed to create test user")
}

// CreateAndLoginUser creates a user and logs them in through the API,
// returning the access token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, name string, role models.UserRole) (string, *models.User) {
	t.Helper()

	email := UniqueEmail(string(role))
	const password = "integration-pass-123"

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	CreateUser(t, ts.DB, user)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, "Login should succeed. Response: "+body)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateCampaign inserts a campaign directly.
func CreateCampaign(t *testing.T, db *gorm.DB, ownerID, name string, status models.CampaignStatus) *models.Campaign {
	t.Helper()

	campaign := &models.Campaign{
		OwnerID:  ownerID,
		Name:     name,
		Status:   status,
		Budget:   10000,
		Channels: datatypes.JSON(`["display","social"]`),
	}
	require.NoError(t, db.Create(campaign).Error, "Failed to create test campaign")
	return campaign
}

// SeedAnalyticsRecords inserts one record per day ending today.
func SeedAnalyticsRecords(t *testing.T, db *gorm.DB, campaignID string, days int) {
	t.Helper()

	start := time.Now().AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		record := &models.AnalyticsRecord{
			CampaignID:     campaignID,
			Date:           start.AddDate(0, 0, i).Truncate(24 * time.Hour),
			Impressions:    1000,
			Engagements:    100,
			Conversions:    10,
			CTR:            0.1,
			ConversionRate: 0.1,
			CostData:       datatypes.JSON(`{"spend": 50.0}`),
			AudienceMetrics: datatypes.JSON(
				`{"ageGroups": {"18-24": 40, "25-34": 60}}`),
			EmotionMetrics: datatypes.JSON(
				`{"sentiments": {"positive": 70, "neutral": 20, "negative": 10}}`),
		}
		require.NoError(t, db.Create(record).Error, "Failed to seed analytics record")
	}
}
