package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getSiteConfig(t *testing.T) SiteConfig {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewSiteConfigHandler()
	router.GET("/api/config", handler.GetHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cfg SiteConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	return cfg
}

func TestSiteConfigHandler_GetHandler(t *testing.T) {
	t.Run("Success_Defaults", func(t *testing.T) {
		cfg := getSiteConfig(t)

		assert.Equal(t, defaultLogoURL, cfg.LogoURL)
		assert.Equal(t, "NexusAI", cfg.SiteTitle)
		assert.Equal(t, "/", cfg.LogoLink)
		assert.Empty(t, cfg.Agents)
	})

	t.Run("Success_BrandingOverrides", func(t *testing.T) {
		t.Setenv("SITE_LOGO_URL", "https://cdn.example.com/logo.png")
		t.Setenv("SITE_TITLE", "Acme Agents")
		t.Setenv("SITE_WHATSAPP_NUMBER", "+5511999999999")

		cfg := getSiteConfig(t)

		assert.Equal(t, "https://cdn.example.com/logo.png", cfg.LogoURL)
		assert.Equal(t, "Acme Agents", cfg.SiteTitle)
		assert.Equal(t, "+5511999999999", cfg.WhatsappNumber)
	})

	t.Run("Success_ConfiguredSlotsOnly", func(t *testing.T) {
		t.Setenv("AGENT_1_TITLE", "Support")
		t.Setenv("AGENT_1_ICON", "headset")
		t.Setenv("AGENT_3_TITLE", "Sales")

		cfg := getSiteConfig(t)

		require.Len(t, cfg.Agents, 2)
		assert.Equal(t, 1, cfg.Agents[0].ID)
		assert.Equal(t, "Support", cfg.Agents[0].Title)
		assert.True(t, cfg.Agents[0].Visible)
		assert.Equal(t, 3, cfg.Agents[1].ID)
	})

	t.Run("Success_ExplicitlyHiddenSlotStillListed", func(t *testing.T) {
		t.Setenv("AGENT_2_VISIBLE", "false")

		cfg := getSiteConfig(t)

		require.Len(t, cfg.Agents, 1)
		assert.Equal(t, 2, cfg.Agents[0].ID)
		assert.False(t, cfg.Agents[0].Visible)
	})

	t.Run("Success_ChangesApplyWithoutRestart", func(t *testing.T) {
		t.Setenv("SITE_TITLE", "Before")
		assert.Equal(t, "Before", getSiteConfig(t).SiteTitle)

		t.Setenv("SITE_TITLE", "After")
		assert.Equal(t, "After", getSiteConfig(t).SiteTitle)
	})
}
