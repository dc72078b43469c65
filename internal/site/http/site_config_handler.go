// Package http provides the public site-configuration endpoint. Branding and
// agent-card settings live in environment variables so the site can be
// re-skinned without a deploy; values are read on every request.
package http

import (
	"fmt"
	"net/http"
	"os"

	env "github.com/allisson/go-env"
	"github.com/gin-gonic/gin"
)

// maxAgentSlots bounds how many AGENT_<n>_* blocks are scanned.
const maxAgentSlots = 20

const defaultLogoURL = "https://static.vecteezy.com/system/resources/previews/009/384/620/original/ai-tech-artificial-intelligence-clipart-design-illustration-free-png.png"

// AgentSlot is one environment-configured agent card.
type AgentSlot struct {
	ID             int    `json:"id"`
	Visible        bool   `json:"visible"`
	Icon           string `json:"icon,omitempty"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	InitialMessage string `json:"initialMessage,omitempty"`
	WebhookName    string `json:"webhookName,omitempty"`
}

// SiteConfig is the public branding and agent-card configuration.
type SiteConfig struct {
	LogoURL        string      `json:"logoUrl"`
	FaviconURL     string      `json:"faviconUrl"`
	WebhookURL     string      `json:"webhookUrl"`
	WhatsappNumber string      `json:"whatsappNumber"`
	SiteTitle      string      `json:"siteTitle"`
	LogoLink       string      `json:"logoLink"`
	Agents         []AgentSlot `json:"agents"`
}

// SiteConfigHandler serves the environment-driven site configuration.
type SiteConfigHandler struct{}

// NewSiteConfigHandler creates a new SiteConfigHandler.
func NewSiteConfigHandler() *SiteConfigHandler {
	return &SiteConfigHandler{}
}

func agentSlot(id int) AgentSlot {
	prefix := fmt.Sprintf("AGENT_%d", id)
	return AgentSlot{
		ID:             id,
		Visible:        env.GetBool(prefix+"_VISIBLE", true),
		Icon:           env.GetString(prefix+"_ICON", ""),
		Title:          env.GetString(prefix+"_TITLE", ""),
		Description:    env.GetString(prefix+"_DESCRIPTION", ""),
		InitialMessage: env.GetString(prefix+"_INITIAL_MESSAGE", ""),
		WebhookName:    env.GetString(prefix+"_WEBHOOK_NAME", ""),
	}
}

// configured reports whether the slot has any setting defined. Untouched
// slots are skipped; VISIBLE=false alone still counts as a configured slot
// that was then hidden.
func (a AgentSlot) configured() bool {
	if a.Icon != "" || a.Title != "" || a.Description != "" ||
		a.InitialMessage != "" || a.WebhookName != "" {
		return true
	}
	_, explicit := os.LookupEnv(fmt.Sprintf("AGENT_%d_VISIBLE", a.ID))
	return explicit
}

// GetHandler returns the current site configuration.
// GET /api/config
func (h *SiteConfigHandler) GetHandler(c *gin.Context) {
	agents := make([]AgentSlot, 0, maxAgentSlots)
	for id := 1; id <= maxAgentSlots; id++ {
		slot := agentSlot(id)
		if slot.configured() {
			agents = append(agents, slot)
		}
	}

	c.JSON(http.StatusOK, SiteConfig{
		LogoURL:        env.GetString("SITE_LOGO_URL", defaultLogoURL),
		FaviconURL:     env.GetString("SITE_FAVICON_URL", defaultLogoURL),
		WebhookURL:     env.GetString("SITE_WEBHOOK_URL", ""),
		WhatsappNumber: env.GetString("SITE_WHATSAPP_NUMBER", ""),
		SiteTitle:      env.GetString("SITE_TITLE", "NexusAI"),
		LogoLink:       env.GetString("SITE_LOGO_LINK", "/"),
		Agents:         agents,
	})
}
