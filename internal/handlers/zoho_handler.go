package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"careers-portal-backend/internal/services"
	"careers-portal-backend/internal/zoho"
)

type ZohoHandler struct {
	Client *zoho.Client
	Sync   *services.SyncService
}

func NewZohoHandler(client *zoho.Client, sync *services.SyncService) *ZohoHandler {
	return &ZohoHandler{Client: client, Sync: sync}
}

// OAuthCallback is the one-time operator bootstrap: Zoho redirects here
// with an authorization code, and the response contains the tokens.
// The refresh_token in it must be copied into the environment.
func (h *ZohoHandler) OAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": `missing "code"`})
		return
	}

	tokens, err := h.Client.ExchangeAuthCode(code)
	if err != nil {
		log.WithError(err).Error("zoho oauth callback failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"tokens": tokens,
		"note":   "Save the refresh_token into ZOHO_REFRESH_TOKEN",
	})
}

// CandidateFields returns the field metadata of the Candidates module,
// useful when adjusting the mapping.
func (h *ZohoHandler) CandidateFields(c *gin.Context) {
	fields, err := h.Client.CandidateFields()
	if err != nil {
		log.WithError(err).Error("zoho candidate fields failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(fields), "fields": fields})
}

// SyncStatus exposes the most recent sync outcome for diagnosis. The
// CRM is a secondary system of record, so this is the only place a
// failed mirror is visible outside the logs.
func (h *ZohoHandler) SyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "last": h.Sync.LastResult()})
}
