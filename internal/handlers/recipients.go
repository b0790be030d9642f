package handlers

import (
	"errors"
	"net/http"

	"print_notifier/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errUpdateToken     = "failed to update token"
	errListRecipients  = "failed to load recipients"
	errDeleteRecipient = "failed to delete recipient"
)

// UpdateTokenRequest is the registration call made by the mobile app.
type UpdateTokenRequest struct {
	OldToken    string `json:"old_token" example:"fcm-token-old"`
	NewToken    string `json:"new_token" binding:"required" example:"fcm-token-new"`
	DeviceName  string `json:"device_name" example:"Pixel 8"`
	PrinterID   string `json:"printer_id" binding:"required" example:"printer-1"`
	DisplayName string `json:"display_name,omitempty" example:"Workshop MK4"`
	Language    string `json:"language_code,omitempty" example:"de"`
}

// @Summary      Register or rotate a device token
// @Description  Replaces old_token on the same printer, refreshes display name and language, or appends a new recipient.
// @Tags         recipients
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateTokenRequest  true  "Token update"
// @Success      200   {object}  models.Recipient
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/recipients [post]
// @Security     BearerAuth
func (h *Handler) updateToken(c *gin.Context) {
	var req UpdateTokenRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	rec, err := h.services.UpdateToken(c.Request.Context(), service.TokenUpdate{
		OldToken:    req.OldToken,
		NewToken:    req.NewToken,
		DeviceName:  req.DeviceName,
		PrinterID:   req.PrinterID,
		DisplayName: req.DisplayName,
		Language:    req.Language,
	})
	switch {
	case errors.Is(err, service.ErrInvalidRecipient):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateToken, "recipient_update_failed", err, "printer_id", req.PrinterID)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      List recipients
// @Tags         recipients
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, recipients"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/recipients [get]
// @Security     BearerAuth
func (h *Handler) listRecipients(c *gin.Context) {
	recipients, err := h.services.ListRecipients(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRecipients, "recipient_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(recipients),
		"recipients": recipients,
	})
}

// @Summary      Delete a recipient
// @Tags         recipients
// @Produce      json
// @Param        token       path   string  true  "Device token"
// @Param        printer_id  query  string  true  "Printer id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/recipients/{token} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRecipient(c *gin.Context) {
	token := c.Param("token")
	printerID := c.Query("printer_id")
	if printerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "printer_id is required"})
		return
	}
	err := h.services.DeleteRecipient(c.Request.Context(), token, printerID)
	switch {
	case errors.Is(err, service.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteRecipient, "recipient_delete_failed", err, "printer_id", printerID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}
