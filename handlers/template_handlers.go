package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"canvaclone/api/models"
	"canvaclone/api/utils"
)

// GetTemplates godoc
// @Summary Retrieve the template catalog
// @Tags template
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/templates [get]
func (h *ApplicationHandler) GetTemplates(c *fiber.Ctx) error {
	body, _, err := h.DB.From("templates").
		Select("*", "", false).
		Order("created_at", &descendingOrder).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching templates: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	templates := []models.Template{}
	if err := json.Unmarshal(body, &templates); err != nil {
		h.Logger.Errorf("Error unmarshalling templates: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, templates, "Fetched templates successfully!!")
}
