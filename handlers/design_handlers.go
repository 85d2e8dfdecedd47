package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"canvaclone/api/middleware"
	"canvaclone/api/models"
	"canvaclone/api/utils"
)

// parseComponents turns the multipart "design" field into the stored
// component array. A JSON array is stored as submitted; a single component
// object is wrapped in a one-element array.
func parseComponents(raw string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, fmt.Errorf("design field is not valid JSON")
	}
	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil
	}
	wrapped := make([]byte, 0, len(trimmed)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, trimmed...)
	wrapped = append(wrapped, ']')
	return json.RawMessage(wrapped), nil
}

// uploadFormImage pushes the multipart image file to the media host and
// returns its public URL.
func (h *ApplicationHandler) uploadFormImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	contentType := ""
	if ct, ok := file.Header["Content-Type"]; ok && len(ct) > 0 {
		contentType = ct[0]
	}
	return h.Storage.Upload(file.Filename, contentType, src)
}

// CreateUserDesign godoc
// @Summary Create a new design for the user
// @Tags design
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Preview image for the design"
// @Param design formData string true "JSON of design components"
// @Success 201 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/create-user-design [post]
func (h *ApplicationHandler) CreateUserDesign(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	components, err := parseComponents(c.FormValue("design"))
	if err != nil {
		h.Logger.Errorf("Error parsing design components: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.Logger.Errorf("Error reading design image from form: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	imageURL, err := h.uploadFormImage(file)
	if err != nil {
		h.Logger.Errorf("Error uploading design image: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	now := time.Now()
	designToInsert := map[string]interface{}{
		"user_id":    user.ID,
		"components": components,
		"image_url":  imageURL,
		"created_at": now,
		"updated_at": now,
	}

	body, _, err := h.DB.From("designs").
		Insert(designToInsert, false, "", "representation", "").
		Execute()
	if err != nil {
		h.Logger.Errorf("Error creating design: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	var created []models.Design
	if err := json.Unmarshal(body, &created); err != nil || len(created) == 0 {
		h.Logger.Errorf("Error unmarshalling created design: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	h.Logger.WithField("design_id", created[0].ID).Info("Design created")
	return utils.Created(c, created[0], "Design created successfully!!")
}

// GetUserDesign godoc
// @Summary Fetch a specific user design by ID
// @Tags design
// @Produce json
// @Security BearerAuth
// @Param design_id path string true "The design ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/user-design/{design_id} [get]
func (h *ApplicationHandler) GetUserDesign(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	designID := c.Params("design_id")
	if _, err := uuid.Parse(designID); err != nil {
		return utils.NotFound(c, "Design not found")
	}

	design, err := h.findUserDesign(designID, user.ID)
	if err != nil {
		h.Logger.Errorf("Error fetching design %s: %v", designID, err)
		return utils.ServerError(c, "Something went wrong")
	}
	if design == nil {
		return utils.NotFound(c, "Design not found")
	}

	return utils.Ok(c, design, "Fetched user design")
}

// UpdateUserDesign godoc
// @Summary Update a user's design
// @Tags design
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param design_id path string true "The design ID"
// @Param image formData file true "Preview image"
// @Param design formData string true "JSON of design components"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/update-user-design/{design_id} [put]
func (h *ApplicationHandler) UpdateUserDesign(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	designID := c.Params("design_id")
	if _, err := uuid.Parse(designID); err != nil {
		return utils.NotFound(c, "Design not found")
	}

	components, err := parseComponents(c.FormValue("design"))
	if err != nil {
		h.Logger.Errorf("Error parsing design components: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	// Existence is checked before any upload so a miss has no side effects.
	oldDesign, err := h.findUserDesign(designID, user.ID)
	if err != nil {
		h.Logger.Errorf("Error fetching design %s for update: %v", designID, err)
		return utils.ServerError(c, "Something went wrong")
	}
	if oldDesign == nil {
		return utils.NotFound(c, "Design not found")
	}

	// Replacing the preview: the old remote asset is deleted best-effort.
	// A failed delete only orphans an object on the media host.
	if oldDesign.ImageURL != "" {
		if err := h.Storage.Remove(oldDesign.ImageURL); err != nil {
			h.Logger.WithField("design_id", designID).Warnf("Failed to remove old preview image: %v", err)
		}
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.Logger.Errorf("Error reading design image from form: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	imageURL, err := h.uploadFormImage(file)
	if err != nil {
		h.Logger.Errorf("Error uploading design image: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	updateData := map[string]interface{}{
		"components": components,
		"image_url":  imageURL,
		"updated_at": time.Now(),
	}

	body, _, err := h.DB.From("designs").
		Update(updateData, "representation", "").
		Eq("id", designID).
		Eq("user_id", user.ID.String()).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error updating design %s: %v", designID, err)
		return utils.ServerError(c, "Something went wrong")
	}

	var updated []models.Design
	if err := json.Unmarshal(body, &updated); err != nil || len(updated) == 0 {
		h.Logger.Errorf("Error unmarshalling updated design %s: %v", designID, err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, updated[0], "Design saved successfully!!")
}

// GetUserDesigns godoc
// @Summary Fetch all designs created by the logged-in user
// @Tags design
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/user-designs [get]
func (h *ApplicationHandler) GetUserDesigns(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	body, _, err := h.DB.From("designs").
		Select("*", "", false).
		Eq("user_id", user.ID.String()).
		Order("created_at", &descendingOrder).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching designs for user %s: %v", user.ID, err)
		return utils.ServerError(c, "Something went wrong")
	}

	designs := []models.Design{}
	if err := json.Unmarshal(body, &designs); err != nil {
		h.Logger.Errorf("Error unmarshalling designs: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, designs, "Fetched user designs successfully!!")
}

// DeleteUserDesign godoc
// @Summary Delete a user's design
// @Tags design
// @Produce json
// @Security BearerAuth
// @Param design_id path string true "The design ID"
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/delete-user-image/{design_id} [put]
func (h *ApplicationHandler) DeleteUserDesign(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	designID := c.Params("design_id")
	if _, err := uuid.Parse(designID); err != nil {
		return utils.NotFound(c, "Design not found")
	}

	_, _, err := h.DB.From("designs").
		Delete("", "").
		Eq("id", designID).
		Eq("user_id", user.ID.String()).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error deleting design %s: %v", designID, err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, "", "design delete success!!")
}

// AddUserTemplate godoc
// @Summary Instantiate a template as a new design for the user
// @Tags design
// @Produce json
// @Security BearerAuth
// @Param template_id path string true "The template ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/add-user-template/{template_id} [get]
func (h *ApplicationHandler) AddUserTemplate(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	templateID := c.Params("template_id")
	if _, err := uuid.Parse(templateID); err != nil {
		return utils.NotFound(c, "Template not found")
	}

	body, _, err := h.DB.From("templates").
		Select("*", "", false).
		Eq("id", templateID).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching template %s: %v", templateID, err)
		return utils.ServerError(c, "Something went wrong")
	}

	var templates []models.Template
	if err := json.Unmarshal(body, &templates); err != nil {
		h.Logger.Errorf("Error unmarshalling template %s: %v", templateID, err)
		return utils.ServerError(c, "Something went wrong")
	}
	if len(templates) == 0 {
		return utils.NotFound(c, "Template not found")
	}

	template := templates[0]
	now := time.Now()
	designToInsert := map[string]interface{}{
		"user_id":    user.ID,
		"components": template.Components,
		"image_url":  template.ImageURL,
		"created_at": now,
		"updated_at": now,
	}

	body, _, err = h.DB.From("designs").
		Insert(designToInsert, false, "", "representation", "").
		Execute()
	if err != nil {
		h.Logger.Errorf("Error creating design from template %s: %v", templateID, err)
		return utils.ServerError(c, "Something went wrong")
	}

	var created []models.Design
	if err := json.Unmarshal(body, &created); err != nil || len(created) == 0 {
		h.Logger.Errorf("Error unmarshalling design from template %s: %v", templateID, err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, created[0], "Added user template successfully!!")
}

// findUserDesign loads a single design scoped to its owner. A design id
// belonging to another user behaves exactly like a missing one.
func (h *ApplicationHandler) findUserDesign(designID string, userID uuid.UUID) (*models.Design, error) {
	body, _, err := h.DB.From("designs").
		Select("*", "", false).
		Eq("id", designID).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return nil, err
	}

	var designs []models.Design
	if err := json.Unmarshal(body, &designs); err != nil {
		return nil, err
	}
	if len(designs) == 0 {
		return nil, nil
	}
	return &designs[0], nil
}
