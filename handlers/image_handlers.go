package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"canvaclone/api/middleware"
	"canvaclone/api/models"
	"canvaclone/api/utils"
)

// AddUserImage godoc
// @Summary Upload an image into the user's library
// @Tags image
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file to upload"
// @Success 201 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/add-user-image [post]
func (h *ApplicationHandler) AddUserImage(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.Logger.Errorf("Error reading image from form: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	imageURL, err := h.uploadFormImage(file)
	if err != nil {
		h.Logger.Errorf("Error uploading user image: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	now := time.Now()
	imageToInsert := map[string]interface{}{
		"user_id":    user.ID,
		"image_url":  imageURL,
		"created_at": now,
		"updated_at": now,
	}

	body, _, err := h.DB.From("user_images").
		Insert(imageToInsert, false, "", "representation", "").
		Execute()
	if err != nil {
		h.Logger.Errorf("Error creating user image record: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	var created []models.UserImage
	if err := json.Unmarshal(body, &created); err != nil || len(created) == 0 {
		h.Logger.Errorf("Error unmarshalling created user image: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Created(c, created[0], "Added user image successfully!!")
}

// GetUserImages godoc
// @Summary Fetch the authenticated user's image library
// @Tags image
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/get-user-image [get]
func (h *ApplicationHandler) GetUserImages(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	body, _, err := h.DB.From("user_images").
		Select("*", "", false).
		Eq("user_id", user.ID.String()).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching images for user %s: %v", user.ID, err)
		return utils.ServerError(c, "Something went wrong")
	}

	images := []models.UserImage{}
	if err := json.Unmarshal(body, &images); err != nil {
		h.Logger.Errorf("Error unmarshalling user images: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, images, "Fetched user images successfully!!")
}

// GetDesignImages godoc
// @Summary Fetch the global catalog of starter design images
// @Tags image
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/design-images [get]
func (h *ApplicationHandler) GetDesignImages(c *fiber.Ctx) error {
	return h.listStaticImages(c, "design_images", "Fetched design images successfully!!")
}

// GetBackgroundImages godoc
// @Summary Fetch the global catalog of background images
// @Tags image
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Envelope
// @Failure 500 {object} utils.Envelope
// @Router /design/background-images [get]
func (h *ApplicationHandler) GetBackgroundImages(c *fiber.Ctx) error {
	return h.listStaticImages(c, "background_images", "Fetched background images successfully!!")
}

// listStaticImages serves the two read-only catalogs, which differ only in
// their backing table.
func (h *ApplicationHandler) listStaticImages(c *fiber.Ctx, table, message string) error {
	body, _, err := h.DB.From(table).
		Select("*", "", false).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching %s: %v", table, err)
		return utils.ServerError(c, "Something went wrong")
	}

	images := []models.StaticImage{}
	if err := json.Unmarshal(body, &images); err != nil {
		h.Logger.Errorf("Error unmarshalling %s: %v", table, err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, images, message)
}
