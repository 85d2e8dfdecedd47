package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"canvaclone/api/middleware"
	"canvaclone/api/models"
	"canvaclone/api/utils"
)

// RegisterRequest defines the expected request body for registering a user.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the expected request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the payload returned by login and user-details: the
// public user fields plus a fresh session token.
type SessionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// RegisterUser godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account to create"
// @Success 201 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /user/register [post]
func (h *ApplicationHandler) RegisterUser(c *fiber.Ctx) error {
	payload := new(RegisterRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing register payload: %v", err)
		return utils.BadRequest(c, "Cannot parse request body", "Bad Request")
	}

	if err := h.validate.Struct(payload); err != nil {
		return utils.BadRequest(c, utils.FormatValidationErrors(err), "Validation failed")
	}

	email := strings.ToLower(payload.Email)

	body, _, err := h.DB.From("users").
		Select("id", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error checking for existing user: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	var existing []models.User
	if err := json.Unmarshal(body, &existing); err != nil {
		h.Logger.Errorf("Error unmarshalling existing-user check: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}
	if len(existing) > 0 {
		return utils.BadRequest(c, "User already exists", "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Logger.Errorf("Error hashing password: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	now := time.Now()
	userToInsert := map[string]interface{}{
		"name":       payload.Name,
		"email":      email,
		"password":   string(hash),
		"created_at": now,
		"updated_at": now,
	}

	body, _, err = h.DB.From("users").
		Insert(userToInsert, false, "", "representation", "").
		Execute()
	if err != nil {
		h.Logger.Errorf("Error creating user: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	var created []models.User
	if err := json.Unmarshal(body, &created); err != nil || len(created) == 0 {
		h.Logger.Errorf("Error unmarshalling created user: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	user := created[0]
	// The representation echoes every column; the hash never leaves the server.
	user.Password = ""

	if err := h.Mailer.SendWelcome(user.Email, user.Name); err != nil {
		h.Logger.WithField("email", user.Email).Warnf("Welcome mail failed: %v", err)
	}

	h.Logger.WithField("user_id", user.ID).Info("User registered")
	return utils.Created(c, user, "Account created successfully!!")
}

// LoginUser godoc
// @Summary Login a user
// @Tags user
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Router /user/login [post]
func (h *ApplicationHandler) LoginUser(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing login payload: %v", err)
		return utils.BadRequest(c, "Cannot parse request body", "Bad Request")
	}

	if payload.Email == "" || payload.Password == "" {
		return utils.BadRequest(c, "Email and password are required", "Bad Request")
	}

	email := strings.ToLower(payload.Email)

	// The one lookup that selects the password column, for the hash check.
	body, _, err := h.DB.From("users").
		Select("*", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching user for login: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		h.Logger.Errorf("Error unmarshalling user for login: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}
	if len(users) == 0 {
		return utils.Unauthorized(c, "User does not exist", "Not Authorized")
	}

	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid login credentials", "Not Authorized")
	}

	tokenString, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.Logger.Errorf("Error issuing token: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, SessionResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Token: tokenString,
	}, "Login successful!!")
}

// GetUserDetails godoc
// @Summary Fetch details of the logged-in user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /user/user-details [get]
func (h *ApplicationHandler) GetUserDetails(c *fiber.Ctx) error {
	authUser, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return utils.Unauthorized(c, "Not authenticated", "Not Authorized")
	}

	body, _, err := h.DB.From("users").
		Select(models.UserColumns, "", false).
		Eq("id", authUser.ID.String()).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching user details: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		h.Logger.Errorf("Error unmarshalling user details: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}
	if len(users) == 0 {
		return utils.NotFound(c, "User not found")
	}

	user := users[0]
	tokenString, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.Logger.Errorf("Error issuing token: %v", err)
		return utils.ServerError(c, "Something went wrong")
	}

	return utils.Ok(c, SessionResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Token: tokenString,
	}, "Fetched user successfully!!")
}
