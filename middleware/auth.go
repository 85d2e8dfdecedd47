package middleware

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"canvaclone/api/internal/token"
	"canvaclone/api/models"
	"canvaclone/api/utils"
)

// UserLocalsKey is where the guard stashes the authenticated user record.
const UserLocalsKey = "user"

// RequireAuth builds the bearer-token guard used on every protected route.
// It resolves the Authorization header to a user record (password
// excluded) and attaches it to the request, or rejects with 401. The check
// runs on every call; no session state is kept server-side.
func RequireAuth(tokens *token.Service, db *supa.Client, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.Unauthorized(c, "No token provided", "Not Authorized")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return utils.Unauthorized(c, "Authorization header must be 'Bearer <token>'", "Not Authorized")
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			return utils.Unauthorized(c, "Invalid or expired token", "Not Authorized")
		}

		body, _, err := db.From("users").
			Select(models.UserColumns, "", false).
			Eq("id", userID.String()).
			Execute()
		if err != nil {
			log.WithField("user_id", userID).Errorf("Error loading user for auth: %v", err)
			return utils.ServerError(c, "Something went wrong")
		}

		var users []models.User
		if err := json.Unmarshal(body, &users); err != nil {
			log.Errorf("Error unmarshalling user for auth: %v", err)
			return utils.ServerError(c, "Something went wrong")
		}
		if len(users) == 0 {
			return utils.Unauthorized(c, "User not found", "Not Authorized")
		}

		c.Locals(UserLocalsKey, users[0])
		return c.Next()
	}
}

// AuthenticatedUser returns the user attached by RequireAuth. The second
// return is false when the route was not behind the guard.
func AuthenticatedUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(UserLocalsKey).(models.User)
	return user, ok
}
