package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"canvaclone/api/internal/mailer"
	"canvaclone/api/internal/storage"
	"canvaclone/api/internal/token"
)

// Listings are newest-first throughout the API.
var descendingOrder = postgrest.OrderOpts{Ascending: false}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Logger   *logrus.Logger
	DB       *supa.Client
	Storage  *storage.Uploader
	Tokens   *token.Service
	Mailer   *mailer.Mailer
	validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(log *logrus.Logger, db *supa.Client, uploader *storage.Uploader, tokens *token.Service, mail *mailer.Mailer) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:   log,
		DB:       db,
		Storage:  uploader,
		Tokens:   tokens,
		Mailer:   mail,
		validate: validator.New(),
	}
}
