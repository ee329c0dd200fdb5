package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/arjunvn/shopstack/internal/docserv"
	"github.com/arjunvn/shopstack/internal/schema"
	"github.com/arjunvn/shopstack/internal/services"
	"github.com/arjunvn/shopstack/internal/store"
)

// Users extends the generic resource handler with the user-specific create
// path: email uniqueness pre-check, password hashing and fullName
// composition happen before the document reaches the pipeline.
type Users struct {
	*Resource
	store store.Store
	log   *zap.Logger
}

func NewUsers(svc *docserv.Service, st store.Store, log *zap.Logger) *Users {
	return &Users{
		Resource: NewResource(svc, "users", nil, nil),
		store:    st,
		log:      log,
	}
}

func (h *Users) Create(c *fiber.Ctx) error {
	var body store.Document
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, ferrs := schema.User.Validate(body)
	if len(ferrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ferrs})
	}

	email := cast.ToString(data["email"])
	email = normalize(email)
	_, err := h.store.FindOneByField(c.Context(), "users", "email", email)
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "User with this email already exists"})
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.log.Error("error checking user email", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create user"})
	}

	hash, err := services.HashPassword(cast.ToString(data["password"]))
	if err != nil {
		h.log.Error("error hashing password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create user"})
	}

	data["email"] = email
	data["password"] = hash
	data["fullName"] = fullName(cast.ToString(data["firstName"]), cast.ToString(data["lastName"]))
	data["createdAt"] = time.Now().UTC().Format(time.RFC3339)

	res := h.svc.Create(c.Context(), h.collection, data, nil, nil)
	return c.Status(res.Status).JSON(res)
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
