package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arjunvn/shopstack/internal/docserv"
	"github.com/arjunvn/shopstack/internal/schema"
	"github.com/arjunvn/shopstack/internal/store"
)

// Resource serves the CRUD surface of one collection. Every entity endpoint
// is this same handler with a different collection name, schema and hook.
type Resource struct {
	svc        *docserv.Service
	collection string
	schema     *schema.Schema
	hook       docserv.Hook
}

func NewResource(svc *docserv.Service, collection string, sch *schema.Schema, hook docserv.Hook) *Resource {
	return &Resource{svc: svc, collection: collection, schema: sch, hook: hook}
}

// List supports limit, sortField, sortOrder and search query parameters.
func (r *Resource) List(c *fiber.Ctx) error {
	q := store.ListQuery{
		Limit:      c.QueryInt("limit"),
		SortField:  c.Query("sortField"),
		Descending: c.Query("sortOrder") == "desc",
		Search:     c.Query("search"),
	}

	docs, err := r.svc.List(c.Context(), r.collection, q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{r.collection: docs})
}

func (r *Resource) Create(c *fiber.Ctx) error {
	var body store.Document
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res := r.svc.Create(c.Context(), r.collection, body, r.schema, r.hook)
	if len(res.Errors) > 0 {
		return c.Status(res.Status).JSON(fiber.Map{"error": res.Errors})
	}
	return c.Status(res.Status).JSON(res)
}

func (r *Resource) Find(c *fiber.Ctx) error {
	res := r.svc.FindByID(c.Context(), r.collection, c.Params("id"))
	if res.Status == fiber.StatusOK {
		return c.JSON(res.Data)
	}
	return c.Status(res.Status).JSON(fiber.Map{"message": res.Message})
}

func (r *Resource) Update(c *fiber.Ctx) error {
	var body store.Document
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res := r.svc.UpdateByID(c.Context(), r.collection, c.Params("id"), body)
	return c.Status(res.Status).JSON(fiber.Map{"message": res.Message})
}

func (r *Resource) Delete(c *fiber.Ctx) error {
	res := r.svc.DeleteByID(c.Context(), r.collection, c.Params("id"))
	return c.Status(res.Status).JSON(fiber.Map{"message": res.Message})
}
