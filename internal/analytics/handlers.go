package analytics

import (
	"errors"

	"backend-vitalhub/internal/records"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/compute", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
			Date   string `json:"date"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.UserID == "" {
			body.UserID, _ = c.Locals("user_id").(string)
		}
		if body.UserID == "" || body.Date == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id and date required")
		}

		summary, err := svc.ComputeForDay(c.Context(), body.UserID, body.Date)
		if err != nil {
			return summaryError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(summary)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}

		q := Query{
			StartDate:   c.Query("start_date"),
			EndDate:     c.Query("end_date"),
			Limit:       c.QueryInt("limit"),
			OldestFirst: c.Query("order") == "asc",
		}
		summaries, err := svc.Summaries(c.Context(), userID, q)
		if err != nil {
			return summaryError(err)
		}
		return c.JSON(summaries)
	})
}

func summaryError(err error) error {
	if errors.Is(err, ErrStoreNotConfigured) {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	var vErr *records.ValidationError
	if errors.As(err, &vErr) {
		return fiber.NewError(fiber.StatusBadRequest, vErr.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
