package records

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/sleep", authMiddleware, func(c *fiber.Ctx) error {
		var req SleepRecord
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		saved, err := svc.SaveSleep(c.Context(), req)
		if err != nil {
			return recordError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	r.Post("/recovery", authMiddleware, func(c *fiber.Ctx) error {
		var req RecoveryRecord
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		saved, err := svc.SaveRecovery(c.Context(), req)
		if err != nil {
			return recordError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	r.Post("/cycles", authMiddleware, func(c *fiber.Ctx) error {
		var req CycleRecord
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		saved, err := svc.SaveCycle(c.Context(), req)
		if err != nil {
			return recordError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	r.Post("/workouts", authMiddleware, func(c *fiber.Ctx) error {
		var req WorkoutRecord
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		saved, err := svc.SaveWorkout(c.Context(), req)
		if err != nil {
			return recordError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	r.Post("/physiological", authMiddleware, func(c *fiber.Ctx) error {
		var req PhysiologicalSample
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		saved, err := svc.SavePhysiological(c.Context(), req)
		if err != nil {
			return recordError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})
}

func recordError(err error) error {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return fiber.NewError(fiber.StatusBadRequest, vErr.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
