package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/az-solve/shop-support/internal/api/dto"
	"github.com/az-solve/shop-support/internal/service"
	apperrors "github.com/az-solve/shop-support/pkg/util"
)

// TicketsHandler manages the support ticket endpoints.
type TicketsHandler struct {
	service  *service.TicketService
	validate *validator.Validate
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{
		service:  ticketService,
		validate: validator.New(),
	}
}

// Submit POST /api/supportticket/submit.
func (h *TicketsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(dto.ServiceResult{
			Success: false,
			Message: "Invalid ticket data.",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(dto.ServiceResult{
			Success: false,
			Message: validationMessage(err),
		})
	}

	result := h.service.Submit(c.UserContext(), service.SubmitTicketInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Message:       req.Message,
	})

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(dto.ServiceResult{
		Success: result.Success,
		Message: result.Message,
	})
}

// ListAll GET /api/supportticket/all (admin only).
func (h *TicketsHandler) ListAll(c *fiber.Ctx) error {
	tickets, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	views := make([]dto.TicketView, 0, len(tickets))
	for i := range tickets {
		views = append(views, dto.NewTicketView(&tickets[i]))
	}
	return c.JSON(views)
}

// GetByID GET /api/supportticket/:id (admin only).
func (h *TicketsHandler) GetByID(c *fiber.Ctx) error {
	ticket, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	if ticket == nil {
		return apperrors.NewNotFound("support ticket", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(dto.NewTicketView(ticket))
}

// validationMessage maps the first failed rule to the storefront's form wording.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid ticket data."
	}
	fe := verrs[0]
	switch fe.Field() {
	case "CustomerName":
		if fe.Tag() == "required" {
			return "Name is required."
		}
		return "Name cannot exceed 100 characters."
	case "CustomerEmail":
		if fe.Tag() == "required" {
			return "Email is required."
		}
		return "Invalid email address."
	case "Message":
		if fe.Tag() == "required" {
			return "Message is required."
		}
		return "Message must be between 10 and 2000 characters."
	default:
		return "Invalid ticket data."
	}
}
