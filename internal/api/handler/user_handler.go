package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
)

// UserHandler serves the authenticated user surface: the caller's own
// profile and the admin-only account listing.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type profileResponse struct {
	domain.Summary
	WhatsApp string `json:"whatsapp,omitempty"`
	PlanID   string `json:"plan_id,omitempty"`
}

// Profile returns the calling user's own record, scoped by the session claim.
//
// @Summary      Own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Summary:  user.Summary(),
		WhatsApp: user.WhatsApp,
		PlanID:   user.PlanID,
	})
}

// ListUsers returns every account. Admin only.
//
// @Summary      List all accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Summary
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	summaries := make([]domain.Summary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return c.JSON(http.StatusOK, summaries)
}
