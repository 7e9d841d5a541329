package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/argodnc/office-rental/internal/repository"
)

// HostReservationHandler exposes the host-facing reservation listing:
// every reservation made on any office the caller owns.
type HostReservationHandler struct {
	Reservations *repository.ReservationRepo
}

func NewHostReservationHandler(reservations *repository.ReservationRepo) *HostReservationHandler {
	return &HostReservationHandler{Reservations: reservations}
}

// List handles GET /v1/host/reservations. It accepts the same filters
// as the visitor listing plus user_id to narrow to one visitor.
func (h *HostReservationHandler) List(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, err := parseListFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	if v := c.QueryParam("user_id"); v != "" {
		id, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil || id == 0 {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid user_id"})
		}
		f.UserID = &id
	}
	items, err := h.Reservations.ListForHost(c.Request().Context(), hostID, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
