package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/argodnc/office-rental/internal/lock"
	"github.com/argodnc/office-rental/internal/model"
	"github.com/argodnc/office-rental/internal/repository"
	"github.com/argodnc/office-rental/internal/service"
	"github.com/argodnc/office-rental/internal/utils"
)

const dateLayout = "2006-01-02"

// ReservationHandler exposes the visitor-facing reservation endpoints:
// listing, fetching, booking and canceling. Route-level scope checks
// (reservation.show / reservation.create / reservation.cancel) happen in
// middleware; handlers only need the authenticated user id.
type ReservationHandler struct {
	Svc          *service.ReservationService
	Reservations *repository.ReservationRepo
	Box          *utils.SecretBox
}

// NewReservationHandler constructs the handler. All dependencies must be
// non-nil.
func NewReservationHandler(svc *service.ReservationService, reservations *repository.ReservationRepo, box *utils.SecretBox) *ReservationHandler {
	if svc == nil || reservations == nil || box == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc, Reservations: reservations, Box: box}
}

// reservationResp shapes a single reservation for JSON, including the
// wifi password, which is only ever returned to the reservation's owner.
type reservationResp struct {
	ID           uint64 `json:"id"`
	UserID       uint64 `json:"user_id"`
	OfficeID     uint64 `json:"office_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
	Price        int64  `json:"price"`
	WifiPassword string `json:"wifi_password,omitempty"`
}

func shapeReservation(res *model.Reservation, wifi string) reservationResp {
	return reservationResp{
		ID:           res.ID,
		UserID:       res.UserID,
		OfficeID:     res.OfficeID,
		StartDate:    res.StartDate.Format(dateLayout),
		EndDate:      res.EndDate.Format(dateLayout),
		Status:       res.Status,
		Price:        res.Price,
		WifiPassword: wifi,
	}
}

// parseListFilter reads the shared listing query parameters. from_date
// and to_date must be supplied together, with to_date after from_date,
// matching the window filter the host listing uses as well.
func parseListFilter(c echo.Context) (repository.ListFilter, error) {
	var f repository.ListFilter
	if v := c.QueryParam("office_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return f, errors.New("invalid office_id")
		}
		f.OfficeID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		if v != model.StatusActive && v != model.StatusCanceled {
			return f, errors.New("invalid status")
		}
		f.Status = &v
	}
	fromStr, toStr := c.QueryParam("from_date"), c.QueryParam("to_date")
	if (fromStr == "") != (toStr == "") {
		return f, errors.New("from_date and to_date must be supplied together")
	}
	if fromStr != "" {
		from, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return f, errors.New("invalid from_date")
		}
		to, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return f, errors.New("invalid to_date")
		}
		if !to.After(from) {
			return f, errors.New("to_date must be after from_date")
		}
		f.From, f.To = &from, &to
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.PerPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	return f, nil
}

// List handles GET /v1/reservations. It returns the visitor's own
// reservations, newest first, with the office relation loaded.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, err := parseListFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	items, err := h.Reservations.ListByUser(c.Request().Context(), userID, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/reservations/:id. Only the owning visitor can see
// a reservation; the stored wifi password is unsealed for them here.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), resID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	if res.UserID != userID {
		// Hide existence from non-owners.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	wifi, err := h.Box.Open(res.WifiPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": shapeReservation(res, wifi)})
}

type createReservationReq struct {
	OfficeID  uint64 `json:"office_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Create handles POST /v1/reservations. The request supplies an office
// and a calendar date range; the booking engine does the rest. Responds
// 201 with the reservation (including the one-time plaintext wifi
// password), 409 when the range is taken, 422 on precondition failures
// and 503 when the per-office lock could not be acquired in time.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.OfficeID == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "office_id is required"})
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}

	res, err := h.Svc.Create(c.Request().Context(), service.CreateInput{
		UserID:    userID,
		OfficeID:  req.OfficeID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDates),
			errors.Is(err, service.ErrOwnOffice),
			errors.Is(err, service.ErrOfficeNotBookable):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrOfficeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "office not found"})
		case errors.Is(err, service.ErrUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, lock.ErrNotObtained):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "office is busy with another booking, try again"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
		}
	}
	// res.WifiPassword holds the plaintext secret exactly once, here.
	return c.JSON(http.StatusCreated, echo.Map{"item": shapeReservation(res, res.WifiPassword)})
}

// Cancel handles DELETE /v1/reservations/:id. Ownership and state
// failures share one message; only the status code distinguishes them.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Svc.Cancel(c.Request().Context(), resID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": service.ErrCannotCancel.Error()})
		case errors.Is(err, service.ErrCannotCancel):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": service.ErrCannotCancel.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"item": shapeReservation(res, "")})
}
