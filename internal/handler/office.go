package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/argodnc/office-rental/internal/model"
	"github.com/argodnc/office-rental/internal/repository"
)

// OfficeHandler exposes the public browse surface for office listings.
// Listing management lives in a separate back-office system; visitors
// only ever see approved, non-hidden offices.
type OfficeHandler struct {
	Offices *repository.OfficeRepo
}

func NewOfficeHandler(offices *repository.OfficeRepo) *OfficeHandler {
	return &OfficeHandler{Offices: offices}
}

type officeResp struct {
	ID              uint64 `json:"id"`
	UserID          uint64 `json:"user_id"`
	Title           string `json:"title"`
	Address         string `json:"address"`
	PricePerDay     int64  `json:"price_per_day"`
	MonthlyDiscount int64  `json:"monthly_discount"`
}

func shapeOffice(o model.Office) officeResp {
	return officeResp{
		ID:              o.ID,
		UserID:          o.UserID,
		Title:           o.Title,
		Address:         o.Address,
		PricePerDay:     o.PricePerDay,
		MonthlyDiscount: o.MonthlyDiscount,
	}
}

// List handles GET /v1/offices: approved, visible offices with
// page/per_page pagination.
func (h *OfficeHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	offices, err := h.Offices.ListApproved(c.Request().Context(), page, perPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load offices"})
	}
	items := make([]officeResp, 0, len(offices))
	for _, o := range offices {
		items = append(items, shapeOffice(o))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/offices/:id. Pending, rejected and hidden
// listings are indistinguishable from missing ones.
func (h *OfficeHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid office id"})
	}
	o, err := h.Offices.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOfficeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "office not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load office"})
	}
	if !o.Bookable() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "office not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": shapeOffice(*o)})
}
