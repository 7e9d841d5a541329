package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argodnc/office-rental/internal/model"
)

func filterContext(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reservations?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParseListFilterAllParams(t *testing.T) {
	c := filterContext(t, "office_id=5&status=ACTIVE&from_date=2024-03-01&to_date=2024-03-10&page=2&per_page=10")

	f, err := parseListFilter(c)
	require.NoError(t, err)

	require.NotNil(t, f.OfficeID)
	assert.Equal(t, uint64(5), *f.OfficeID)
	require.NotNil(t, f.Status)
	assert.Equal(t, model.StatusActive, *f.Status)
	require.NotNil(t, f.From)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *f.To)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 10, f.PerPage)
}

func TestParseListFilterEmptyQuery(t *testing.T) {
	f, err := parseListFilter(filterContext(t, ""))
	require.NoError(t, err)
	assert.Nil(t, f.OfficeID)
	assert.Nil(t, f.Status)
	assert.Nil(t, f.From)
	assert.Nil(t, f.To)
}

func TestParseListFilterRejects(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"bad office id", "office_id=abc"},
		{"zero office id", "office_id=0"},
		{"unknown status", "status=PENDING"},
		{"from without to", "from_date=2024-03-01"},
		{"to without from", "to_date=2024-03-10"},
		{"malformed from", "from_date=01-03-2024&to_date=2024-03-10"},
		{"malformed to", "from_date=2024-03-01&to_date=tomorrow"},
		{"inverted window", "from_date=2024-03-10&to_date=2024-03-01"},
		{"equal window", "from_date=2024-03-01&to_date=2024-03-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseListFilter(filterContext(t, tc.query))
			assert.Error(t, err)
		})
	}
}

func TestShapeReservationFormatsDates(t *testing.T) {
	res := &model.Reservation{
		ID:        3,
		UserID:    1,
		OfficeID:  9,
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Status:    model.StatusActive,
		Price:     4000,
	}

	shaped := shapeReservation(res, "secret-wifi")
	assert.Equal(t, "2024-06-01", shaped.StartDate)
	assert.Equal(t, "2024-06-04", shaped.EndDate)
	assert.Equal(t, "secret-wifi", shaped.WifiPassword)

	// Omitted entirely for anyone but the owner.
	assert.Empty(t, shapeReservation(res, "").WifiPassword)
}

func TestNormalizeScopes(t *testing.T) {
	assert.Equal(t, []string{"reservation.show"}, normalizeScopes([]string{"reservation.show", "bogus.scope"}))
	assert.Equal(t, 3, len(normalizeScopes(nil)))
}
