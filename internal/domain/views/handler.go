package views

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic/internal/domain/records"
	"github.com/dentalcare/clinic/internal/platform/auth"
	"github.com/dentalcare/clinic/internal/platform/clock"
	"github.com/dentalcare/clinic/pkg/pagination"
)

type Handler struct {
	svc   *Service
	clock clock.Clock
}

func NewHandler(svc *Service, clk clock.Clock) *Handler {
	return &Handler{svc: svc, clock: clk}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/incidents", h.ListIncidents)
	admin.GET("/calendar/month", h.Month)
	admin.GET("/calendar/week", h.Week)

	patient := api.Group("", auth.RequireRole(auth.RolePatient))
	patient.GET("/my/dashboard", h.MyDashboard)
	patient.GET("/my/incidents", h.MyIncidents)
}

func (h *Handler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Dashboard(c.Request().Context()))
}

func (h *Handler) MyDashboard(c echo.Context) error {
	id, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return c.JSON(http.StatusOK, h.svc.MyDashboard(c.Request().Context(), id.PatientID))
}

func (h *Handler) ListIncidents(c echo.Context) error {
	id, _ := auth.FromContext(c.Request().Context())

	q, err := queryFromRequest(c)
	if err != nil {
		return err
	}
	list := h.svc.Incidents(c.Request().Context(), id, q)

	pg := pagination.FromContext(c)
	start, end := pg.Slice(len(list))
	return c.JSON(http.StatusOK, pagination.NewResponse(list[start:end], len(list), pg.Limit, pg.Offset))
}

func (h *Handler) MyIncidents(c echo.Context) error {
	id, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	q, err := queryFromRequest(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.Incidents(c.Request().Context(), id, q))
}

func queryFromRequest(c echo.Context) (IncidentQuery, error) {
	var q IncidentQuery
	if s := c.QueryParam("status"); s != "" {
		if !records.ValidStatus(records.IncidentStatus(s)) {
			return q, echo.NewHTTPError(http.StatusBadRequest, "unknown status")
		}
		q.Status = records.IncidentStatus(s)
	}
	switch when := c.QueryParam("when"); when {
	case "", "upcoming", "past":
		q.When = when
	default:
		return q, echo.NewHTTPError(http.StatusBadRequest, "when must be upcoming or past")
	}
	switch s := c.QueryParam("sort"); s {
	case "", "asc", "desc":
		q.Sort = s
	default:
		return q, echo.NewHTTPError(http.StatusBadRequest, "sort must be asc or desc")
	}
	return q, nil
}

func (h *Handler) Month(c echo.Context) error {
	id, _ := auth.FromContext(c.Request().Context())

	now := h.clock.Now()
	year, month := now.Year(), int(now.Month())
	if v := c.QueryParam("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = n
	}
	if v := c.QueryParam("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
		}
		month = n
	}
	return c.JSON(http.StatusOK, h.svc.Month(c.Request().Context(), id, year, time.Month(month)))
}

func (h *Handler) Week(c echo.Context) error {
	id, _ := auth.FromContext(c.Request().Context())

	date := h.clock.Now()
	if v := c.QueryParam("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}
	return c.JSON(http.StatusOK, h.svc.CurrentWeek(c.Request().Context(), id, date))
}
