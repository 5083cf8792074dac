package records

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

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

// RegisterRoutes wires patient and incident CRUD. Mutations are admin
// only; single-record reads also admit a patient reading its own data.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.GET("/patients", h.ListPatients)
	admin.POST("/patients", h.CreatePatient)
	admin.PUT("/patients/:id", h.UpdatePatient)
	admin.DELETE("/patients/:id", h.DeletePatient)
	admin.POST("/incidents", h.CreateIncident)
	admin.PUT("/incidents/:id", h.UpdateIncident)
	admin.DELETE("/incidents/:id", h.DeleteIncident)
	admin.POST("/incidents/:id/files", h.AttachFile)
	admin.DELETE("/incidents/:id/files/:fileId", h.RemoveFile)

	// self-scoped reads
	api.GET("/patients/:id", h.GetPatient)
	api.GET("/patients/:id/incidents", h.GetPatientIncidents)
	api.GET("/incidents/:id", h.GetIncident)
}

// ownPatient reports whether the caller may read the given patient id.
func ownPatient(c echo.Context, patientID string) error {
	id, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	if id.IsPatient() && id.PatientID != patientID {
		return echo.NewHTTPError(http.StatusForbidden, "access restricted to own records")
	}
	return nil
}

func validationHTTPError(err error) error {
	if ve, ok := AsValidationError(err); ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ve.Fields)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// -- Patients --

func (h *Handler) ListPatients(c echo.Context) error {
	list := h.svc.ListPatients(c.Request().Context())
	pg := pagination.FromContext(c)
	start, end := pg.Slice(len(list))
	return c.JSON(http.StatusOK, pagination.NewResponse(list[start:end], len(list), pg.Limit, pg.Offset))
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddPatient(c.Request().Context(), &p); err != nil {
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id := c.Param("id")
	if err := ownPatient(c, id); err != nil {
		return err
	}
	p, found := h.svc.GetPatientByID(c.Request().Context(), id)
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var patch PatientPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	found, err := h.svc.UpdatePatient(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return validationHTTPError(err)
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	p, _ := h.svc.GetPatientByID(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	found, err := h.svc.DeletePatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetPatientIncidents(c echo.Context) error {
	id := c.Param("id")
	if err := ownPatient(c, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.GetPatientIncidents(c.Request().Context(), id))
}

// -- Incidents --

func (h *Handler) CreateIncident(c echo.Context) error {
	var in Incident
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddIncident(c.Request().Context(), &in); err != nil {
		return validationHTTPError(err)
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *Handler) GetIncident(c echo.Context) error {
	in, found := h.svc.GetIncidentByID(c.Request().Context(), c.Param("id"))
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "incident not found")
	}
	if err := ownPatient(c, in.PatientID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, in)
}

func (h *Handler) UpdateIncident(c echo.Context) error {
	var patch IncidentPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	found, err := h.svc.UpdateIncident(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return validationHTTPError(err)
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "incident not found")
	}
	in, _ := h.svc.GetIncidentByID(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, in)
}

func (h *Handler) DeleteIncident(c echo.Context) error {
	found, err := h.svc.DeleteIncident(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "incident not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Files --

type attachRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"` // base64 payload
}

type attachResponse struct {
	FileAttachment
	SizeLabel string `json:"sizeLabel"`
}

func (h *Handler) AttachFile(c echo.Context) error {
	var req attachRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "file name required")
	}
	payload, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "data must be base64")
	}

	f := EncodeAttachment(h.clock, req.Name, req.Type, payload)
	found, err := h.svc.AttachFile(c.Request().Context(), c.Param("id"), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "attach failed")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "incident not found")
	}
	return c.JSON(http.StatusCreated, attachResponse{FileAttachment: f, SizeLabel: FormatFileSize(f.Size)})
}

func (h *Handler) RemoveFile(c echo.Context) error {
	found, err := h.svc.RemoveFile(c.Request().Context(), c.Param("id"), c.Param("fileId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "remove failed")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "incident or file not found")
	}
	return c.NoContent(http.StatusNoContent)
}
