package api

import (
	"errors"
	"time"

	models "SomnoScan/internal/domain/models"
	mid "SomnoScan/internal/middleware"
	"SomnoScan/internal/repository"
	"SomnoScan/internal/service/ratelimit"
	"SomnoScan/internal/services/raster"
	"SomnoScan/internal/usecase"
	xhttp "SomnoScan/pkg/http"
	xlogger "SomnoScan/pkg/logger"
	"SomnoScan/pkg/util"

	domrepo "SomnoScan/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// RastersEchoHandler exposes the recording library and raster views over HTTP.
type RastersEchoHandler struct {
	logger   *xlogger.Logger
	svc      *usecase.RasterService
	registry domrepo.Registry
	buffers  domrepo.LiveBuffers
	catalog  domrepo.Catalog
	limiter  *ratelimit.Limiter
}

func NewRastersEchoHandler(logger *xlogger.Logger, svc *usecase.RasterService, registry domrepo.Registry, buffers domrepo.LiveBuffers, catalog domrepo.Catalog) *RastersEchoHandler {
	return &RastersEchoHandler{logger: logger, svc: svc, registry: registry, buffers: buffers, catalog: catalog, limiter: ratelimit.New()}
}

func (h *RastersEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/durations", h.Durations)
	g.GET("/recordings", h.Recordings)
	g.GET("/recordings/:id", h.Recording)

	// raster builds are the expensive path; throttle per client
	rl := mid.RateLimit(h.limiter, 20, 10)
	g.GET("/recordings/:id/raster", h.Raster, rl)
	g.GET("/recordings/:id/rasters", h.Rasters, rl)
	g.GET("/live/:device/signals", h.LiveSignals)
	g.GET("/live/:device/raster", h.LiveRaster, rl)
	g.GET("/live/:device/history", h.LiveHistory)
}

// durationRow pairs a table entry with its 1-based selector index.
type durationRow struct {
	Index int `json:"index"`
	models.DurationEntry
}

func (h *RastersEchoHandler) Durations(c echo.Context) error {
	entries := raster.Durations()
	rows := make([]durationRow, len(entries))
	for i, e := range entries {
		rows[i] = durationRow{Index: i + 1, DurationEntry: e}
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *RastersEchoHandler) Recordings(c echo.Context) error {
	recs := h.registry.List()
	rows := make([]models.RecordingSummary, len(recs))
	for i, r := range recs {
		rows[i] = r.Summary()
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *RastersEchoHandler) Recording(c echo.Context) error {
	rec, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return xhttp.AppErrorResponse(c, h.mapError(err))
	}
	return xhttp.SuccessResponse(c, rec.Summary())
}

func (h *RastersEchoHandler) Raster(c echo.Context) error {
	req := &models.RasterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	bundle, err := h.svc.BuildView(c.Request().Context(), usecase.RasterViewParams{
		RecordingID: c.Param("id"),
		Signal:      req.Signal,
		WindowIndex: req.Window,
		PLow:        *req.PLow,
		PHigh:       *req.PHigh,
		GrayLevels:  req.Gray,
	})
	if err != nil {
		h.logger.Error("raster usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, bundle)
}

func (h *RastersEchoHandler) Rasters(c echo.Context) error {
	req := &models.LayoutRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	layout, err := h.svc.BuildLayout(c.Request().Context(), usecase.RasterViewParams{
		RecordingID: c.Param("id"),
		WindowIndex: req.Window,
		PLow:        *req.PLow,
		PHigh:       *req.PHigh,
		GrayLevels:  req.Gray,
	})
	if err != nil {
		h.logger.Error("layout usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapError(err))
	}
	if req.Title != "" {
		layout.Title = req.Title
	}
	return xhttp.SuccessResponse(c, layout)
}

func (h *RastersEchoHandler) LiveSignals(c echo.Context) error {
	labels := h.buffers.Labels(c.Param("device"))
	return xhttp.ListResponse(c, labels, int64(len(labels)))
}

func (h *RastersEchoHandler) LiveRaster(c echo.Context) error {
	req := &models.LiveRasterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	bundle, err := h.svc.BuildLiveView(c.Request().Context(), c.Param("device"), usecase.RasterViewParams{
		Signal:      req.Signal,
		WindowIndex: req.Window,
		PLow:        *req.PLow,
		PHigh:       *req.PHigh,
		GrayLevels:  req.Gray,
	})
	if err != nil {
		h.logger.Error("live raster usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, h.mapError(err))
	}
	return xhttp.SuccessResponse(c, bundle)
}

// LiveHistory returns raw stored batches for a device signal, for replaying
// a stretch of the live feed after the rolling buffer moved on.
func (h *RastersEchoHandler) LiveHistory(c echo.Context) error {
	signal := c.QueryParam("signal")
	if signal == "" {
		return xhttp.BadRequestResponse(c, "signal is required")
	}

	now := time.Now()
	from := xhttp.ParseTimeDefault(c.QueryParam("from"), now.Add(-time.Hour))
	to := xhttp.ParseTimeDefault(c.QueryParam("to"), now)
	from, to = util.AlignRange(from, to)
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 1000)

	batches, err := h.catalog.Query(c.Request().Context(), c.Param("device"), signal, from, to, limit)
	if err != nil {
		h.logger.Error("history query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, batches, int64(len(batches)))
}

// mapError translates domain sentinels to HTTP-aware errors.
func (h *RastersEchoHandler) mapError(err error) error {
	switch {
	case errors.Is(err, repository.ErrRecordingNotFound),
		errors.Is(err, repository.ErrLabelNotFound):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.Is(err, raster.ErrIndexOutOfRange),
		errors.Is(err, raster.ErrInvalidRange),
		errors.Is(err, raster.ErrInvalidWindow),
		errors.Is(err, raster.ErrInvalidDurationEntry):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	default:
		return err
	}
}
