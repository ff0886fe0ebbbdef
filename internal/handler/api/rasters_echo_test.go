package api

import (
	"net/http/httptest"
	"testing"

	"SomnoScan/internal/domain/models"
	xhttp "SomnoScan/pkg/http"

	"github.com/labstack/echo/v4"
)

func bindRasterRequest(t *testing.T, query string) *models.RasterRequest {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/api/recordings/n1/raster?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())

	r := &models.RasterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, r); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	return r
}

func TestRasterRequestDefaults(t *testing.T) {
	r := bindRasterRequest(t, "signal=EEG")
	if r.Window != 7 || r.Gray != 32 {
		t.Fatalf("unexpected defaults window=%d gray=%d", r.Window, r.Gray)
	}
	if *r.PLow != 10 || *r.PHigh != 90 {
		t.Fatalf("unexpected percentile defaults [%g, %g]", *r.PLow, *r.PHigh)
	}
}

func TestRasterRequestExplicitZeroPercentile(t *testing.T) {
	// plow=0 means "clip nothing below"; it must not be mistaken for an
	// omitted field and replaced with the default.
	r := bindRasterRequest(t, "signal=EEG&plow=0&phigh=90")
	if *r.PLow != 0 {
		t.Fatalf("explicit plow=0 was rewritten to %g", *r.PLow)
	}
	if *r.PHigh != 90 {
		t.Fatalf("unexpected phigh %g", *r.PHigh)
	}
}

func TestRasterRequestRejectsOutOfRange(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/?signal=EEG&plow=120", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	r := &models.RasterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, r); verr == nil {
		t.Fatalf("expected validation error for plow=120")
	}
}
