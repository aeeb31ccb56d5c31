package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPathIDInvalidParamStopsHandler(t *testing.T) {
	e := echo.New()
	reached := false
	e.GET("/sites/:site_id", func(c echo.Context) error {
		siteID, err := pathID(c, "site_id")
		if err != nil {
			return err
		}
		reached = true
		return c.JSON(http.StatusOK, echo.Map{"site_id": siteID})
	})

	for _, raw := range []string{"abc", "0", "me", "-1"} {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/sites/"+raw, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if reached {
			t.Errorf("param %q: handler ran past the parse failure", raw)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("param %q: status = %d, want 400", raw, rec.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("param %q: body %q is not a single JSON object: %v", raw, rec.Body.String(), err)
		} else if body["error"] != "invalid site_id" {
			t.Errorf("param %q: body = %v", raw, body)
		}
	}
}

func TestPathIDValid(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("site_id")
	c.SetParamValues("42")

	id, err := pathID(c, "site_id")
	if err != nil {
		t.Fatalf("pathID: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}

func TestActorMissingWrites401Once(t *testing.T) {
	e := echo.New()
	reached := false
	e.GET("/things", func(c echo.Context) error {
		if _, err := actor(c); err != nil {
			return err
		}
		reached = true
		return c.JSON(http.StatusOK, echo.Map{})
	})

	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if reached {
		t.Error("handler ran without an authenticated actor")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Errorf("body %q is not a single JSON object: %v", rec.Body.String(), err)
	}
}

func TestPublicCacheKeyShape(t *testing.T) {
	if got := publicCacheKey("sponsors", "42"); got != "public:sponsors:42" {
		t.Errorf("key = %q, want public:sponsors:42", got)
	}
}

func TestInvalidatePublicWithoutCache(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &Handler{}
	h.invalidatePublic(c, 42, "sponsors", "jobs")
}
