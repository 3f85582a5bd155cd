package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindCreateEstate(t *testing.T, body string) (createEstateRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(
		http.MethodPost,
		"/dashboard/estates",
		strings.NewReader(body),
	)
	c.Request.Header.Set("Content-Type", "application/json")

	var req createEstateRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestCreateEstateAcceptsZeroPriceAndSpace(t *testing.T) {
	req, err := bindCreateEstate(t, `{
		"name": "empty lot",
		"address": "nowhere 1",
		"price_in_cents": 0,
		"space_in_meters": 0
	}`)
	if err != nil {
		t.Fatalf("zero price/space rejected at binding: %v", err)
	}
	if req.PriceInCents != 0 || req.SpaceInMeters != 0 {
		t.Fatalf("zero values mangled: price=%d space=%d", req.PriceInCents, req.SpaceInMeters)
	}
}

func TestCreateEstateStillRequiresNameAndAddress(t *testing.T) {
	if _, err := bindCreateEstate(t, `{"price_in_cents": 100, "space_in_meters": 50}`); err == nil {
		t.Fatal("expected binding error for missing name and address")
	}
}
