package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/pets/:pet_id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/pets/:pet_id", "200"))
	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/pets/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/pets/:pet_id", "200"))
	assert.Equal(t, before+2, after)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "patinhas_http_requests_total")
}

func TestAdoptionCounters(t *testing.T) {
	before := testutil.ToFloat64(adoptionsCreated)
	AdoptionCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(adoptionsCreated))

	AdoptionStatusChanged("approved")
	assert.GreaterOrEqual(t, testutil.ToFloat64(adoptionStatusChanges.WithLabelValues("approved")), 1.0)
}
