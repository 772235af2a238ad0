package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/router"
	"github.com/yeremiapane/service-booking/services"
	"github.com/yeremiapane/service-booking/utils"
)

type serviceView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

func TestListServicesReadThrough(t *testing.T) {
	app := newTestApp(t)
	for _, c := range models.ServiceCategories()[:3] {
		app.seedService(t, c+" Service", c)
	}

	w := app.do(t, http.MethodGet, "/api/v1/services?page=1&per_page=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	miss := decode(t, w)
	assert.True(t, miss.Success)
	assert.Equal(t, "Services retrieved from database.", miss.Message)

	var page utils.Page[serviceView]
	require.NoError(t, json.Unmarshal(miss.Data, &page))
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Plumbing Service", page.Data[0].Name)
	assert.Equal(t, 75.5, page.Data[0].Price)
	assert.Nil(t, page.PrevPageURL)
	require.NotNil(t, page.NextPageURL)
	assert.Equal(t, appURL+"/api/v1/services?page=2&per_page=2", *page.NextPageURL)

	w = app.do(t, http.MethodGet, "/api/v1/services?page=1&per_page=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	hit := decode(t, w)
	assert.Equal(t, "Services retrieved from cache.", hit.Message)
	assert.JSONEq(t, string(miss.Data), string(hit.Data))

	// field internal tidak ikut terkirim
	assert.NotContains(t, string(hit.Data), "created_at")
	assert.NotContains(t, string(hit.Data), "deleted_at")
}

func TestListServicesDefaultsPagination(t *testing.T) {
	app := newTestApp(t)
	app.seedService(t, "Tutor", models.CategoryTutoring)

	w := app.do(t, http.MethodGet, "/api/v1/services", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var page utils.Page[serviceView]
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 10, page.PerPage)
	assert.Nil(t, page.NextPageURL)
}

func TestListServicesRejectsInvalidPageWithoutQuerying(t *testing.T) {
	app := newTestApp(t)
	queries := countQueries(t, app.db)

	for _, q := range []string{"per_page=0", "page=0", "page=-3", "per_page=abc"} {
		w := app.do(t, http.MethodGet, "/api/v1/services?"+q, nil, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, q)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Errors)
	}
	assert.Zero(t, queries())
	assert.Zero(t, app.store.Len())
}

func TestCreateBooking(t *testing.T) {
	app := newTestApp(t)
	svc := app.seedService(t, "AC Repair Service", models.CategoryACRepair)
	schedule := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)

	w := app.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"service_id":    svc.ID,
		"name":          "John Doe",
		"phone":         "01712345678",
		"schedule_date": schedule.Format(models.DateTimeLayout),
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Booking created successfully.", env.Message)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, svc.ID, data["service_id"])
	assert.Equal(t, "John Doe", data["name"])
	assert.Equal(t, "01712345678", data["phone_number"])
	assert.Equal(t, schedule.Format(models.DateTimeLayout), data["booking_date"])
	assert.Len(t, data["booking_id"], 36)

	msgs := app.notifier.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, data["booking_id"], msgs[0].BookingID)
	assert.Equal(t, "AC Repair Service", msgs[0].ServiceName)
	assert.Equal(t, "John Doe", msgs[0].CustomerName)
}

func TestCreateBookingValidation(t *testing.T) {
	app := newTestApp(t)
	svc := app.seedService(t, "Cleaning Service", models.CategoryCleaning)

	cases := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"past schedule", map[string]string{"service_id": svc.ID, "name": "A", "phone": "1", "schedule_date": time.Now().Add(-24 * time.Hour).Format(models.DateTimeLayout)}, "schedule_date"},
		{"unparseable schedule", map[string]string{"service_id": svc.ID, "name": "A", "phone": "1", "schedule_date": "tomorrow"}, "schedule_date"},
		{"missing name", map[string]string{"service_id": svc.ID, "phone": "1", "schedule_date": time.Now().Add(time.Hour).Format(time.RFC3339)}, "name"},
		{"long phone", map[string]string{"service_id": svc.ID, "name": "A", "phone": strings.Repeat("1", 16), "schedule_date": time.Now().Add(time.Hour).Format(time.RFC3339)}, "phone"},
		{"long name", map[string]string{"service_id": svc.ID, "name": strings.Repeat("n", 256), "phone": "1", "schedule_date": time.Now().Add(time.Hour).Format(time.RFC3339)}, "name"},
		{"blank name", map[string]string{"service_id": svc.ID, "name": "   ", "phone": "01712345678", "schedule_date": time.Now().Add(time.Hour).Format(time.RFC3339)}, "name"},
		{"blank phone", map[string]string{"service_id": svc.ID, "name": "John Doe", "phone": "  ", "schedule_date": time.Now().Add(time.Hour).Format(time.RFC3339)}, "phone"},
		{"missing service", map[string]string{"name": "A", "phone": "1", "schedule_date": time.Now().Add(time.Hour).Format(time.RFC3339)}, "service_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/api/v1/bookings", tc.body, "")
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Contains(t, env.Errors, tc.field)
		})
	}

	var count int64
	app.db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, app.notifier.Messages())
}

func TestCreateBookingTrimsInput(t *testing.T) {
	app := newTestApp(t)
	svc := app.seedService(t, "Cleaning Service", models.CategoryCleaning)

	w := app.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"service_id":    svc.ID,
		"name":          "  John Doe  ",
		"phone":         " 01712345678",
		"schedule_date": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, "John Doe", data["name"])
	assert.Equal(t, "01712345678", data["phone_number"])
}

func TestListServicesLinksFollowRequestHost(t *testing.T) {
	app := newTestApp(t)
	app.router = router.SetupRouter(router.Dependencies{
		DB:       app.db,
		Cache:    app.store,
		CacheTTL: time.Minute,
		Notifier: app.notifier,
		Mailbox:  "operator@example.com",
		Tokens:   app.tokens,
	})
	app.seedService(t, "Plumbing Service", models.CategoryPlumbing)
	app.seedService(t, "Cleaning Service", models.CategoryCleaning)

	get := func(host string) (string, utils.Page[serviceView]) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/services?page=1&per_page=1", nil)
		req.Host = host
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var page utils.Page[serviceView]
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
		return w.Header().Get("X-Cache"), page
	}

	src, first := get("evil.example")
	assert.Equal(t, "MISS", src)
	assert.Equal(t, "http://evil.example/api/v1/services?page=1&per_page=1", first.FirstPageURL)

	src, second := get("api.real.example")
	assert.Equal(t, "HIT", src)
	assert.Equal(t, "http://api.real.example/api/v1/services?page=1&per_page=1", second.FirstPageURL)
	assert.Equal(t, "http://api.real.example/api/v1/services?page=2&per_page=1", second.LastPageURL)
	require.NotNil(t, second.NextPageURL)
	assert.Equal(t, "http://api.real.example/api/v1/services?page=2&per_page=1", *second.NextPageURL)
	assert.Equal(t, first.Data, second.Data)

	// nilai di cache tidak menyimpan host siapa pun
	raw, ok, err := app.store.Get(context.Background(), services.ServicesCacheKey(1, 1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, string(raw), "example")
}

func TestListServicesRejectsOversizedPage(t *testing.T) {
	app := newTestApp(t)
	app.seedService(t, "Plumbing Service", models.CategoryPlumbing)
	queries := countQueries(t, app.db)

	for _, q := range []string{"page=9223372036854775807&per_page=2", "per_page=101"} {
		w := app.do(t, http.MethodGet, "/api/v1/services?"+q, nil, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, q)
	}
	assert.Zero(t, queries())
}

func TestCreateBookingUnknownService(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"service_id":    "00000000-0000-0000-0000-000000000000",
		"name":          "A",
		"phone":         "1",
		"schedule_date": time.Now().Add(time.Hour).Format(time.RFC3339),
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Service not found.", decode(t, w).Message)
}

func TestCreateBookingMalformedJSON(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodPost, "/api/v1/bookings", `{"service_id":`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestShowBookingStatus(t *testing.T) {
	app := newTestApp(t)
	svc := app.seedService(t, "Pest Control Service", models.CategoryPestControl)
	booking := models.Booking{
		ServiceID:        svc.ID,
		Name:             "Omar",
		PhoneNumber:      "01700000000",
		ScheduleDateTime: time.Date(2031, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, app.db.Create(&booking).Error)

	w := app.do(t, http.MethodGet, "/api/v1/bookings/"+booking.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Booking retrieved from db.", env.Message)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var view struct {
		BookingID        string       `json:"booking_id"`
		Status           string       `json:"status"`
		Service          *serviceView `json:"service"`
		ScheduleDateTime string       `json:"schedule_date_time"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, booking.ID, view.BookingID)
	assert.Equal(t, "pending", view.Status)
	require.NotNil(t, view.Service)
	assert.Equal(t, "Pest Control Service", view.Service.Name)
	assert.Equal(t, "2031-01-02 10:00:00", view.ScheduleDateTime)

	w = app.do(t, http.MethodGet, "/api/v1/bookings/"+booking.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cached := decode(t, w)
	assert.Equal(t, "Booking retrieved from cache.", cached.Message)
	assert.JSONEq(t, string(env.Data), string(cached.Data))
}

func TestShowBookingNotFound(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/bookings/never-created", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Booking not found."}`, w.Body.String())
	assert.Zero(t, app.store.Len())
}

func TestPingAndNoRoute(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/ping", nil, "").Code)

	w := app.do(t, http.MethodGet, "/api/v1/nothing-here", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success)
}
