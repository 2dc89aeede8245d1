package api_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/api"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/auth"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking/bookingtest"
)

const testPIN = "4321"

func newTestRouter(t *testing.T) (*gin.Engine, *bookingtest.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := bookingtest.NewRepository()

	pinVerifier, err := auth.NewPinVerifier(testPIN, 4)
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		FrontendOrigin: "https://daycare.example.com",
		BookingService: booking.NewService(repo),
		PinVerifier:    pinVerifier,
		JWTManager:     auth.NewJWTManager("test-secret", 30*time.Minute),
	})
	return router, repo
}

func executeRequest(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := executeRequest(router, "POST", "/admin/login", gin.H{"pin": testPIN}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func bookingPayload(slots ...string) gin.H {
	return gin.H{
		"name":  "Asha",
		"age":   70,
		"phone": "9876543210",
		"slots": slots,
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	w := executeRequest(router, "GET", "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "Geriatric Daycare Backend Running", resp["message"])
}

func TestBookAndListRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	w := executeRequest(router, "POST", "/book", bookingPayload("Tuesday|10:00–11:00 AM"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Message string `json:"message"`
		Booking struct {
			ID       string    `json:"id"`
			Name     string    `json:"name"`
			Age      int       `json:"age"`
			Phone    string    `json:"phone"`
			Slots    []string  `json:"slots"`
			BookedAt time.Time `json:"bookedAt"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Booked successfully", created.Message)
	assert.NotEmpty(t, created.Booking.ID)
	assert.Equal(t, "Asha", created.Booking.Name)
	assert.Equal(t, 70, created.Booking.Age)
	assert.Equal(t, "9876543210", created.Booking.Phone)
	assert.Equal(t, []string{"Tuesday|10:00–11:00 AM"}, created.Booking.Slots)
	assert.False(t, created.Booking.BookedAt.IsZero())

	w = executeRequest(router, "GET", "/bookings", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.Booking.ID, listed[0].ID)
}

func TestBookValidationErrors(t *testing.T) {
	router, repo := newTestRouter(t)

	cases := []struct {
		name    string
		body    gin.H
		message string
	}{
		{
			"missing slots",
			gin.H{"name": "Asha", "age": 70, "phone": "9876543210", "slots": []string{}},
			"Missing required fields: name, age, phone, slots[]",
		},
		{
			"age out of range",
			gin.H{"name": "Asha", "age": 121, "phone": "9876543210", "slots": []string{"Monday|9:00–10:00 AM"}},
			"Age must be between 1 and 120",
		},
		{
			"phone too short",
			gin.H{"name": "Asha", "age": 70, "phone": "12345", "slots": []string{"Monday|9:00–10:00 AM"}},
			"Invalid phone number",
		},
		{
			"unknown slot key",
			gin.H{"name": "Asha", "age": 70, "phone": "9876543210", "slots": []string{"Sunday|9:00–10:00 AM"}},
			"Unknown slot: Sunday|9:00–10:00 AM",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := executeRequest(router, "POST", "/book", tc.body, "")
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp.Message)
		})
	}

	assert.Equal(t, 0, repo.Len(), "validation failures must not persist")
}

func TestBookMalformedJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	req, _ := http.NewRequest("POST", "/book", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookConflict(t *testing.T) {
	router, repo := newTestRouter(t)

	w := executeRequest(router, "POST", "/book", bookingPayload("Monday|9:00–10:00 AM"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Same key again, alongside a free one: rejected in full.
	w = executeRequest(router, "POST", "/book",
		bookingPayload("Friday|2:00–3:00 PM", "Monday|9:00–10:00 AM"), "")
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Message   string   `json:"message"`
		Conflicts []string `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Some slots are already booked", resp.Message)
	assert.Equal(t, []string{"Monday|9:00–10:00 AM"}, resp.Conflicts)

	assert.Equal(t, 1, repo.Len(), "conflicting booking must not be persisted")

	// The free slot from the rejected request is still bookable.
	w = executeRequest(router, "POST", "/book", bookingPayload("Friday|2:00–3:00 PM"), "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminLoginRejectsWrongPIN(t *testing.T) {
	router, _ := newTestRouter(t)

	w := executeRequest(router, "POST", "/admin/login", gin.H{"pin": "0000"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = executeRequest(router, "POST", "/admin/login", gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBookingRequiresAdmin(t *testing.T) {
	router, _ := newTestRouter(t)

	w := executeRequest(router, "POST", "/book", bookingPayload("Wednesday|11:00–12:00 PM"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Booking struct {
			ID string `json:"id"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = executeRequest(router, "DELETE", "/bookings/"+created.Booking.ID, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteBookingLifecycle(t *testing.T) {
	router, repo := newTestRouter(t)
	token := adminToken(t, router)

	w := executeRequest(router, "POST", "/book", bookingPayload("Thursday|3:00–4:00 PM"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Booking struct {
			ID string `json:"id"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Unknown but well-formed id
	w = executeRequest(router, "DELETE", "/bookings/3b1ff3ce-95a5-4ffa-a909-ab8e07dbca6b", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Malformed id
	w = executeRequest(router, "DELETE", "/bookings/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Cancel for real
	w = executeRequest(router, "DELETE", "/bookings/"+created.Booking.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Booking cancelled", resp.Message)
	assert.Equal(t, 0, repo.Len())

	// Cancelling again is NotFound, and the slot is free for rebooking.
	w = executeRequest(router, "DELETE", "/bookings/"+created.Booking.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = executeRequest(router, "POST", "/book", bookingPayload("Thursday|3:00–4:00 PM"), "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestExportCSV(t *testing.T) {
	router, _ := newTestRouter(t)
	token := adminToken(t, router)

	w := executeRequest(router, "POST", "/book",
		bookingPayload("Tuesday|10:00–11:00 AM", "Friday|1:00–2:00 PM"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	// No token: rejected.
	w = executeRequest(router, "GET", "/export", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = executeRequest(router, "GET", "/export", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=bookings-")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per slot")

	// Both slot rows belong to the same booking.
	assert.Equal(t, records[1][0], records[2][0])
	assert.Equal(t, "Tuesday", records[1][4])
	assert.Equal(t, "Friday", records[2][4])
}

func TestSlotGrid(t *testing.T) {
	router, _ := newTestRouter(t)

	w := executeRequest(router, "POST", "/book", bookingPayload("Monday|9:00–10:00 AM"), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = executeRequest(router, "GET", "/slots", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Days        []string `json:"days"`
		TimeWindows []string `json:"timeWindows"`
		Taken       []string `json:"taken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Days, 6)
	assert.Len(t, resp.TimeWindows, 7)
	assert.Equal(t, []string{"Monday|9:00–10:00 AM"}, resp.Taken)
}
