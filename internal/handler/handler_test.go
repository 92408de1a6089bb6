package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
	"github.com/Shivanand-hulikatti/event-lodging/internal/seed"
	"github.com/Shivanand-hulikatti/event-lodging/internal/service"
	"github.com/Shivanand-hulikatti/event-lodging/internal/testutil"
)

const testSecret = "test-secret-0123456789"

type api struct {
	t       *testing.T
	handler http.Handler
	auth    *Authenticator
	store   repository.SeedStore
	ds      seed.Dataset
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := testutil.NewSQLiteStore(t)
	ds, err := seed.Demo(context.Background(), store, "demo@lodging.test")
	require.NoError(t, err)

	auth := NewAuthenticator(testSecret)
	h := NewRouter(
		NewBookingHandler(service.NewBookingService(store)),
		NewHotelHandler(service.NewHotelService(store)),
		auth,
	)

	return &api{t: t, handler: h, auth: auth, store: store, ds: ds}
}

func (a *api) token(userID int) string {
	a.t.Helper()
	tok, err := a.auth.Sign(userID, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))})
	require.NoError(a.t, err)
	return tok
}

func (a *api) do(method, path, token, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestAuthentication(t *testing.T) {
	a := newAPI(t)

	expired, err := a.auth.Sign(a.ds.UserID, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))})
	require.NoError(t, err)
	foreign, err := NewAuthenticator("another-secret-0123456789").Sign(a.ds.UserID, jwt.RegisteredClaims{})
	require.NoError(t, err)
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "nobody"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing":      "",
		"garbage":      "not-a-jwt",
		"expired":      expired,
		"wrong secret": foreign,
		"no user id":   noUser,
	} {
		t.Run(name, func(t *testing.T) {
			rec := a.do(http.MethodGet, "/booking", token, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeBody[model.ErrorResponse](t, rec)
			assert.Equal(t, string(apperr.KindUnauthorized), body.Kind)
		})
	}
}

func TestVerifyAcceptsUserIDClaim(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": 7}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	userID, err := auth.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.Verify(none)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestBookingFlow(t *testing.T) {
	a := newAPI(t)
	token := a.token(a.ds.UserID)
	x, y := a.ds.RoomIDs[0], a.ds.RoomIDs[1]

	rec := a.do(http.MethodGet, "/booking", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodPost, "/booking", token, fmt.Sprintf(`{"roomId": %d}`, x))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody[model.BookingResult](t, rec)
	assert.Positive(t, created.BookingID)

	rec = a.do(http.MethodGet, "/booking", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		ID   int `json:"id"`
		Room struct {
			ID       int `json:"id"`
			Name     string
			Capacity int `json:"capacity"`
			HotelID  int `json:"hotelId"`
		} `json:"Room"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, created.BookingID, view.ID)
	assert.Equal(t, x, view.Room.ID)
	assert.Equal(t, a.ds.HotelID, view.Room.HotelID)

	path := fmt.Sprintf("/booking/%d", created.BookingID)
	rec = a.do(http.MethodPut, path, token, fmt.Sprintf(`{"roomId": %d}`, y))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, created.BookingID, decodeBody[model.BookingResult](t, rec).BookingID)

	rec = a.do(http.MethodGet, "/booking", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, y, view.Room.ID)
}

func TestBookingErrors(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	token := a.token(a.ds.UserID)
	single := a.ds.RoomIDs[0]

	rec := a.do(http.MethodPost, "/booking", token, fmt.Sprintf(`{"roomId": %d}`, single))
	require.Equal(t, http.StatusOK, rec.Code)
	booking := decodeBody[model.BookingResult](t, rec)

	other, err := seed.EnrollAttendee(ctx, a.store, seed.Attendee{
		Email:        "other@lodging.test",
		TicketTypeID: a.ds.LodgingTicketTypeID,
	})
	require.NoError(t, err)
	otherToken := a.token(other)

	reserved, err := seed.EnrollAttendee(ctx, a.store, seed.Attendee{
		Email:        "reserved@lodging.test",
		TicketTypeID: a.ds.LodgingTicketTypeID,
		Status:       model.TicketReserved,
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
		kind   apperr.Kind
	}{
		{"malformed body", http.MethodPost, "/booking", otherToken, `{"roomId":`, http.StatusBadRequest, apperr.KindInvalidInput},
		{"non-integer roomId", http.MethodPost, "/booking", otherToken, `{"roomId": "abc"}`, http.StatusBadRequest, apperr.KindInvalidInput},
		{"unknown field", http.MethodPost, "/booking", otherToken, `{"room": 1}`, http.StatusBadRequest, apperr.KindInvalidInput},
		{"zero roomId", http.MethodPost, "/booking", otherToken, `{"roomId": 0}`, http.StatusNotFound, apperr.KindNotFound},
		{"missing roomId", http.MethodPost, "/booking", otherToken, `{}`, http.StatusNotFound, apperr.KindNotFound},
		{"unknown room", http.MethodPost, "/booking", otherToken, `{"roomId": 999999}`, http.StatusNotFound, apperr.KindNotFound},
		{"room full", http.MethodPost, "/booking", otherToken, fmt.Sprintf(`{"roomId": %d}`, single), http.StatusForbidden, apperr.KindRoomFull},
		{"already booked", http.MethodPost, "/booking", token, fmt.Sprintf(`{"roomId": %d}`, a.ds.RoomIDs[2]), http.StatusForbidden, apperr.KindIneligibleBooking},
		{"unpaid ticket", http.MethodPost, "/booking", a.token(reserved), fmt.Sprintf(`{"roomId": %d}`, a.ds.RoomIDs[2]), http.StatusForbidden, apperr.KindIneligibleBooking},
		{"non-integer bookingId", http.MethodPut, "/booking/abc", token, `{"roomId": 1}`, http.StatusBadRequest, apperr.KindInvalidInput},
		{"zero bookingId", http.MethodPut, "/booking/0", token, `{"roomId": 1}`, http.StatusBadRequest, apperr.KindInvalidInput},
		{"booking of another user", http.MethodPut, fmt.Sprintf("/booking/%d", booking.BookingID), otherToken, fmt.Sprintf(`{"roomId": %d}`, a.ds.RoomIDs[2]), http.StatusForbidden, apperr.KindIneligibleBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decodeBody[model.ErrorResponse](t, rec)
			assert.Equal(t, string(tt.kind), body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHotelRoutes(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	token := a.token(a.ds.UserID)

	rec := a.do(http.MethodGet, "/hotels", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	hotels := decodeBody[[]model.Hotel](t, rec)
	require.Len(t, hotels, 1)

	rec = a.do(http.MethodGet, fmt.Sprintf("/hotels/%d", a.ds.HotelID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	hotel := decodeBody[model.HotelWithRooms](t, rec)
	assert.Len(t, hotel.Rooms, 3)

	rec = a.do(http.MethodGet, "/hotels/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/hotels/999999", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	reserved, err := seed.EnrollAttendee(ctx, a.store, seed.Attendee{
		Email:        "unpaid@lodging.test",
		TicketTypeID: a.ds.LodgingTicketTypeID,
		Status:       model.TicketReserved,
	})
	require.NoError(t, err)
	rec = a.do(http.MethodGet, "/hotels", a.token(reserved), "")
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec = a.do(http.MethodGet, "/tickets/types", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]model.TicketType](t, rec), 2)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(apperr.KindNotFound))
	assert.Equal(t, http.StatusForbidden, statusFor(apperr.KindIneligibleBooking))
	assert.Equal(t, http.StatusForbidden, statusFor(apperr.KindRoomFull))
	assert.Equal(t, http.StatusBadRequest, statusFor(apperr.KindInvalidInput))
	assert.Equal(t, http.StatusPaymentRequired, statusFor(apperr.KindPaymentRequired))
	assert.Equal(t, http.StatusUnauthorized, statusFor(apperr.KindUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}

func TestUnclassifiedErrorIsHidden(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	rec := httptest.NewRecorder()
	writeServiceError(rec, req, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[model.ErrorResponse](t, rec)
	assert.Equal(t, "internal server error", body.Error)
	assert.Empty(t, body.Kind)
}

func TestCORSPreflight(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodOptions, "/booking", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
