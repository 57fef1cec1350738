package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcrew/internal/auth"
	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/handler"
)

var (
	now    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	caller = uuid.MustParse("11111111-1111-1111-1111-111111111111")
)

// fakeAuth stands in for middleware.RequireAuth: the bearer value is taken
// as the user id verbatim.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bytes.CutPrefix([]byte(r.Header.Get("Authorization")), []byte("Bearer "))
		id, err := uuid.ParseBytes(raw)
		if !ok || err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), id)))
	})
}

// newHTTPHandler wires a Server with the given mock into a chi router the
// same way main.go does, with fakeAuth in place of the JWT middleware.
func newHTTPHandler(svc handler.TripServicer) http.Handler {
	r := chi.NewRouter()
	handler.NewServer(svc, nil).WithClock(func() time.Time { return now }).Register(r, fakeAuth)
	return r
}

// do sends a request as caller. body is JSON-encoded unless it is nil or
// already an io.Reader.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		rd = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Authorization", "Bearer "+caller.String())
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}

func ptr[T any](v T) *T { return &v }

func tripFixture() domain.Trip {
	admin := domain.Participant{UserID: caller, Role: domain.RoleAdmin, Status: domain.ParticipantAccepted, JoinedAt: now}
	return domain.Trip{
		ID:              uuid.New(),
		Code:            "ABCD2345",
		Title:           "Lake District",
		Location:        "Keswick",
		StartDate:       time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		CreatorID:       caller,
		MaxParticipants: 4,
		Status:          domain.TripPlanning,
		Participants:    []domain.Participant{admin},
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
