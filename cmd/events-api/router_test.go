package main

import (
	"bytes"
	"context"
	"encoding/json"
	"eventsApi/internal/config"
	"eventsApi/internal/lib/logger/handlers/slogdiscard"
	"eventsApi/internal/lib/token"
	"eventsApi/internal/models"
	"eventsApi/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const testSecret = "router-test-secret-0123456789abcdef"

// memStorage is an in-memory Storage used to drive the full router.
type memStorage struct {
	mu     sync.Mutex
	users  []models.User
	events []models.Event
	rsvps  []models.RSVP
}

func (s *memStorage) Ping(context.Context) error { return nil }

func (s *memStorage) CreateUser(_ context.Context, username, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return models.User{}, storage.ErrUserExists
		}
	}

	u := models.User{ID: int64(len(s.users) + 1), Username: username, PasswordHash: passwordHash}
	s.users = append(s.users, u)

	return u, nil
}

func (s *memStorage) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}

	return models.User{}, storage.ErrUserNotFound
}

func (s *memStorage) GetUserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}

	return models.User{}, storage.ErrUserNotFound
}

func (s *memStorage) CreateEvent(_ context.Context, event models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = int64(len(s.events) + 1)
	event.ApplyRSVPs(nil)
	s.events = append(s.events, event)

	return event, nil
}

func (s *memStorage) GetEvent(_ context.Context, id int64) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.eventLocked(id)
}

func (s *memStorage) eventLocked(id int64) (models.Event, error) {
	for _, e := range s.events {
		if e.ID == id {
			var rsvps []models.RSVP
			for _, r := range s.rsvps {
				if r.EventID == id {
					rsvps = append(rsvps, r)
				}
			}
			e.ApplyRSVPs(rsvps)

			return e, nil
		}
	}

	return models.Event{}, storage.ErrEventNotFound
}

func (s *memStorage) GetAllEvents(context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		full, _ := s.eventLocked(e.ID)
		events = append(events, full)
	}

	return events, nil
}

func (s *memStorage) SaveRSVP(_ context.Context, eventID int64, userID *int64, attending bool) (models.RSVP, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.eventLocked(eventID)
	if err != nil {
		return models.RSVP{}, false, err
	}

	if userID != nil {
		for i, r := range s.rsvps {
			if r.EventID == eventID && r.UserID != nil && *r.UserID == *userID {
				s.rsvps[i].Attending = attending
				return s.rsvps[i], false, nil
			}
		}
	}

	taken := 0
	for _, r := range s.rsvps {
		if r.EventID == eventID && r.Attending {
			taken++
		}
	}

	if attending && taken >= event.Capacity {
		return models.RSVP{}, false, storage.ErrEventFull
	}

	r := models.RSVP{ID: int64(len(s.rsvps) + 1), EventID: eventID, UserID: userID, Attending: attending}
	s.rsvps = append(s.rsvps, r)

	return r, true, nil
}

func (s *memStorage) GetEventRSVPs(_ context.Context, eventID int64) ([]models.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.RSVP
	for _, r := range s.rsvps {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (s *memStorage) GetUserRSVPs(_ context.Context, userID int64) ([]models.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.RSVP
	for _, r := range s.rsvps {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (s *memStorage) setAdmin(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username == username {
			s.users[i].IsAdmin = true
		}
	}
}

func testConfig(rateLimit int) *config.Config {
	return &config.Config{
		Env:        envLocal,
		HTTPServer: config.HTTPServer{MaxBodyBytes: 1 << 20},
		Auth: config.Auth{
			JWTSecret: testSecret,
			TokenTTL:  time.Hour,
			Issuer:    "events-api",
			RateLimit: rateLimit,
		},
		CORS: config.CORS{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func (c apiClient) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	c.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)

	return rr
}

func (c apiClient) login(username, password string) string {
	c.t.Helper()

	rr := c.do("POST", "/api/auth/register", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(c.t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = c.do("POST", "/api/auth/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(c.t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(c.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(c.t, resp.AccessToken)

	return resp.AccessToken
}

func newTestAPI(t *testing.T, rateLimit int) (apiClient, *memStorage) {
	t.Helper()

	store := &memStorage{}
	tokens := token.NewManager(testSecret, time.Hour, "events-api")
	handler := newRouter(slogdiscard.NewDiscardLogger(), testConfig(rateLimit), store, tokens)

	return apiClient{t: t, handler: handler}, store
}

func createEventBody(isPublic, requiresAdmin bool) string {
	b, _ := json.Marshal(map[string]any{
		"title":          "Meetup",
		"date":           "2026-12-25T18:00:00Z",
		"capacity":       2,
		"is_public":      isPublic,
		"requires_admin": requiresAdmin,
	})

	return string(b)
}

func TestRouterAccessTiers(t *testing.T) {
	api, store := newTestAPI(t, 100)

	userToken := api.login("alice", "securepassword123")
	api.login("root", "securepassword123")
	store.setAdmin("root")

	rr := api.do("POST", "/api/auth/login", `{"username":"root","password":"securepassword123"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var adminLogin struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &adminLogin))
	adminToken := adminLogin.AccessToken

	assert.Equal(t, http.StatusOK, api.do("GET", "/api/auth/me", "", userToken).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do("GET", "/api/auth/me", "", "").Code)

	assert.Equal(t, http.StatusUnauthorized, api.do("POST", "/api/events", createEventBody(true, false), "").Code)
	assert.Equal(t, http.StatusForbidden, api.do("POST", "/api/events", createEventBody(false, true), userToken).Code)
	require.Equal(t, http.StatusCreated, api.do("POST", "/api/events", createEventBody(true, false), userToken).Code)
	require.Equal(t, http.StatusCreated, api.do("POST", "/api/events", createEventBody(false, false), userToken).Code)
	require.Equal(t, http.StatusCreated, api.do("POST", "/api/events", createEventBody(false, true), adminToken).Code)

	rr = api.do("GET", "/api/events", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"access_tier":"admin"`)

	assert.Equal(t, http.StatusOK, api.do("GET", "/api/events/2", "", "").Code)
	assert.Equal(t, http.StatusNotFound, api.do("GET", "/api/events/99", "", "").Code)

	testCases := []struct {
		name           string
		eventID        string
		bearer         string
		expectedStatus int
	}{
		{"Public anonymous", "1", "", http.StatusCreated},
		{"Public user", "1", userToken, http.StatusCreated},
		{"Public user again", "1", userToken, http.StatusOK},
		{"Public full", "1", "", http.StatusConflict},
		{"Protected anonymous", "2", "", http.StatusUnauthorized},
		{"Protected user", "2", userToken, http.StatusCreated},
		{"Protected bad token", "2", "not-a-jwt", http.StatusUnauthorized},
		{"Admin anonymous", "3", "", http.StatusUnauthorized},
		{"Admin user", "3", userToken, http.StatusForbidden},
		{"Admin admin", "3", adminToken, http.StatusCreated},
		{"Missing event", "99", userToken, http.StatusNotFound},
	}

	for _, tc := range testCases {
		rr := api.do("POST", "/api/rsvps/event/"+tc.eventID, `{"attending": true}`, tc.bearer)
		assert.Equal(t, tc.expectedStatus, rr.Code, "%s: %s", tc.name, rr.Body.String())
	}

	assert.Equal(t, http.StatusUnauthorized, api.do("GET", "/api/rsvps/event/2", "", "").Code)
	assert.Equal(t, http.StatusOK, api.do("GET", "/api/rsvps/event/2", "", userToken).Code)
	assert.Equal(t, http.StatusForbidden, api.do("GET", "/api/rsvps/event/3", "", userToken).Code)

	assert.Equal(t, http.StatusUnauthorized, api.do("GET", "/api/rsvps/me", "", "").Code)

	rr = api.do("GET", "/api/rsvps/me", "", userToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var mine struct {
		RSVPs []models.RSVP `json:"rsvps"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mine))
	assert.Len(t, mine.RSVPs, 2)
}

func TestRouterHealthAndDocs(t *testing.T) {
	api, _ := newTestAPI(t, 100)

	rr := api.do("GET", "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))

	for _, path := range []string{"/", "/api/docs"} {
		rr := api.do("GET", path, "", "")
		assert.Equal(t, http.StatusFound, rr.Code, path)
		assert.Equal(t, "/static/index.html", rr.Header().Get("Location"), path)
	}
}

func TestRouterAuthRateLimit(t *testing.T) {
	api, _ := newTestAPI(t, 2)

	body := `{"username":"nobody","password":"securepassword123"}`

	assert.Equal(t, http.StatusUnauthorized, api.do("POST", "/api/auth/login", body, "").Code)
	assert.Equal(t, http.StatusUnauthorized, api.do("POST", "/api/auth/login", body, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, api.do("POST", "/api/auth/login", body, "").Code)

	// other route groups are not throttled
	assert.Equal(t, http.StatusOK, api.do("GET", "/api/events", "", "").Code)
}
