package getMyRsvps

import (
	"errors"
	"eventsApi/internal/access"
	"eventsApi/internal/http-server/handlers/rsvp/getMyRsvps/mocks"
	mwauth "eventsApi/internal/http-server/middleware/auth"
	"eventsApi/internal/lib/logger/handlers/slogdiscard"
	"eventsApi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetMyRSVPsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	uid := int64(7)

	testCases := []struct {
		name           string
		principal      *access.Principal
		mockSetup      func(m *mocks.UserRSVPsGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "Success",
			principal: &access.Principal{UserID: 7},
			mockSetup: func(m *mocks.UserRSVPsGetter) {
				m.On("GetUserRSVPs", mock.Anything, int64(7)).
					Return([]models.RSVP{{ID: 1, EventID: 2, UserID: &uid, Attending: true}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","rsvps":[{"id":1,"event_id":2,"user_id":7,"attending":true,"created_at":"0001-01-01T00:00:00Z"}]}`,
		},
		{
			name:      "No rsvps",
			principal: &access.Principal{UserID: 7},
			mockSetup: func(m *mocks.UserRSVPsGetter) {
				m.On("GetUserRSVPs", mock.Anything, int64(7)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","rsvps":[]}`,
		},
		{
			name:           "Anonymous",
			mockSetup:      func(m *mocks.UserRSVPsGetter) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"authentication required"}`,
		},
		{
			name:      "Storage error",
			principal: &access.Principal{UserID: 7},
			mockSetup: func(m *mocks.UserRSVPsGetter) {
				m.On("GetUserRSVPs", mock.Anything, int64(7)).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get rsvps"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewUserRSVPsGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			req, err := http.NewRequest("GET", "/rsvps/me", nil)
			require.NoError(t, err)

			if tc.principal != nil {
				req = req.WithContext(mwauth.WithPrincipal(req.Context(), *tc.principal))
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
