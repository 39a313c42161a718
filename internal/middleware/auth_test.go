package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"main/internal/auth"
)

// MockStore is a mock implementation of the sessions.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	args := m.Called(r, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessions.Session), args.Error(1)
}

func (m *MockStore) New(r *http.Request, name string) (*sessions.Session, error) {
	args := m.Called(r, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessions.Session), args.Error(1)
}

func (m *MockStore) Save(r *http.Request, w http.ResponseWriter, s *sessions.Session) error {
	args := m.Called(r, w, s)
	return args.Error(0)
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name           string
		setupMocks     func(mockStore *MockStore)
		expectedStatus int
		expectNext     bool
	}{
		{
			name: "Logged in user passes through",
			setupMocks: func(mockStore *MockStore) {
				session := sessions.NewSession(mockStore, auth.SessionName)
				auth.SetSessionUser(session, auth.SessionUser{Email: "test@example.com"})

				mockStore.On("Get", mock.Anything, auth.SessionName).Return(session, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name: "No session record redirects to login",
			setupMocks: func(mockStore *MockStore) {
				session := sessions.NewSession(mockStore, auth.SessionName)

				mockStore.On("Get", mock.Anything, auth.SessionName).Return(session, nil)
			},
			expectedStatus: http.StatusTemporaryRedirect,
		},
		{
			name: "Undecodable session redirects to login",
			setupMocks: func(mockStore *MockStore) {
				mockStore.On("Get", mock.Anything, auth.SessionName).Return(nil, errors.New("securecookie: the value is not valid"))
			},
			expectedStatus: http.StatusTemporaryRedirect,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := new(MockStore)
			tc.setupMocks(mockStore)

			nextCalled := false

			router := gin.Default()
			router.GET("/profile", Auth(mockStore), func(c *gin.Context) {
				nextCalled = true
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/profile", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectNext, nextCalled)

			if tc.expectedStatus == http.StatusTemporaryRedirect {
				assert.Equal(t, "/login.html", w.Result().Header.Get("Location"))
			}

			mockStore.AssertExpectations(t)
		})
	}
}
