package consume

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/content-factory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// MockService реализует интерфейс consume.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Consume(ctx context.Context, accountUID, resourceName string) (int, int, error) {
	args := m.Called(ctx, accountUID, resourceName)
	return args.Int(0), args.Int(1), args.Error(2)
}

func TestConsumeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		resource       string
		accountUID     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "успешное списание",
			resource:   "story",
			accountUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Consume", mock.Anything, "uid-1", "story").Return(2, 3, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"current":2`,
		},
		{
			name:       "неизвестный ресурс",
			resource:   "coffee",
			accountUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Consume", mock.Anything, "uid-1", "coffee").
					Return(0, 0, models.ErrValidation)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"unknown resource"`,
		},
		{
			name:           "нет идентификации аккаунта",
			resource:       "story",
			accountUID:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"account identification missing"`,
		},
		{
			name:       "ошибка сервиса",
			resource:   "voice",
			accountUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Consume", mock.Anything, "uid-1", "voice").
					Return(0, 0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to consume resource"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/quota/"+tt.resource, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("resource", tt.resource)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.User, tt.accountUID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
