package reject

import (
	"context"
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

	"github.com/magabrotheeeer/content-factory/internal/models"
)

// MockService реализует интерфейс reject.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Reject(ctx context.Context, id int, reason string) (*models.Task, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func TestRejectHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное отклонение",
			id:   "7",
			body: `{"note":"переснять вступление"}`,
			setupMock: func(m *MockService) {
				m.On("Reject", mock.Anything, 7, "переснять вступление").
					Return(&models.Task{
						ID:        7,
						Status:    models.StatusIssueReported,
						AdminNote: "[отклонено] переснять вступление",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"issue_reported"`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			body:           `{"note":"причина"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid id"`,
		},
		{
			name:           "пустая причина",
			id:             "7",
			body:           `{"note":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Note is a required field`,
		},
		{
			name: "задача не найдена",
			id:   "404",
			body: `{"note":"причина"}`,
			setupMock: func(m *MockService) {
				m.On("Reject", mock.Anything, 404, "причина").
					Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"task not found"`,
		},
		{
			name: "задача не на проверке",
			id:   "7",
			body: `{"note":"причина"}`,
			setupMock: func(m *MockService) {
				m.On("Reject", mock.Anything, 7, "причина").
					Return(nil, models.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"invalid status transition"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/"+tt.id+"/reject", strings.NewReader(tt.body))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
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
