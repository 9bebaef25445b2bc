package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-backend/internal/user"
)

type mockUserService struct {
	ListUsersFunc    func(ctx context.Context, search string) ([]user.User, error)
	CreateUserFunc   func(ctx context.Context, u *user.User, password string) (*user.User, error)
	UpdateUserFunc   func(ctx context.Context, u *user.User, password string) error
	DeleteUserFunc   func(ctx context.Context, id primitive.ObjectID) error
	AuthenticateFunc func(ctx context.Context, email, password string) (*user.User, error)
}

func (m *mockUserService) ListUsers(ctx context.Context, search string) ([]user.User, error) {
	return m.ListUsersFunc(ctx, search)
}

func (m *mockUserService) CreateUser(ctx context.Context, u *user.User, password string) (*user.User, error) {
	return m.CreateUserFunc(ctx, u, password)
}

func (m *mockUserService) UpdateUser(ctx context.Context, u *user.User, password string) error {
	return m.UpdateUserFunc(ctx, u, password)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteUserFunc(ctx, id)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	return m.AuthenticateFunc(ctx, email, password)
}

func newUserRouter(svc user.Service) *chi.Mux {
	r := chi.NewRouter()
	NewUserHandler(svc).RegisterRoutes(r)
	return r
}

func TestUserHandler_Login(t *testing.T) {
	stored := &user.User{
		ID:    primitive.NewObjectID(),
		Name:  "Amina K",
		Email: "amina@example.com",
		Role:  user.RoleAdmin,
		// The hash never leaves the server; json:"-" strips it.
		PasswordHash: "$2a$10$notarealhash",
	}

	tests := []struct {
		name           string
		body           string
		authenticate   func(ctx context.Context, email, password string) (*user.User, error)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"email": "amina@example.com", "password": "somepassword"}`,
			authenticate: func(ctx context.Context, email, password string) (*user.User, error) {
				return stored, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong_password",
			body: `{"email": "amina@example.com", "password": "bad"}`,
			authenticate: func(ctx context.Context, email, password string) (*user.User, error) {
				return nil, user.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing_fields",
			body:           `{"email": "amina@example.com"}`,
			authenticate:   nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_json",
			body:           `{invalid}`,
			authenticate:   nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newUserRouter(&mockUserService{AuthenticateFunc: tt.authenticate})

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var envelope struct {
					Success bool `json:"success"`
					Data    struct {
						User map[string]interface{} `json:"user"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
				assert.True(t, envelope.Success)

				want := map[string]interface{}{
					"id":    stored.ID.Hex(),
					"name":  "Amina K",
					"email": "amina@example.com",
					"role":  "admin",
				}
				if diff := cmp.Diff(want, envelope.Data.User); diff != "" {
					t.Errorf("login response mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestUserHandler_ListUsers_SearchPassthrough(t *testing.T) {
	var gotSearch string
	router := newUserRouter(&mockUserService{
		ListUsersFunc: func(ctx context.Context, search string) ([]user.User, error) {
			gotSearch = search
			return []user.User{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users?search=ami", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ami", gotSearch)
}

func TestUserHandler_UpdateUser_PartialBody(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		wantUpdate     *user.User
	}{
		{
			name:           "role_only",
			body:           `{"role": "admin"}`,
			expectedStatus: http.StatusOK,
			wantUpdate:     &user.User{ID: userID, Role: user.RoleAdmin},
		},
		{
			name:           "name_and_email",
			body:           `{"name": "Amina K", "email": "amina@example.com"}`,
			expectedStatus: http.StatusOK,
			wantUpdate:     &user.User{ID: userID, Name: "Amina K", Email: "amina@example.com"},
		},
		{
			name:           "malformed_email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUpdate *user.User
			router := newUserRouter(&mockUserService{
				UpdateUserFunc: func(ctx context.Context, u *user.User, password string) error {
					gotUpdate = u
					return nil
				},
			})

			req := httptest.NewRequest(http.MethodPut, "/users/"+userID.Hex(), bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.wantUpdate != nil {
				require.NotNil(t, gotUpdate)
				assert.Equal(t, *tt.wantUpdate, *gotUpdate)
			} else {
				assert.Nil(t, gotUpdate, "invalid payload must not reach the service")
			}
		})
	}
}

func TestUserHandler_CreateUser_DuplicateEmail(t *testing.T) {
	router := newUserRouter(&mockUserService{
		CreateUserFunc: func(ctx context.Context, u *user.User, password string) (*user.User, error) {
			return nil, user.ErrEmailExists
		},
	})

	body := `{"name": "Amina K", "email": "duplicate@example.com", "role": "admin", "password": "somepassword"}`
	req := httptest.NewRequest(http.MethodPost, "/users/create", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Email already exists"}`, w.Body.String())
}
