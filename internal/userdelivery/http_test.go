package userdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/go-vendo/vending-machine/internal/domain"
	"github.com/go-vendo/vending-machine/pkg/errorspkg"
	"github.com/go-vendo/vending-machine/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("role", ValidRole); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func randomUser() domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username: randompkg.Owner(),
		Role:     domain.RoleBuyer,
		FullName: randompkg.Owner(),
		Email:    randompkg.Email(),
	}
}

func newTestServer(t *testing.T, service Service, sessionMaker SessionMaker) *gin.Engine {
	t.Helper()

	handler := NewHandler(service, sessionMaker)

	server := gin.New()
	server.POST("/users", handler.Create)
	server.POST("/users/login", handler.Login)

	return server
}

func TestCreate(t *testing.T) {
	user := randomUser()
	password := randompkg.String(10)

	testSession := domain.Session{
		Username:     user.Username,
		Role:         user.Role,
		RefreshToken: randompkg.String(32),
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	type requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
		FullName string `json:"fullname"`
		Email    string `json:"email"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
		wantError      string
		checkData      func(got userData)
	}{
		{
			name: "OK",
			requestBody: requestBody{
				Username: user.Username,
				Password: password,
				Role:     user.Role,
				FullName: user.FullName,
				Email:    user.Email,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(),
						gomock.Eq(user.Username),
						gomock.Eq(password),
						gomock.Eq(user.Role),
						gomock.Eq(user.FullName),
						gomock.Eq(user.Email)).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateSessionParams{})).
					Times(1).
					Return("token", time.Now().Add(time.Minute), testSession, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(got userData) {
				if diff := cmp.Diff(user, got.User); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "InvalidRole",
			requestBody: requestBody{
				Username: user.Username,
				Password: password,
				Role:     "admin",
				FullName: user.FullName,
				Email:    user.Email,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
				sessionMaker.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Role must be buyer or seller",
		},
		{
			name: "ShortPassword",
			requestBody: requestBody{
				Username: user.Username,
				Password: "short",
				Role:     user.Role,
				FullName: user.FullName,
				Email:    user.Email,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
				sessionMaker.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password must be at least 6 characters long",
		},
		{
			name: "UsernameAlreadyExists",
			requestBody: requestBody{
				Username: user.Username,
				Password: password,
				Role:     user.Role,
				FullName: user.FullName,
				Email:    user.Email,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUsernameAlreadyExists)
				sessionMaker.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name: "SessionInternalError",
			requestBody: requestBody{
				Username: user.Username,
				Password: password,
				Role:     user.Role,
				FullName: user.FullName,
				Email:    user.Email,
			},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(user, nil)
				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return("", time.Time{}, domain.Session{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			sessionMaker := NewMockSessionMaker(ctrl)
			server := newTestServer(t, service, sessionMaker)

			tc.buildStubs(service, sessionMaker)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res struct {
				AccessToken  string   `json:"access_token"`
				RefreshToken string   `json:"refresh_token"`
				Data         userData `json:"data"`
				Error        string   `json:"error"`
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("res.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			if res.AccessToken == "" {
				t.Error(`res.AccessToken = "", want non empty`)
			}

			if res.RefreshToken != testSession.RefreshToken {
				t.Errorf("res.RefreshToken=%q, want %q", res.RefreshToken, testSession.RefreshToken)
			}

			tc.checkData(res.Data)
		})
	}
}

func TestLogin(t *testing.T) {
	user := randomUser()
	password := randompkg.String(10)

	testSession := domain.Session{
		Username:     user.Username,
		Role:         user.Role,
		RefreshToken: randompkg.String(32),
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	type requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService, sessionMaker *MockSessionMaker)
		wantStatusCode int
		wantError      string
		checkData      func(got userData)
	}{
		{
			name:        "OK",
			requestBody: requestBody{Username: user.Username, Password: password},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password)).
					Times(1).
					Return(user, nil)

				sessionMaker.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateSessionParams{})).
					Times(1).
					Return("token", time.Now().Add(time.Minute), testSession, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(got userData) {
				if diff := cmp.Diff(user, got.User); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "UserNotFound",
			requestBody: requestBody{Username: user.Username, Password: password},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUserNotFound)
				sessionMaker.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrUserNotFound.Error(),
		},
		{
			name:        "WrongPassword",
			requestBody: requestBody{Username: user.Username, Password: password},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(user.Username), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrWrongPassword)
				sessionMaker.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrWrongPassword.Error(),
		},
		{
			name:        "MissingUsername",
			requestBody: requestBody{Password: password},
			buildStubs: func(service *MockService, sessionMaker *MockSessionMaker) {
				service.EXPECT().CheckPassword(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				sessionMaker.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Username field is required",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			sessionMaker := NewMockSessionMaker(ctrl)
			server := newTestServer(t, service, sessionMaker)

			tc.buildStubs(service, sessionMaker)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res struct {
				AccessToken  string   `json:"access_token"`
				RefreshToken string   `json:"refresh_token"`
				Data         userData `json:"data"`
				Error        string   `json:"error"`
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf("res.Error=%q, want %q", res.Error, tc.wantError)
				}

				return
			}

			if res.AccessToken == "" {
				t.Error(`res.AccessToken = "", want non empty`)
			}

			tc.checkData(res.Data)
		})
	}
}
