package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Renal37/restaurant-pos/internal/models"
	mock_models "github.com/Renal37/restaurant-pos/internal/models/mocks"
	"github.com/Renal37/restaurant-pos/internal/services"
	"github.com/Renal37/restaurant-pos/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cashierToken() *jwt.Token {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "cashier"})
}

func orderBody(t *testing.T) io.Reader {
	t.Helper()
	data, err := json.Marshal(models.Order{
		Lines: []models.OrderLine{
			{MenuItemID: "menu-1", Quantity: 2, Price: 150},
		},
		Total:         300,
		PaymentMethod: models.PaymentCash,
		Type:          models.OrderTypeDineIn,
		CreatedAt:     utils.RFC3339Date{Time: time.Date(2025, 11, 3, 12, 30, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

// Тестирование маршрута регистрации сотрудника
func TestRegisterRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, nil).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName        string
		body            func() io.Reader
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName:        "Должен вернуть ошибку валидации из-за отсутствия тела запроса",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Ошибка при разборе данных JSON: unexpected end of JSON input\n",
		},
		{
			testName: "Должен вернуть ошибку валидации из-за отсутствия логина",
			body: func() io.Reader {
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Запрос не содержит логин или пароль\n",
		},
		{
			testName: "Должен вернуть ошибку, если сотрудник уже зарегистрирован",
			test: func(t *testing.T) {
				Login := "cashier"
				Password := "123"

				jwtServiceMock.EXPECT().GenerateJWT("cashier").Return("token", nil)
				authServiceMock.EXPECT().Register(gomock.Any(), models.UnknownUser{Login: &Login, Password: &Password}).Return(services.ErrUserIsAlreadyRegistered)
			},
			body: func() io.Reader {
				Login := "cashier"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Login: &Login, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "Пользователь уже зарегистрирован\n",
		},
		{
			testName: "Должен зарегистрировать сотрудника",
			test: func(t *testing.T) {
				Login := "cashier"
				Password := "123"

				jwtServiceMock.EXPECT().GenerateJWT("cashier").Return("token", nil)
				authServiceMock.EXPECT().Register(gomock.Any(), models.UnknownUser{Login: &Login, Password: &Password}).Return(nil)
			},
			body: func() io.Reader {
				Login := "cashier"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Login: &Login, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			var body io.Reader
			if tc.body != nil {
				body = tc.body()
			}

			resp, message := utils.TestRequest(t, testServer, "POST", "/api/user/register",
				map[string]string{"Content-Type": "application/json"}, body)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedCode, resp.StatusCode)
			assert.Equal(t, tc.expectedMessage, message)
		})
	}
}

// Тестирование маршрута входа сотрудника
func TestLoginRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, nil).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName       string
		body           func() io.Reader
		test           func(t *testing.T)
		expectedCode   int
		expectedHeader string
	}{
		{
			testName: "Должен вернуть ошибку при неверном пароле",
			test: func(t *testing.T) {
				Login := "cashier"
				Password := "wrong"

				authServiceMock.EXPECT().Login(gomock.Any(), models.UnknownUser{Login: &Login, Password: &Password}).Return(services.ErrPasswordIsIncorrect)
			},
			body: func() io.Reader {
				Login := "cashier"
				Password := "wrong"
				data, _ := json.Marshal(models.UnknownUser{Login: &Login, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			testName: "Должен впустить сотрудника с верным паролем",
			test: func(t *testing.T) {
				Login := "cashier"
				Password := "123"

				authServiceMock.EXPECT().Login(gomock.Any(), models.UnknownUser{Login: &Login, Password: &Password}).Return(nil)
				jwtServiceMock.EXPECT().GenerateJWT("cashier").Return("token", nil)
			},
			body: func() io.Reader {
				Login := "cashier"
				Password := "123"
				data, _ := json.Marshal(models.UnknownUser{Login: &Login, Password: &Password})
				return bytes.NewBuffer(data)
			},
			expectedCode:   http.StatusOK,
			expectedHeader: "Bearer token",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			resp, _ := utils.TestRequest(t, testServer, "POST", "/api/user/login",
				map[string]string{"Content-Type": "application/json"}, tc.body())
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedCode, resp.StatusCode)
			if tc.expectedHeader != "" {
				assert.Equal(t, tc.expectedHeader, resp.Header.Get("Authorization"))
			}
		})
	}
}

// Тестирование маршрута сохранения заказа
func TestSaveOrderRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)
	syncServiceMock := mock_models.NewMockOrderSyncService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, syncServiceMock).get(),
	)
	defer testServer.Close()

	expectAuthorized := func() {
		jwtServiceMock.EXPECT().ValidateToken("token").Return(cashierToken(), nil)
		authServiceMock.EXPECT().GetUser(gomock.Any(), "cashier").Return(&models.User{ID: "user-1", Login: "cashier"}, nil)
	}

	testCases := []struct {
		testName         string
		headers          map[string]string
		body             func() io.Reader
		test             func(t *testing.T)
		expectedCode     int
		expectedFragment string
	}{
		{
			testName:     "Должен вернуть ошибку без заголовка Authorization",
			headers:      map[string]string{"Content-Type": "application/json"},
			body:         func() io.Reader { return orderBody(t) },
			expectedCode: http.StatusUnauthorized,
		},
		{
			testName: "Должен отклонить некорректный заказ",
			headers:  map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token"},
			body:     func() io.Reader { return orderBody(t) },
			test: func(t *testing.T) {
				expectAuthorized()
				syncServiceMock.EXPECT().VerifyOrder(gomock.Any()).Return(services.ErrOrderHasNoLines)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			testName: "Должен вернуть ошибку, если заказ отвергнут по существу",
			headers:  map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token"},
			body:     func() io.Reader { return orderBody(t) },
			test: func(t *testing.T) {
				expectAuthorized()
				syncServiceMock.EXPECT().VerifyOrder(gomock.Any()).Return(nil)
				syncServiceMock.EXPECT().SaveOrder(gomock.Any(), gomock.Any(), "user-1").Return(nil, errors.New("нарушение ограничения"))
			},
			expectedCode:     http.StatusInternalServerError,
			expectedFragment: "Заказ не сохранён",
		},
		{
			testName: "Должен сохранить заказ онлайн",
			headers:  map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token"},
			body:     func() io.Reader { return orderBody(t) },
			test: func(t *testing.T) {
				expectAuthorized()
				syncServiceMock.EXPECT().VerifyOrder(gomock.Any()).Return(nil)
				syncServiceMock.EXPECT().SaveOrder(gomock.Any(), gomock.Any(), "user-1").Return(&models.SaveResult{
					Mode:   models.SaveModeOnline,
					Record: &models.RemoteOrderRecord{ID: "order-42", SequenceNumber: 17},
				}, nil)
			},
			expectedCode:     http.StatusOK,
			expectedFragment: `"mode":"ONLINE"`,
		},
		{
			testName: "Должен сохранить заказ офлайн при недоступной сети",
			headers:  map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token"},
			body:     func() io.Reader { return orderBody(t) },
			test: func(t *testing.T) {
				expectAuthorized()
				syncServiceMock.EXPECT().VerifyOrder(gomock.Any()).Return(nil)
				syncServiceMock.EXPECT().SaveOrder(gomock.Any(), gomock.Any(), "user-1").Return(&models.SaveResult{
					Mode:      models.SaveModeOffline,
					PendingID: "OFFLINE-1234",
				}, nil)
			},
			expectedCode:     http.StatusOK,
			expectedFragment: `"mode":"OFFLINE"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			resp, message := utils.TestRequest(t, testServer, "POST", "/api/orders", tc.headers, tc.body())
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedCode, resp.StatusCode)
			if tc.expectedFragment != "" {
				assert.Contains(t, message, tc.expectedFragment)
			}
		})
	}
}

// Тестирование маршрутов статуса и ручной синхронизации
func TestSyncRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authServiceMock := mock_models.NewMockAuthService(ctrl)
	jwtServiceMock := mock_models.NewMockJWTService(ctrl)
	syncServiceMock := mock_models.NewMockOrderSyncService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, authServiceMock, jwtServiceMock, syncServiceMock).get(),
	)
	defer testServer.Close()

	headers := map[string]string{"Authorization": "Bearer token"}

	t.Run("Должен вернуть состояние синхронизации", func(t *testing.T) {
		jwtServiceMock.EXPECT().ValidateToken("token").Return(cashierToken(), nil)
		authServiceMock.EXPECT().GetUser(gomock.Any(), "cashier").Return(&models.User{ID: "user-1", Login: "cashier"}, nil)
		syncServiceMock.EXPECT().Status().Return(models.SyncStatus{Online: false, Syncing: false, PendingOrders: 3})

		resp, message := utils.TestRequest(t, testServer, "GET", "/api/sync/status", headers, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"online":false,"syncing":false,"pending_orders":3}`, message)
	})

	t.Run("Должен запустить ручной разбор очереди", func(t *testing.T) {
		jwtServiceMock.EXPECT().ValidateToken("token").Return(cashierToken(), nil)
		authServiceMock.EXPECT().GetUser(gomock.Any(), "cashier").Return(&models.User{ID: "user-1", Login: "cashier"}, nil)

		done := make(chan struct{})
		syncServiceMock.EXPECT().SyncPendingOrders(gomock.Any()).DoAndReturn(func(context.Context) error {
			close(done)
			return nil
		})

		resp, _ := utils.TestRequest(t, testServer, "POST", "/api/orders/sync", headers, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusAccepted, resp.StatusCode)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("разбор очереди не был запущен")
		}
	})
}
