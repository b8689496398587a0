package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Renal37/restaurant-pos/internal/logger"
	"github.com/Renal37/restaurant-pos/internal/middlewares"
	"github.com/Renal37/restaurant-pos/internal/models"
	"go.uber.org/zap"
)

// SaveOrder - единственная точка записи заказа. Успешный ответ содержит режим
// сохранения: ONLINE с идентификаторами сервера либо OFFLINE с временным
// идентификатором очереди. Ошибка записи по существу возвращает 500: кассир
// должен знать, что заказ НЕ сохранён.
func SaveOrder(w http.ResponseWriter, r *http.Request) {
	order := middlewares.GetParsedJSONData[models.Order](w, r)
	syncService := middlewares.GetServiceFromContext[models.OrderSyncService](w, r, middlewares.OrderSyncServiceKey)
	user := middlewares.GetUserFromContext(w, r)

	if err := (*syncService).VerifyOrder(order); err != nil {
		http.Error(w, fmt.Sprintf("Заказ некорректен: %s", err.Error()), http.StatusUnprocessableEntity)
		return
	}

	result, err := (*syncService).SaveOrder(r.Context(), order, user.ID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Заказ не сохранён: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, result)
}

// SyncOrders - ручной запуск разбора локальной очереди ("повторить синхронизацию").
func SyncOrders(w http.ResponseWriter, r *http.Request) {
	syncService := middlewares.GetServiceFromContext[models.OrderSyncService](w, r, middlewares.OrderSyncServiceKey)

	go func() {
		if err := (*syncService).SyncPendingOrders(context.Background()); err != nil {
			logger.Log.Error("ручной разбор очереди завершился с ошибками", zap.Error(err))
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

// GetSyncStatus возвращает состояние сети, флаг синхронизации и размер очереди.
func GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	syncService := middlewares.GetServiceFromContext[models.OrderSyncService](w, r, middlewares.OrderSyncServiceKey)

	middlewares.EncodeJSONResponse(w, (*syncService).Status())
}
