package services

import (
	"context"
	"fmt"

	"github.com/Renal37/restaurant-pos/internal/database"
	"github.com/Renal37/restaurant-pos/internal/logger"
	"github.com/Renal37/restaurant-pos/internal/models"
	"go.uber.org/zap"
)

// OrderWriterService выполняет полную запись одного заказа в удалённое
// хранилище: шапка, строки, списание склада.
type OrderWriterService struct {
	storage   orderWriterStorage
	inventory inventoryDeductor
}

// Интерфейс хранилища для записи заказов
type orderWriterStorage interface {
	InsertOrderHeader(ctx context.Context, header database.OrderHeaderDB) (string, int64, error)
	InsertOrderLines(ctx context.Context, orderID string, lines []database.OrderLineDB) error
	DeleteOrderHeader(ctx context.Context, orderID string) error
}

type inventoryDeductor interface {
	DeductForSoldItems(ctx context.Context, items []models.SoldItem, actingUserID string) error
}

func NewOrderWriterService(storage orderWriterStorage, inventory inventoryDeductor) *OrderWriterService {
	return &OrderWriterService{storage: storage, inventory: inventory}
}

// Write записывает заказ и возвращает выданные сервером идентификаторы.
//
// Хранилище не даёт многошаговых транзакций на этом уровне, поэтому при
// сбое записи строк выполняется компенсирующее удаление шапки. Компенсация
// best-effort: её собственный сбой оставляет осиротевшую шапку, что громко
// логируется. Сбой списания склада не считается сбоем заказа.
func (ow *OrderWriterService) Write(ctx context.Context, order models.Order, actingUserID string) (*models.RemoteOrderRecord, error) {
	header := database.OrderHeaderDB{
		Total:         order.Total,
		CashReceived:  order.CashReceived,
		ChangeDue:     order.ChangeDue,
		PaymentMethod: string(order.PaymentMethod),
		PaymentRef:    order.PaymentRef,
		Discount:      order.Discount,
		OrderType:     string(order.Type),
		CreatedAt:     order.CreatedAt.Time,
		CreatedBy:     actingUserID,
	}

	if order.Delivery != nil {
		header.DeliveryAddress = order.Delivery.Address
		header.DeliveryContact = order.Delivery.Contact
		if order.Delivery.ScheduledAt != nil {
			header.DeliveryTime = &order.Delivery.ScheduledAt.Time
		}
	}

	orderID, seqNumber, err := ow.storage.InsertOrderHeader(ctx, header)
	if err != nil {
		return nil, fmt.Errorf("не удалось записать шапку заказа: %w", err)
	}

	lines := make([]database.OrderLineDB, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = database.OrderLineDB{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Price:      line.Price,
			Weight:     line.Weight,
		}
	}

	if err := ow.storage.InsertOrderLines(ctx, orderID, lines); err != nil {
		if delErr := ow.storage.DeleteOrderHeader(ctx, orderID); delErr != nil {
			logger.Log.Error("компенсирующее удаление шапки не удалось, в хранилище осталась осиротевшая шапка",
				zap.String("orderID", orderID),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("не удалось записать строки заказа: %w", err)
	}

	if err := ow.inventory.DeductForSoldItems(ctx, order.SoldItems(), actingUserID); err != nil {
		logger.Log.Error("списание склада по заказу не удалось, заказ сохранён",
			zap.String("orderID", orderID),
			zap.Error(err),
		)
	}

	return &models.RemoteOrderRecord{ID: orderID, SequenceNumber: seqNumber}, nil
}
