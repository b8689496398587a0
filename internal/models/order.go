package models

import (
	"github.com/Renal37/restaurant-pos/internal/utils"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentQR   PaymentMethod = "QR"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeout  OrderType = "TAKEOUT"
	OrderTypeDelivery OrderType = "DELIVERY"
)

// OrderLine представляет одну позицию чека: ссылку на пункт меню, количество
// и цену на момент продажи. Вес заполняется только для весовых товаров.
type OrderLine struct {
	MenuItemID string   `json:"menu_item_id"`
	Quantity   int      `json:"quantity"`
	Price      float64  `json:"price"`
	Weight     *float64 `json:"weight,omitempty"`
}

// DeliveryInfo содержит данные доставки для заказов типа DELIVERY.
type DeliveryInfo struct {
	Address     string             `json:"address"`
	Contact     string             `json:"contact,omitempty"`
	ScheduledAt *utils.RFC3339Date `json:"scheduled_at,omitempty"`
}

// Order - завершённая продажа на кассе.
//
// Пока заказ лежит в локальной очереди, ID содержит временный идентификатор
// с префиксом "OFFLINE-"; после успешной синхронизации сервер выдаёт
// постоянный идентификатор. CreatedAt фиксируется в момент продажи и не
// изменяется при отложенной синхронизации.
type Order struct {
	ID            string            `json:"id,omitempty"`
	Lines         []OrderLine       `json:"lines"`
	Total         float64           `json:"total"`
	CashReceived  float64           `json:"cash_received"`
	ChangeDue     float64           `json:"change_due"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	PaymentRef    string            `json:"payment_ref,omitempty"`
	Discount      string            `json:"discount,omitempty"`
	Type          OrderType         `json:"order_type"`
	Delivery      *DeliveryInfo     `json:"delivery,omitempty"`
	CreatedAt     utils.RFC3339Date `json:"created_at"`
	CreatedBy     string            `json:"created_by,omitempty"`
}

// SoldItems возвращает позиции заказа в виде, пригодном для списания со склада.
func (o *Order) SoldItems() []SoldItem {
	items := make([]SoldItem, len(o.Lines))
	for i, line := range o.Lines {
		items[i] = SoldItem{MenuItemID: line.MenuItemID, Quantity: line.Quantity}
	}
	return items
}

// SoldItem - проданная позиция для списания ингредиентов со склада.
type SoldItem struct {
	MenuItemID string
	Quantity   int
}

type SaveMode string

const (
	SaveModeOnline  SaveMode = "ONLINE"
	SaveModeOffline SaveMode = "OFFLINE"
)

// RemoteOrderRecord - идентификаторы, выданные удалённым хранилищем после записи заказа.
type RemoteOrderRecord struct {
	ID             string `json:"id"`
	SequenceNumber int64  `json:"sequence_number"`
}

// SaveResult - итог сохранения заказа: записан онлайн либо поставлен в локальную очередь.
type SaveResult struct {
	Mode      SaveMode           `json:"mode"`
	Record    *RemoteOrderRecord `json:"record,omitempty"`
	PendingID string             `json:"pending_id,omitempty"`
}

// SyncStatus - наблюдаемое состояние синхронизации для индикаторов терминала.
type SyncStatus struct {
	Online        bool `json:"online"`
	Syncing       bool `json:"syncing"`
	PendingOrders int  `json:"pending_orders"`
}
