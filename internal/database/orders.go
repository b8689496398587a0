package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Определение пользовательских ошибок
var (
	ErrUnknownMenuItem = errors.New("позиция меню не существует") // Нарушение внешнего ключа на пункт меню
)

// SQL-запросы для работы с заказами
const (
	InsertOrderHeaderQuery = `
		INSERT INTO
			orders (
				total,
				cash_received,
				change_due,
				payment_method,
				payment_ref,
				discount,
				order_type,
				delivery_address,
				delivery_contact,
				delivery_time,
				created_at,
				created_by,
				updated_by
			)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id, seq_number
	`
	InsertOrderLineQuery = `
		INSERT INTO
			order_items (order_id, menu_item_id, quantity, price, weight)
		VALUES ($1, $2, $3, $4, $5)
	`
	DeleteOrderHeaderQuery = `
		DELETE FROM
			orders
		WHERE
		    id = $1
	`
)

// OrderHeaderDB - шапка заказа в том виде, в котором она пишется в удалённое
// хранилище. CreatedAt передаётся вызывающей стороной и сохраняется дословно:
// время продажи не должно зависеть от момента синхронизации.
type OrderHeaderDB struct {
	Total           float64
	CashReceived    float64
	ChangeDue       float64
	PaymentMethod   string
	PaymentRef      string
	Discount        string
	OrderType       string
	DeliveryAddress string
	DeliveryContact string
	DeliveryTime    *time.Time
	CreatedAt       time.Time
	CreatedBy       string
}

// OrderLineDB - строка заказа со ссылкой на выданный сервером идентификатор шапки.
type OrderLineDB struct {
	MenuItemID string
	Quantity   int
	Price      float64
	Weight     *float64
}

// InsertOrderHeader пишет шапку заказа и возвращает выданные сервером
// идентификатор и порядковый номер заказа.
func (d *Database) InsertOrderHeader(ctx context.Context, header OrderHeaderDB) (string, int64, error) {
	var id string
	var seqNumber int64

	err := d.db.QueryRow(ctx, InsertOrderHeaderQuery,
		header.Total,
		header.CashReceived,
		header.ChangeDue,
		header.PaymentMethod,
		nullableString(header.PaymentRef),
		nullableString(header.Discount),
		header.OrderType,
		nullableString(header.DeliveryAddress),
		nullableString(header.DeliveryContact),
		header.DeliveryTime,
		header.CreatedAt,
		header.CreatedBy,
	).Scan(&id, &seqNumber)
	if err != nil {
		return "", 0, fmt.Errorf("ошибка записи шапки заказа: %w", err)
	}

	return id, seqNumber, nil
}

// InsertOrderLines пишет строки заказа, ссылающиеся на уже записанную шапку.
func (d *Database) InsertOrderLines(ctx context.Context, orderID string, lines []OrderLineDB) error {
	for _, line := range lines {
		_, err := d.db.Exec(ctx, InsertOrderLineQuery,
			orderID,
			line.MenuItemID,
			line.Quantity,
			line.Price,
			line.Weight,
		)
		if err != nil {
			var e *pgconn.PgError
			if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
				return fmt.Errorf("%w: %s", ErrUnknownMenuItem, line.MenuItemID)
			}
			return fmt.Errorf("ошибка записи строки заказа: %w", err)
		}
	}

	return nil
}

// DeleteOrderHeader удаляет шапку заказа. Применяется как компенсация, когда
// запись строк не удалась: строки удаляются каскадно вместе с шапкой.
func (d *Database) DeleteOrderHeader(ctx context.Context, orderID string) error {
	if _, err := d.db.Exec(ctx, DeleteOrderHeaderQuery, orderID); err != nil {
		return fmt.Errorf("ошибка удаления шапки заказа: %w", err)
	}
	return nil
}

// nullableString преобразует пустую строку в NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
