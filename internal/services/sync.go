package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Renal37/restaurant-pos/internal/logger"
	"github.com/Renal37/restaurant-pos/internal/models"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Определяем ошибки валидации заказа
var (
	ErrOrderHasNoLines        = errors.New("заказ не содержит позиций")
	ErrOrderLineInvalid       = errors.New("позиция заказа некорректна")
	ErrOrderTotalInvalid      = errors.New("сумма заказа некорректна")
	ErrPaymentMethodUnknown   = errors.New("способ оплаты неизвестен")
	ErrDeliveryInfoIncomplete = errors.New("для доставки не указан адрес")
)

// drainBatchSize - число заказов, отправляемых одновременно при разборе
// очереди. Пакеты идут строго последовательно, что ограничивает нагрузку на
// хранилище сразу после восстановления связи.
const drainBatchSize = 5

// SyncService - единая точка сохранения заказов и разбора локальной очереди.
//
// Каждый заказ либо сразу пишется в удалённое хранилище, либо при
// недоступности сети кладётся в очередь под временным идентификатором.
// Очередь разбирается при переходе в онлайн и по ручному запросу; из неё
// удаляются только заказы, подтверждённые хранилищем.
type SyncService struct {
	writer       syncOrderWriter
	store        pendingOrderStore
	connectivity connectivityState

	draining int32 // 1 - разбор очереди уже идёт
}

type syncOrderWriter interface {
	Write(ctx context.Context, order models.Order, actingUserID string) (*models.RemoteOrderRecord, error)
}

type pendingOrderStore interface {
	Load() ([]models.Order, error)
	Append(order models.Order) error
	RemoveMatching(ids map[string]struct{}) error
	Size() (int, error)
}

type connectivityState interface {
	IsOnline() bool
	SetState(online bool)
}

func NewSyncService(writer syncOrderWriter, store pendingOrderStore, connectivity connectivityState) *SyncService {
	return &SyncService{
		writer:       writer,
		store:        store,
		connectivity: connectivity,
	}
}

// VerifyOrder проверяет корректность заказа до любой попытки записи.
func (s *SyncService) VerifyOrder(order models.Order) error {
	if len(order.Lines) == 0 {
		return ErrOrderHasNoLines
	}

	for _, line := range order.Lines {
		if line.MenuItemID == "" || line.Quantity <= 0 || line.Price < 0 {
			return ErrOrderLineInvalid
		}
	}

	if order.Total <= 0 {
		return ErrOrderTotalInvalid
	}

	switch order.PaymentMethod {
	case models.PaymentCash, models.PaymentCard, models.PaymentQR:
	default:
		return ErrPaymentMethodUnknown
	}

	if order.Type == models.OrderTypeDelivery && (order.Delivery == nil || order.Delivery.Address == "") {
		return ErrDeliveryInfoIncomplete
	}

	return nil
}

// SaveOrder сохраняет заказ: онлайн - сразу в удалённое хранилище, при
// недоступности сети - в локальную очередь под временным идентификатором.
//
// В очередь попадают только сетевые сбои. Отказ по существу (нарушение
// ограничений, некорректные данные) возвращается вызывающей стороне как
// ошибка: повторять его бессмысленно, а маскировать под "офлайн" опасно.
func (s *SyncService) SaveOrder(ctx context.Context, order models.Order, actingUserID string) (*models.SaveResult, error) {
	if s.connectivity.IsOnline() {
		record, err := s.writer.Write(ctx, order, actingUserID)
		if err == nil {
			logger.Log.Info("заказ записан онлайн",
				zap.String("orderID", record.ID),
				zap.Int64("seqNumber", record.SequenceNumber),
			)
			return &models.SaveResult{Mode: models.SaveModeOnline, Record: record}, nil
		}

		if !IsNetworkError(err) {
			return nil, err
		}

		logger.Log.Info("запись заказа сорвалась по сети, заказ уходит в локальную очередь", zap.Error(err))
		s.connectivity.SetState(false)
	}

	queued := order
	queued.ID = offlinePlaceholderID()
	queued.CreatedBy = actingUserID

	if err := s.store.Append(queued); err != nil {
		return nil, fmt.Errorf("не удалось сохранить заказ в локальную очередь: %w", err)
	}

	logger.Log.Info("заказ сохранён офлайн",
		zap.String("pendingID", queued.ID),
		zap.Time("createdAt", queued.CreatedAt.Time),
	)

	return &models.SaveResult{Mode: models.SaveModeOffline, PendingID: queued.ID}, nil
}

// SyncPendingOrders разбирает локальную очередь пакетами. Если разбор уже
// идёт, вызов ничего не делает: два разбора одной очереди привели бы к
// дублированию заказов.
//
// Разбор работает со снимком очереди, снятым до пакетов: заказы, добавленные
// во время разбора, будут обработаны следующим вызовом. Из хранилища очереди
// удаляются ровно те заказы из снимка, запись которых подтверждена; сбойные
// остаются до следующего раза.
func (s *SyncService) SyncPendingOrders(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.draining, 0, 1) {
		return nil
	}
	defer atomic.StoreInt32(&s.draining, 0)

	snapshot, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("не удалось загрузить очередь: %w", err)
	}

	if len(snapshot) == 0 {
		return nil
	}

	logger.Log.Info("разбор локальной очереди", zap.Int("count", len(snapshot)))

	synced := make(map[string]struct{})
	var drainErrs *multierror.Error
	var mu sync.Mutex

	for start := 0; start < len(snapshot); start += drainBatchSize {
		batch := snapshot[start:min(start+drainBatchSize, len(snapshot))]

		var wg sync.WaitGroup
		for _, order := range batch {
			wg.Add(1)
			go func(order models.Order) {
				defer wg.Done()

				record, err := s.writer.Write(ctx, order, order.CreatedBy)

				mu.Lock()
				defer mu.Unlock()

				if err != nil {
					logger.Log.Error("заказ из очереди не синхронизировался, остаётся в очереди",
						zap.String("pendingID", order.ID),
						zap.Error(err),
					)
					drainErrs = multierror.Append(drainErrs, fmt.Errorf("заказ %s: %w", order.ID, err))
					return
				}

				synced[order.ID] = struct{}{}
				logger.Log.Info("заказ из очереди синхронизирован",
					zap.String("pendingID", order.ID),
					zap.String("orderID", record.ID),
					zap.Int64("seqNumber", record.SequenceNumber),
				)
			}(order)
		}
		wg.Wait()
	}

	if len(synced) > 0 {
		if err := s.store.RemoveMatching(synced); err != nil {
			drainErrs = multierror.Append(drainErrs, fmt.Errorf("не удалось убрать синхронизированные заказы из очереди: %w", err))
		}
	}

	return drainErrs.ErrorOrNil()
}

// HandleConnectivityChange - подписка на переходы состояния сети. Переход в
// онлайн запускает один разбор очереди.
func (s *SyncService) HandleConnectivityChange(online bool) {
	if !online {
		count, _ := s.store.Size()
		logger.Log.Info("терминал перешёл в офлайн", zap.Int("pendingOrders", count))
		return
	}

	go func() {
		if err := s.SyncPendingOrders(context.Background()); err != nil {
			logger.Log.Error("разбор очереди завершился с ошибками", zap.Error(err))
		}
	}()
}

// Status возвращает наблюдаемое состояние синхронизации для терминала.
func (s *SyncService) Status() models.SyncStatus {
	count, err := s.store.Size()
	if err != nil {
		logger.Log.Error("не удалось получить размер очереди", zap.Error(err))
	}

	return models.SyncStatus{
		Online:        s.connectivity.IsOnline(),
		Syncing:       atomic.LoadInt32(&s.draining) == 1,
		PendingOrders: count,
	}
}

func offlinePlaceholderID() string {
	return fmt.Sprintf("OFFLINE-%d", time.Now().UnixNano())
}
