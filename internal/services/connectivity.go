package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Renal37/restaurant-pos/internal/logger"
	"go.uber.org/zap"
)

// Prober проверяет доступность удалённого хранилища одним запросом.
type Prober interface {
	Probe(ctx context.Context) error
}

// ConnectivityMonitor отслеживает доступность сети и извещает подписчиков о
// переходах онлайн/офлайн. Монитор пассивен: он не ретраит и не чинит
// соединение, а лишь сообщает его состояние.
type ConnectivityMonitor struct {
	prober   Prober
	interval time.Duration

	online      int32 // 1 - онлайн, 0 - офлайн
	mu          sync.Mutex
	subscribers []func(online bool)
}

// NewConnectivityMonitor создает монитор с начальным состоянием, определённым
// при старте терминала. Подписчики о начальном состоянии не извещаются.
func NewConnectivityMonitor(prober Prober, interval time.Duration, initialOnline bool) *ConnectivityMonitor {
	m := &ConnectivityMonitor{prober: prober, interval: interval}
	if initialOnline {
		m.online = 1
	}
	return m
}

// IsOnline возвращает текущее состояние сети.
func (m *ConnectivityMonitor) IsOnline() bool {
	return atomic.LoadInt32(&m.online) == 1
}

// Subscribe регистрирует обработчик переходов состояния. Обработчик вызывается
// ровно один раз на каждый переход, синхронно в горутине, зафиксировавшей переход.
func (m *ConnectivityMonitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// SetState фиксирует новое состояние сети. Повторная установка того же
// состояния ничего не делает. Кроме цикла проб, состояние выставляет и
// оркестратор синхронизации: сетевая ошибка на живой записи переводит
// терминал в офлайн, не дожидаясь следующей пробы.
func (m *ConnectivityMonitor) SetState(online bool) {
	var val int32
	if online {
		val = 1
	}

	if prev := atomic.SwapInt32(&m.online, val); prev == val {
		return
	}

	logger.Log.Info("состояние сети изменилось", zap.Bool("online", online))

	m.mu.Lock()
	subscribers := make([]func(online bool), len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.Unlock()

	for _, fn := range subscribers {
		fn(online)
	}
}

// Run периодически опрашивает хранилище до отмены контекста.
func (m *ConnectivityMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SetState(m.prober.Probe(ctx) == nil)
		}
	}
}
