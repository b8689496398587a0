package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Renal37/restaurant-pos/internal/logger"
	"github.com/Renal37/restaurant-pos/internal/models"
	"go.uber.org/zap"
)

// queueFileVersion - версия схемы файла очереди. Записи с неизвестной версией
// считаются нечитаемыми и очередь начинается заново.
const queueFileVersion = 1

type queueFile struct {
	Version int            `json:"version"`
	Orders  []models.Order `json:"orders"`
}

// PendingStore - локальная очередь заказов, ещё не подтверждённых удалённым
// хранилищем. Очередь целиком сериализуется в один JSON-файл при каждой
// мутации и переживает перезапуск терминала. Размер очереди ограничен
// длительностью сбоя и темпом продаж одной кассы, поэтому полная перезапись
// файла допустима.
type PendingStore struct {
	path string
	mu   sync.Mutex
}

func New(path string) *PendingStore {
	return &PendingStore{path: path}
}

// Load возвращает сохранённую очередь. Отсутствующий или повреждённый файл
// не является ошибкой: очередь в этом случае пуста.
func (s *PendingStore) Load() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Append добавляет заказ в конец очереди и синхронно сохраняет файл.
func (s *PendingStore) Append(order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}

	return s.persist(append(orders, order))
}

// RemoveMatching удаляет из очереди все заказы, идентификаторы которых входят
// в переданное множество. Отсутствующие идентификаторы игнорируются.
func (s *PendingStore) RemoveMatching(ids map[string]struct{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}

	remaining := orders[:0]
	for _, order := range orders {
		if _, ok := ids[order.ID]; !ok {
			remaining = append(remaining, order)
		}
	}

	return s.persist(remaining)
}

// Size возвращает количество заказов в очереди для индикатора на терминале.
func (s *PendingStore) Size() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return 0, err
	}

	return len(orders), nil
}

func (s *PendingStore) load() ([]models.Order, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Order{}, nil
		}
		return nil, fmt.Errorf("ошибка чтения файла очереди: %w", err)
	}

	var file queueFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Log.Warn("файл очереди повреждён, очередь сброшена",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return []models.Order{}, nil
	}

	if file.Version != queueFileVersion {
		logger.Log.Warn("неизвестная версия файла очереди, очередь сброшена",
			zap.String("path", s.path),
			zap.Int("version", file.Version),
		)
		return []models.Order{}, nil
	}

	if file.Orders == nil {
		return []models.Order{}, nil
	}

	return file.Orders, nil
}

// persist записывает очередь во временный файл и атомарно подменяет им
// основной, чтобы сбой питания посреди записи не уничтожил прежнюю очередь.
func (s *PendingStore) persist(orders []models.Order) error {
	data, err := json.Marshal(queueFile{Version: queueFileVersion, Orders: orders})
	if err != nil {
		return fmt.Errorf("ошибка сериализации очереди: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ошибка создания каталога очереди: %w", err)
	}

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("ошибка записи файла очереди: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("ошибка подмены файла очереди: %w", err)
	}

	return nil
}
