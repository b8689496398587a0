package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Renal37/restaurant-pos/internal/models"
	"github.com/Renal37/restaurant-pos/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id string) models.Order {
	return models.Order{
		ID: id,
		Lines: []models.OrderLine{
			{MenuItemID: "menu-1", Quantity: 1, Price: 100},
		},
		Total:         100,
		PaymentMethod: models.PaymentCash,
		Type:          models.OrderTypeTakeout,
		CreatedAt:     utils.RFC3339Date{Time: time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)},
		CreatedBy:     "user-1",
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "queue.json"))

	orders, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestLoadCorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := New(path)

	orders, err := store.Load()

	require.NoError(t, err, "повреждённый файл не должен быть фатальным")
	assert.Empty(t, orders)
}

func TestLoadUnknownVersionFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":99,"orders":[{"id":"X"}]}`), 0o644))

	store := New(path)

	orders, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestAppendSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")

	store := New(path)
	require.NoError(t, store.Append(testOrder("OFFLINE-1")))
	require.NoError(t, store.Append(testOrder("OFFLINE-2")))

	// Новый экземпляр читает тот же файл - имитация перезапуска терминала.
	restarted := New(path)

	orders, err := restarted.Load()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "OFFLINE-1", orders[0].ID)
	assert.Equal(t, "OFFLINE-2", orders[1].ID)

	size, err := restarted.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestAppendPreservesCreationTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	saleTime := time.Date(2025, 11, 3, 18, 45, 12, 0, time.UTC)

	order := testOrder("OFFLINE-1")
	order.CreatedAt = utils.RFC3339Date{Time: saleTime}

	store := New(path)
	require.NoError(t, store.Append(order))

	orders, err := New(path).Load()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].CreatedAt.Time.Equal(saleTime))
}

func TestRemoveMatching(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "queue.json"))
	require.NoError(t, store.Append(testOrder("OFFLINE-1")))
	require.NoError(t, store.Append(testOrder("OFFLINE-2")))
	require.NoError(t, store.Append(testOrder("OFFLINE-3")))

	err := store.RemoveMatching(map[string]struct{}{
		"OFFLINE-1": {},
		"OFFLINE-3": {},
		"OFFLINE-9": {}, // отсутствующий идентификатор - не ошибка
	})

	require.NoError(t, err)

	orders, loadErr := store.Load()
	require.NoError(t, loadErr)
	require.Len(t, orders, 1)
	assert.Equal(t, "OFFLINE-2", orders[0].ID)
}

func TestRemoveMatchingEmptySet(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "queue.json"))
	require.NoError(t, store.Append(testOrder("OFFLINE-1")))

	require.NoError(t, store.RemoveMatching(map[string]struct{}{}))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}
