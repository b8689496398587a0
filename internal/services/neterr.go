package services

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsNetworkError сообщает, вызвана ли ошибка недоступностью сети и имеет ли
// смысл откладывать заказ в локальную очередь для повтора.
//
// Классификация структурная, по типам ошибок драйвера и сокета, а не по
// тексту сообщений. Любой ответ сервера (*pgconn.PgError) означает, что сеть
// работала и заказ был отвергнут по существу: такие ошибки повторять нельзя,
// они должны дойти до кассира как отказ.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	return false
}
