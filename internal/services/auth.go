package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/restaurant-pos/internal/database"
	"github.com/Renal37/restaurant-pos/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Определение пользовательских ошибок
var (
	ErrUserIsAlreadyRegistered = errors.New("пользователь уже зарегистрирован")
	ErrUserIsNotExist          = errors.New("пользователь не существует")
	ErrPasswordIsIncorrect     = errors.New("пароль неверен")
	ErrUserDataIsIncomplete    = errors.New("не указан логин или пароль")
)

// AuthService представляет сервис аутентификации сотрудников кассы
type AuthService struct {
	storage authStorage
}

// Интерфейс хранилища для работы с учётными записями
type authStorage interface {
	CreateUser(ctx context.Context, user database.UserDB) error
	FindUser(ctx context.Context, login string) (*database.UserDB, error)
}

func NewAuthService(storage authStorage) *AuthService {
	return &AuthService{storage: storage}
}

// Register регистрирует нового сотрудника
func (auth *AuthService) Register(ctx context.Context, user models.UnknownUser) error {
	if user.Login == nil || user.Password == nil {
		return ErrUserDataIsIncomplete
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хэширования пароля: %w", err)
	}

	err = auth.storage.CreateUser(ctx, database.UserDB{
		User: models.User{Login: *user.Login, Hash: string(hash)},
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			return ErrUserIsAlreadyRegistered
		}
		return fmt.Errorf("ошибка регистрации пользователя: %w", err)
	}

	return nil
}

// Login проверяет логин и пароль сотрудника
func (auth *AuthService) Login(ctx context.Context, user models.UnknownUser) error {
	if user.Login == nil || user.Password == nil {
		return ErrUserDataIsIncomplete
	}

	found, err := auth.storage.FindUser(ctx, *user.Login)
	if err != nil {
		return fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	if found == nil {
		return ErrUserIsNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Hash), []byte(*user.Password)); err != nil {
		return ErrPasswordIsIncorrect
	}

	return nil
}

// GetUser возвращает сотрудника по логину
func (auth *AuthService) GetUser(ctx context.Context, login string) (*models.User, error) {
	found, err := auth.storage.FindUser(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	if found == nil {
		return nil, ErrUserIsNotExist
	}

	return &found.User, nil
}
