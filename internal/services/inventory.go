package services

import (
	"context"
	"fmt"

	"github.com/Renal37/restaurant-pos/internal/database"
	"github.com/Renal37/restaurant-pos/internal/models"
	"github.com/hashicorp/go-multierror"
)

// InventoryService списывает ингредиенты со склада по рецептам проданных блюд.
type InventoryService struct {
	storage inventoryStorage
}

// Интерфейс хранилища для работы со складом
type inventoryStorage interface {
	FindRecipeIngredients(ctx context.Context, menuItemID string) (*[]database.RecipeIngredientDB, error)
	DeductIngredientStock(ctx context.Context, ingredientID string, amount float64, actingUserID string) error
}

func NewInventoryService(storage inventoryStorage) *InventoryService {
	return &InventoryService{storage: storage}
}

// DeductForSoldItems списывает расход ингредиентов по всем проданным позициям.
// Позиции обрабатываются независимо: сбой по одной не прерывает списание по
// остальным, все ошибки собираются в один агрегат для лога вызывающей стороны.
func (i *InventoryService) DeductForSoldItems(ctx context.Context, items []models.SoldItem, actingUserID string) error {
	var deductErrs *multierror.Error

	for _, item := range items {
		ingredients, err := i.storage.FindRecipeIngredients(ctx, item.MenuItemID)
		if err != nil {
			deductErrs = multierror.Append(deductErrs, fmt.Errorf("позиция %s: %w", item.MenuItemID, err))
			continue
		}

		if ingredients == nil {
			continue
		}

		for _, ingredient := range *ingredients {
			amount := ingredient.AmountPerUnit * float64(item.Quantity)
			if err := i.storage.DeductIngredientStock(ctx, ingredient.IngredientID, amount, actingUserID); err != nil {
				deductErrs = multierror.Append(deductErrs, err)
			}
		}
	}

	return deductErrs.ErrorOrNil()
}
