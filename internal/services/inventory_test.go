package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Renal37/restaurant-pos/internal/database"
	"github.com/Renal37/restaurant-pos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventoryStorageStub struct {
	recipes    map[string][]database.RecipeIngredientDB
	recipeErr  map[string]error
	deductErr  map[string]error
	deductions map[string]float64
}

func newInventoryStorageStub() *inventoryStorageStub {
	return &inventoryStorageStub{
		recipes:    map[string][]database.RecipeIngredientDB{},
		recipeErr:  map[string]error{},
		deductErr:  map[string]error{},
		deductions: map[string]float64{},
	}
}

func (s *inventoryStorageStub) FindRecipeIngredients(_ context.Context, menuItemID string) (*[]database.RecipeIngredientDB, error) {
	if err := s.recipeErr[menuItemID]; err != nil {
		return nil, err
	}
	recipe := s.recipes[menuItemID]
	return &recipe, nil
}

func (s *inventoryStorageStub) DeductIngredientStock(_ context.Context, ingredientID string, amount float64, _ string) error {
	if err := s.deductErr[ingredientID]; err != nil {
		return err
	}
	s.deductions[ingredientID] += amount
	return nil
}

func TestDeductForSoldItems(t *testing.T) {
	storage := newInventoryStorageStub()
	storage.recipes["pizza"] = []database.RecipeIngredientDB{
		{IngredientID: "flour", AmountPerUnit: 0.3},
		{IngredientID: "cheese", AmountPerUnit: 0.2},
	}
	storage.recipes["tea"] = []database.RecipeIngredientDB{
		{IngredientID: "tea-leaves", AmountPerUnit: 0.01},
	}

	service := NewInventoryService(storage)

	err := service.DeductForSoldItems(context.Background(), []models.SoldItem{
		{MenuItemID: "pizza", Quantity: 2},
		{MenuItemID: "tea", Quantity: 3},
	}, "user-1")

	require.NoError(t, err)
	assert.InDelta(t, 0.6, storage.deductions["flour"], 1e-9)
	assert.InDelta(t, 0.4, storage.deductions["cheese"], 1e-9)
	assert.InDelta(t, 0.03, storage.deductions["tea-leaves"], 1e-9)
}

func TestDeductForSoldItemsContinuesAfterFailure(t *testing.T) {
	storage := newInventoryStorageStub()
	storage.recipes["pizza"] = []database.RecipeIngredientDB{
		{IngredientID: "flour", AmountPerUnit: 0.3},
	}
	storage.recipes["tea"] = []database.RecipeIngredientDB{
		{IngredientID: "tea-leaves", AmountPerUnit: 0.01},
	}
	storage.recipeErr["pizza"] = errors.New("ошибка поиска ингредиентов рецепта")

	service := NewInventoryService(storage)

	err := service.DeductForSoldItems(context.Background(), []models.SoldItem{
		{MenuItemID: "pizza", Quantity: 1},
		{MenuItemID: "tea", Quantity: 1},
	}, "user-1")

	require.Error(t, err, "сбой по одной позиции должен попасть в агрегат")
	assert.InDelta(t, 0.01, storage.deductions["tea-leaves"], 1e-9, "остальные позиции списываются несмотря на сбой")
}

func TestDeductForSoldItemsWithoutRecipe(t *testing.T) {
	service := NewInventoryService(newInventoryStorageStub())

	err := service.DeductForSoldItems(context.Background(), []models.SoldItem{
		{MenuItemID: "unknown", Quantity: 1},
	}, "user-1")

	assert.NoError(t, err, "позиция без рецепта списания не требует")
}
