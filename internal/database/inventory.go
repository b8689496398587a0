package database

import (
	"context"
	"fmt"
)

// SQL-запросы для списания ингредиентов со склада
const (
	SelectRecipeIngredientsQuery = `
		SELECT
			ingredient_id,
			amount_per_unit
		FROM
		    recipe_ingredients
		WHERE
		    menu_item_id = $1
	`
	DeductIngredientStockQuery = `
		UPDATE
			ingredients
		SET
			stock_quantity = stock_quantity - $2,
			updated_by = $3
		WHERE
		    id = $1
	`
)

// RecipeIngredientDB - ингредиент рецепта с расходом на единицу блюда.
type RecipeIngredientDB struct {
	IngredientID  string
	AmountPerUnit float64
}

// FindRecipeIngredients возвращает состав рецепта для пункта меню.
func (d *Database) FindRecipeIngredients(ctx context.Context, menuItemID string) (*[]RecipeIngredientDB, error) {
	var result []RecipeIngredientDB

	rows, err := d.db.Query(ctx, SelectRecipeIngredientsQuery, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска ингредиентов рецепта: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item RecipeIngredientDB
		if err := rows.Scan(&item.IngredientID, &item.AmountPerUnit); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с ингредиентом: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return &result, nil
}

// DeductIngredientStock уменьшает складской остаток ингредиента.
func (d *Database) DeductIngredientStock(ctx context.Context, ingredientID string, amount float64, actingUserID string) error {
	if _, err := d.db.Exec(ctx, DeductIngredientStockQuery, ingredientID, amount, actingUserID); err != nil {
		return fmt.Errorf("ошибка списания ингредиента %s: %w", ingredientID, err)
	}
	return nil
}
