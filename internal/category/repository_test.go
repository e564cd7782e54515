package category

import (
	"context"
	"testing"

	"sushi-be/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryColumns = []string{"id", "name_ru", "name_en", "name_uk", "name_nl", "slug"}

func TestRepository_GetCategories(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .* FROM categories`).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(1, "Роллы", "Rolls", "Роли", "Rollen", "rolls").
			AddRow(2, "Сеты", "Sets", "Сети", "Sets", "sets"))

	categories, err := repo.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Роллы", categories[0].NameRu)
	assert.Equal(t, "sets", categories[1].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMenu(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .* FROM categories`).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(1, "Роллы", "Rolls", "Роли", "Rollen", "rolls").
			AddRow(2, "Напитки", "Drinks", "Напої", "Dranken", "drinks"))

	productColumns := []string{
		"id", "category_id",
		"name_ru", "name_en", "name_uk", "name_nl",
		"ingredients_ru", "ingredients_en", "ingredients_uk", "ingredients_nl",
		"price", "image_url", "is_popular", "is_recommended", "status",
	}
	mock.ExpectQuery(`SELECT .* FROM products p`).
		WithArgs(product.StatusActive).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(10, 1, "Филадельфия", "Philadelphia", "Філадельфія", "Philadelphia",
				"лосось, сыр", "salmon, cheese", "лосось, сир", "zalm, kaas",
				450.0, "/img/phil.jpg", true, false, product.StatusActive).
			AddRow(11, 1, "Калифорния", "California", "Каліфорнія", "California",
				"краб, авокадо", "crab, avocado", "краб, авокадо", "krab, avocado",
				380.0, "/img/cali.jpg", false, true, product.StatusActive))

	menu, err := repo.GetMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)

	assert.Equal(t, "rolls", menu[0].Slug)
	require.Len(t, menu[0].Products, 2)
	assert.Equal(t, "Филадельфия", menu[0].Products[0].NameRu)
	assert.Equal(t, uint(1), menu[0].Products[1].CategoryID)

	// Drinks has no active products, nested list stays an empty slice.
	require.NotNil(t, menu[1].Products)
	assert.Len(t, menu[1].Products, 0)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	input := UpsertInput{NameRu: "Десерты", NameEn: "Desserts", Slug: "desserts"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO categories`).
			WithArgs("Десерты", "Desserts", "", "", "desserts").
			WillReturnRows(sqlmock.NewRows(categoryColumns).
				AddRow(4, "Десерты", "Desserts", "", "", "desserts"))

		c, err := repo.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, uint(4), c.ID)
		assert.Equal(t, "desserts", c.Slug)
	})

	t.Run("DuplicateSlug", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO categories`).
			WithArgs("Десерты", "Desserts", "", "", "desserts").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "categories_slug_key"})

		_, err := repo.Create(ctx, input)
		assert.ErrorIs(t, err, ErrSlugExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	input := UpsertInput{NameRu: "Роллы", Slug: "rolls"}

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE categories`).
			WithArgs("Роллы", "", "", "", "rolls", 99).
			WillReturnRows(sqlmock.NewRows(categoryColumns))

		_, err := repo.Update(ctx, 99, input)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE categories`).
			WithArgs("Роллы", "", "", "", "rolls", 1).
			WillReturnRows(sqlmock.NewRows(categoryColumns).
				AddRow(1, "Роллы", "", "", "", "rolls"))

		c, err := repo.Update(ctx, 1, input)
		require.NoError(t, err)
		assert.Equal(t, uint(1), c.ID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM categories`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 3))
	})

	t.Run("StillReferencedByProducts", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM categories`).
			WithArgs(1).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "products_category_id_fkey"})

		assert.ErrorIs(t, repo.Delete(ctx, 1), ErrInUse)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM categories`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 99), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
