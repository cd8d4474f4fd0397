package main

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// ensureAdmin — crea en base vacía, no duplica en la segunda corrida
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureAdmin_CreaEnBaseVacia(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())

	created, err := ensureAdmin(repo, "admin", "admin12345")
	require.NoError(t, err)
	assert.True(t, created, "con la base vacía el admin debe crearse")

	admin, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin12345")))
}

func TestEnsureAdmin_EsIdempotente(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())

	created, err := ensureAdmin(repo, "admin", "admin12345")
	require.NoError(t, err)
	require.True(t, created)

	again, err := ensureAdmin(repo, "admin", "otra-clave")
	require.NoError(t, err)
	assert.False(t, again, "la segunda corrida no crea ni reescribe")

	admin, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin12345")),
		"la contraseña original se conserva")
}

// ──────────────────────────────────────────────────────────────────────────────
// ensureProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureProduct_CreaYLuegoOmite(t *testing.T) {
	repo := memory.NewProductRepository(memory.NewStore())

	for _, p := range demoProducts() {
		created, err := ensureProduct(repo, p)
		require.NoError(t, err)
		assert.True(t, created, "producto %s debe crearse en base vacía", p.Code)
	}

	for _, p := range demoProducts() {
		created, err := ensureProduct(repo, p)
		require.NoError(t, err)
		assert.False(t, created, "producto %s ya existe y se omite", p.Code)
	}

	got, err := repo.GetByCode("DEMO-001")
	require.NoError(t, err)
	assert.Equal(t, "Arroz 500g", got.Name)
	assert.Equal(t, 120, got.StockQuantity)
}
