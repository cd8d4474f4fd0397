// seed aplica el esquema inicial y deja datos mínimos para desarrollo:
// un usuario admin y unos productos de demostración.
//
// Uso: go run ./cmd/seed [ruta/001_init.sql]
// Por defecto busca el esquema en internal/infrastructure/postgres/migrations.
// Credenciales del admin: SEED_ADMIN_USER / SEED_ADMIN_PASSWORD (por defecto
// admin / admin12345; cambiarlas en cualquier entorno que no sea local).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
	"github.com/jhoicas/retail-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-pos-api/pkg/config"
)

func main() {
	schemaPath := "internal/infrastructure/postgres/migrations/001_init.sql"
	if len(os.Args) > 1 {
		schemaPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer esquema: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		fmt.Fprintf(os.Stderr, "Aplicar esquema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Esquema aplicado:", schemaPath)

	username := envOr("SEED_ADMIN_USER", "admin")
	password := envOr("SEED_ADMIN_PASSWORD", "admin12345")

	created, err := ensureAdmin(postgres.NewUserRepository(pool), username, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Println("Usuario admin creado:", username)
	} else {
		fmt.Println("Usuario admin ya existe:", username)
	}

	productRepo := postgres.NewProductRepository(pool)
	for _, p := range demoProducts() {
		created, err := ensureProduct(productRepo, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear producto %s: %v\n", p.Code, err)
			os.Exit(1)
		}
		if created {
			fmt.Println("Producto creado:", p.Code, p.Name)
		}
	}

	fmt.Println("Seed completado")
}

// ensureAdmin crea el usuario admin si aún no existe. Los repos retornan
// ErrUserNotFound cuando no hay fila: ese es el caso que dispara el alta.
func ensureAdmin(userRepo repository.UserRepository, username, password string) (bool, error) {
	existing, err := userRepo.GetByUsername(username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.Create(admin); err != nil {
		return false, err
	}
	return true, nil
}

// ensureProduct crea el producto demo si su código aún no está registrado.
func ensureProduct(repo repository.ProductRepository, p *entity.Product) (bool, error) {
	existing, err := repo.GetByCode(p.Code)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := repo.Create(p); err != nil {
		return false, err
	}
	return true, nil
}

func demoProducts() []*entity.Product {
	return []*entity.Product{
		demoProduct("DEMO-001", "Arroz 500g", "Abarrotes", "28.00", "22.50", 120, 20),
		demoProduct("DEMO-002", "Aceite 1L", "Abarrotes", "145.00", "118.00", 40, 10),
		demoProduct("DEMO-003", "Jabón de baño", "Aseo", "32.00", "24.00", 80, 15),
	}
}

func demoProduct(code, name, category, price, cost string, stock, minLevel int) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{
		ID:             uuid.New().String(),
		Code:           code,
		Name:           name,
		Category:       category,
		Price:          decimal.RequireFromString(price),
		CostPrice:      decimal.RequireFromString(cost),
		MRP:            decimal.RequireFromString(price),
		WholesalePrice: decimal.RequireFromString(cost),
		StockQuantity:  stock,
		MinStockLevel:  minLevel,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
