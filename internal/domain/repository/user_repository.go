package repository

import "github.com/jhoicas/retail-pos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (borde de identidad).
// Contrato de fila ausente: los Get* retornan (nil, domain.ErrUserNotFound),
// nunca (nil, nil).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
