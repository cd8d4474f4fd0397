package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// errorJSON traduce los errores centinela del dominio a estados HTTP.
// Los errores envueltos con %w se comparan con errors.Is.
func errorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrPhoneAlreadyExists), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Category:       p.Category,
		Brand:          p.Brand,
		Model:          p.Model,
		Price:          p.Price,
		CostPrice:      p.CostPrice,
		MRP:            p.MRP,
		WholesalePrice: p.WholesalePrice,
		StockQuantity:  p.StockQuantity,
		MinStockLevel:  p.MinStockLevel,
		IsLowStock:     p.IsLowStock(),
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toCustomerResponse(cu *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:             cu.ID,
		Name:           cu.Name,
		Phone:          cu.Phone,
		Email:          cu.Email,
		Address:        cu.Address,
		TotalPurchases: cu.TotalPurchases,
		LoyaltyPoints:  cu.LoyaltyPoints,
		CreatedAt:      cu.CreatedAt,
	}
}

func toAdjustmentResponse(a *entity.StockAdjustment) dto.StockAdjustmentResponse {
	return dto.StockAdjustmentResponse{
		ID:              a.ID,
		ProductID:       a.ProductID,
		UserID:          a.UserID,
		Type:            a.Type,
		QuantityBefore:  a.QuantityBefore,
		QuantityAfter:   a.QuantityAfter,
		QuantityChange:  a.QuantityChange,
		Reason:          a.Reason,
		Notes:           a.Notes,
		ReferenceNumber: a.ReferenceNumber,
		AdjustmentDate:  a.AdjustmentDate,
	}
}
