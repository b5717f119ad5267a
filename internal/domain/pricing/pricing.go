package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
)

var half = decimal.NewFromFloat(0.5)

// ResolveUnitPrice resuelve el precio unitario efectivo de una venta según el tipo
// de cliente (servicio de dominio, función pura):
//   - Member: precio de lista del producto, ignora cualquier precio enviado.
//   - HP Client: mitad del precio de lista.
//   - Non-Member / Working Client: precio enviado, obligatorio > 0.
//   - cualquier otro valor: precio enviado si es > 0, si no el de lista.
func ResolveUnitPrice(clientType string, listPrice decimal.Decimal, supplied *decimal.Decimal) (decimal.Decimal, error) {
	switch clientType {
	case entity.ClientTypeMember:
		return listPrice, nil
	case entity.ClientTypeHPClient:
		return listPrice.Mul(half), nil
	case entity.ClientTypeNonMember, entity.ClientTypeWorkingClient:
		if supplied == nil || !supplied.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.ErrUnitPriceRequired
		}
		return *supplied, nil
	default:
		if supplied != nil && supplied.GreaterThan(decimal.Zero) {
			return *supplied, nil
		}
		return listPrice, nil
	}
}
