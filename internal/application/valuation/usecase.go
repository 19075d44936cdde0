// Package valuation contiene el caso de uso de valorización de inventario:
// valor total, desgloses por categoría y por estado de stock, y top de
// medicamentos por valor. Todo read-only sobre un snapshot consistente.
package valuation

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hospimed/farmacia-api/internal/application/dto"
	"github.com/hospimed/farmacia-api/internal/domain/entity"
	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

const defaultTopValued = 5 // medicamentos en el top del reporte

var hundred = decimal.NewFromInt(100)

// UseCase genera el reporte de valorización.
//
// Fuente de datos: ValuationRepository.Snapshot (una sola vista consistente).
// Todos los derivados (porcentajes, ordenamientos) se calculan aquí sobre esa
// única lectura, de modo que los desgloses siempre suman 100%.
type UseCase struct {
	valuationRepo repository.ValuationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(valuationRepo repository.ValuationRepository) *UseCase {
	return &UseCase{valuationRepo: valuationRepo}
}

// Report construye el reporte completo. topN limita el top por valor; con cero
// o negativo se usa el default.
func (uc *UseCase) Report(ctx context.Context, topN int) (*dto.ValuationReportDTO, error) {
	if topN <= 0 {
		topN = defaultTopValued
	}

	medicines, err := uc.valuationRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("valuation: snapshot: %w", err)
	}

	total := decimal.Zero
	for _, m := range medicines {
		total = total.Add(m.StockValue())
	}

	return &dto.ValuationReportDTO{
		TotalValue: total.Round(2),
		TotalItems: len(medicines),
		ByCategory: breakdown(medicines, total, func(m *entity.Medicine) string {
			if m.CategoryName == "" {
				return "sin categoría"
			}
			return m.CategoryName
		}),
		ByStatus: breakdown(medicines, total, func(m *entity.Medicine) string {
			return m.StockStatus()
		}),
		TopValued: topValued(medicines, topN),
	}, nil
}

// breakdown agrupa por la clave dada y calcula valor, conteo y porcentaje por
// grupo, ordenado por valor descendente (empates por clave ascendente, para que
// el reporte sea determinista). Con total cero todos los porcentajes son 0.
func breakdown(medicines []*entity.Medicine, total decimal.Decimal, keyOf func(*entity.Medicine) string) []dto.ValuationBreakdownDTO {
	type group struct {
		count int
		value decimal.Decimal
	}
	groups := make(map[string]*group)
	for _, m := range medicines {
		key := keyOf(m)
		g, ok := groups[key]
		if !ok {
			g = &group{value: decimal.Zero}
			groups[key] = g
		}
		g.count++
		g.value = g.value.Add(m.StockValue())
	}

	rows := make([]dto.ValuationBreakdownDTO, 0, len(groups))
	for key, g := range groups {
		pct := decimal.Zero
		if total.GreaterThan(decimal.Zero) {
			pct = g.value.Div(total).Mul(hundred).Round(2)
		}
		rows = append(rows, dto.ValuationBreakdownDTO{
			Key:        key,
			ItemCount:  g.count,
			TotalValue: g.value.Round(2),
			Percentage: pct,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].TotalValue.Equal(rows[j].TotalValue) {
			return rows[i].TotalValue.GreaterThan(rows[j].TotalValue)
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// topValued devuelve los n medicamentos de mayor valor de inventario,
// descendente; empates por ID ascendente para un orden determinista.
func topValued(medicines []*entity.Medicine, n int) []dto.TopValuedDTO {
	sorted := make([]*entity.Medicine, len(medicines))
	copy(sorted, medicines)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].StockValue(), sorted[j].StockValue()
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]dto.TopValuedDTO, 0, len(sorted))
	for _, m := range sorted {
		out = append(out, dto.TopValuedDTO{
			MedicineID:    m.ID,
			Name:          m.Name,
			StockQuantity: m.StockQuantity,
			SalePrice:     m.SalePrice,
			TotalValue:    m.StockValue().Round(2),
		})
	}
	return out
}
