package stock

import (
	"context"
	"time"

	"github.com/hospimed/farmacia-api/internal/application/dto"
	"github.com/hospimed/farmacia-api/internal/domain"
	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

// QueryUseCase lecturas del libro de stock: historial de movimientos y resumen
// de stock con estado por medicamento. No muta nada.
type QueryUseCase struct {
	medRepo repository.MedicineRepository
	movRepo repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(medRepo repository.MedicineRepository, movRepo repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{medRepo: medRepo, movRepo: movRepo}
}

// ListMovements devuelve el historial filtrado y paginado, del más reciente al
// más antiguo, con metadatos de página y total.
func (uc *QueryUseCase) ListMovements(ctx context.Context, req dto.MovementListRequest) (*dto.MovementListResponse, error) {
	req.DefaultPage()

	filter, err := buildMovementFilter(req)
	if err != nil {
		return nil, err
	}

	total, err := uc.movRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.List(ctx, filter, req.PageSize, req.Offset())
	if err != nil {
		return nil, err
	}

	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementDTO{
			ID:             m.ID,
			MedicineID:     m.MedicineID,
			Type:           m.Type,
			Quantity:       m.Quantity,
			PreviousStock:  m.PreviousStock,
			NewStock:       m.NewStock,
			ReferenceType:  m.ReferenceType,
			ReferenceID:    m.ReferenceID,
			AdjustmentType: m.AdjustmentType,
			Reason:         m.Reason,
			Notes:          m.Notes,
			CreatedBy:      m.CreatedBy,
			CreatedAt:      m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Movements: out,
		Meta: dto.PageResponse{
			CurrentPage: req.Page,
			PerPage:     req.PageSize,
			Total:       total,
		},
	}, nil
}

// Overview devuelve por medicamento cantidad, nivel de reorden y estado derivado.
// status filtra por un estado concreto; vacío devuelve todo el catálogo.
func (uc *QueryUseCase) Overview(ctx context.Context, status string) ([]dto.MedicineStockDTO, error) {
	medicines, err := uc.medRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MedicineStockDTO, 0, len(medicines))
	for _, m := range medicines {
		st := m.StockStatus()
		if status != "" && st != status {
			continue
		}
		out = append(out, dto.MedicineStockDTO{
			MedicineID:    m.ID,
			Name:          m.Name,
			CategoryName:  m.CategoryName,
			StockQuantity: m.StockQuantity,
			ReorderLevel:  m.ReorderLevel,
			Status:        st,
			UnitCost:      m.UnitCost,
			SalePrice:     m.SalePrice,
		})
	}
	return out, nil
}

// buildMovementFilter traduce los query params al filtro del repositorio.
// Fechas en RFC 3339 o YYYY-MM-DD; date_to con solo fecha cubre el día completo.
func buildMovementFilter(req dto.MovementListRequest) (repository.MovementFilter, error) {
	var filter repository.MovementFilter
	v := domain.NewValidationError()

	if req.MedicineID != "" {
		filter.MedicineID = &req.MedicineID
	}
	if req.Type != "" {
		filter.Type = &req.Type
	}
	if req.ReferenceType != "" {
		filter.ReferenceType = &req.ReferenceType
	}
	if req.DateFrom != "" {
		t, _, err := parseDate(req.DateFrom)
		if err != nil {
			v.Add("date_from", "fecha inválida; usar RFC 3339 o YYYY-MM-DD")
		} else {
			filter.DateFrom = &t
		}
	}
	if req.DateTo != "" {
		t, dateOnly, err := parseDate(req.DateTo)
		if err != nil {
			v.Add("date_to", "fecha inválida; usar RFC 3339 o YYYY-MM-DD")
		} else {
			if dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			filter.DateTo = &t
		}
	}
	if v.HasErrors() {
		return repository.MovementFilter{}, v
	}
	return filter, nil
}

func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err = time.Parse("2006-01-02", s)
	return t, true, err
}
