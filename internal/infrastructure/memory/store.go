// Package memory implementa los puertos del libro de stock sobre estructuras en
// memoria. Se usa en tests y en desarrollo sin PostgreSQL; la semántica
// transaccional se simula con snapshot + rollback.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hospimed/farmacia-api/internal/application/stock"
	"github.com/hospimed/farmacia-api/internal/domain/entity"
	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

var _ stock.TxRunner = (*Store)(nil)

// Store almacén en memoria del catálogo y del historial de movimientos.
// Un único mutex serializa las transacciones: más grueso que el bloqueo por
// fila de PostgreSQL, pero con las mismas garantías de atomicidad y de
// serialización de mutaciones del mismo medicamento.
type Store struct {
	mu        sync.Mutex
	medicines map[string]*entity.Medicine
	movements []*entity.StockMovement
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{medicines: make(map[string]*entity.Medicine)}
}

// Seed registra un medicamento en el catálogo (alta fuera del libro de stock).
func (s *Store) Seed(m *entity.Medicine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.medicines[m.ID] = &cp
}

// Medicines devuelve el repositorio de medicamentos atado al pool (fuera de tx).
func (s *Store) Medicines() repository.MedicineRepository {
	return &medicineRepo{store: s, locked: false}
}

// Movements devuelve el repositorio de movimientos atado al pool (fuera de tx).
func (s *Store) Movements() repository.StockMovementRepository {
	return &movementRepo{store: s, locked: false}
}

// Valuation devuelve el lector de snapshot para valorización.
func (s *Store) Valuation() repository.ValuationRepository {
	return &valuationRepo{store: s}
}

// Run ejecuta fn como unidad atómica bajo el mutex: si fn falla se restaura el
// estado previo completo (rollback por snapshot).
func (s *Store) Run(ctx context.Context, fn func(
	medRepo repository.MedicineRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshotLocked()
	err := fn(
		&medicineRepo{store: s, locked: true},
		&movementRepo{store: s, locked: true},
	)
	if err != nil {
		s.restoreLocked(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	medicines map[string]*entity.Medicine
	movements []*entity.StockMovement
}

func (s *Store) snapshotLocked() storeSnapshot {
	meds := make(map[string]*entity.Medicine, len(s.medicines))
	for id, m := range s.medicines {
		cp := *m
		meds[id] = &cp
	}
	movs := make([]*entity.StockMovement, len(s.movements))
	copy(movs, s.movements)
	return storeSnapshot{medicines: meds, movements: movs}
}

func (s *Store) restoreLocked(snap storeSnapshot) {
	s.medicines = snap.medicines
	s.movements = snap.movements
}

// lock toma el mutex solo si el caller no está ya dentro de una transacción.
func (s *Store) lock(alreadyLocked bool) func() {
	if alreadyLocked {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) getMedicineLocked(id string) *entity.Medicine {
	m, ok := s.medicines[id]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

func (s *Store) listMedicinesLocked() []*entity.Medicine {
	list := make([]*entity.Medicine, 0, len(s.medicines))
	for _, m := range s.medicines {
		cp := *m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorio de medicamentos
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.MedicineRepository = (*medicineRepo)(nil)

type medicineRepo struct {
	store  *Store
	locked bool // true dentro de Run: el mutex ya está tomado
}

func (r *medicineRepo) GetByID(_ context.Context, id string) (*entity.Medicine, error) {
	defer r.store.lock(r.locked)()
	return r.store.getMedicineLocked(id), nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex de Run ya serializa.
func (r *medicineRepo) GetForUpdate(_ context.Context, id string) (*entity.Medicine, error) {
	defer r.store.lock(r.locked)()
	return r.store.getMedicineLocked(id), nil
}

func (r *medicineRepo) UpdateStock(_ context.Context, id string, quantity int64) error {
	defer r.store.lock(r.locked)()
	if m, ok := r.store.medicines[id]; ok {
		m.StockQuantity = quantity
	}
	return nil
}

func (r *medicineRepo) List(_ context.Context) ([]*entity.Medicine, error) {
	defer r.store.lock(r.locked)()
	return r.store.listMedicinesLocked(), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorio de movimientos (solo inserción y lecturas)
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.StockMovementRepository = (*movementRepo)(nil)

type movementRepo struct {
	store  *Store
	locked bool
}

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.store.lock(r.locked)()
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *movementRepo) List(_ context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.store.lock(r.locked)()
	matched := r.store.filterLocked(filter)
	// Más reciente primero: el slice interno está en orden de inserción
	out := make([]*entity.StockMovement, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		out = append(out, matched[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *movementRepo) Count(_ context.Context, filter repository.MovementFilter) (int64, error) {
	defer r.store.lock(r.locked)()
	return int64(len(r.store.filterLocked(filter))), nil
}

func (r *movementRepo) ListByMedicine(_ context.Context, medicineID string) ([]*entity.StockMovement, error) {
	defer r.store.lock(r.locked)()
	return r.store.filterLocked(repository.MovementFilter{MedicineID: &medicineID}), nil
}

func (s *Store) filterLocked(filter repository.MovementFilter) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if filter.MedicineID != nil && m.MedicineID != *filter.MedicineID {
			continue
		}
		if filter.Type != nil && m.Type != *filter.Type {
			continue
		}
		if filter.ReferenceType != nil && m.ReferenceType != *filter.ReferenceType {
			continue
		}
		if filter.DateFrom != nil && m.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && m.CreatedAt.After(*filter.DateTo) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshot de valorización
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.ValuationRepository = (*valuationRepo)(nil)

type valuationRepo struct {
	store *Store
}

// Snapshot devuelve una copia del catálogo bajo el mutex: vista consistente.
func (r *valuationRepo) Snapshot(_ context.Context) ([]*entity.Medicine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listMedicinesLocked(), nil
}
