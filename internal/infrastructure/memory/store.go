package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// Ensure Store implements inventory.TxRunner.
var _ inventory.TxRunner = (*Store)(nil)

// Store almacén en memoria con unidades de trabajo atómicas.
// Run serializa las transacciones con un mutex (equivalente al bloqueo de fila de PostgreSQL),
// trabaja sobre una copia del estado y solo la publica si fn termina sin error.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a una copia del estado; Commit si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return domain.WrapTx(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(reposFor(work)); err != nil {
		return domain.WrapTx(err)
	}
	if err := ctx.Err(); err != nil {
		return domain.WrapTx(err)
	}
	s.st = work
	return nil
}

// AddParts carga repuestos en el catálogo (semillas de desarrollo y tests).
func (s *Store) AddParts(parts ...entity.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range parts {
		s.st.parts[p.ID] = p
	}
}

// SetStock fija la cantidad de un repuesto sin pasar por el diario (solo semillas).
func (s *Store) SetStock(partID string, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.stock[partID] = entity.Stock{PartID: partID, Quantity: qty}
}

// Quantity devuelve la cantidad confirmada de un repuesto.
func (s *Store) Quantity(partID string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.st.stock[partID]
	return st.Quantity, ok
}

type state struct {
	parts       map[string]entity.Part
	stock       map[string]entity.Stock
	adjustments map[string]entity.InventoryAdjustment
	adjItems    map[string][]entity.InventoryAdjustmentItem
	kits        map[string]entity.Kit
	kitItems    map[string][]entity.KitItem
	movements   []entity.StockMovement
}

func newState() *state {
	return &state{
		parts:       map[string]entity.Part{},
		stock:       map[string]entity.Stock{},
		adjustments: map[string]entity.InventoryAdjustment{},
		adjItems:    map[string][]entity.InventoryAdjustmentItem{},
		kits:        map[string]entity.Kit{},
		kitItems:    map[string][]entity.KitItem{},
	}
}

// clone copia mapas y slices; las entidades se guardan por valor, así que la copia es independiente.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.parts {
		c.parts[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.adjustments {
		c.adjustments[k] = v
	}
	for k, v := range s.adjItems {
		c.adjItems[k] = append([]entity.InventoryAdjustmentItem(nil), v...)
	}
	for k, v := range s.kits {
		c.kits[k] = v
	}
	for k, v := range s.kitItems {
		c.kitItems[k] = append([]entity.KitItem(nil), v...)
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	return c
}

func reposFor(st *state) inventory.Repos {
	return inventory.Repos{
		Stock:       &StockRepo{st: st},
		Parts:       &PartRepo{st: st},
		Adjustments: &AdjustmentRepo{st: st},
		Kits:        &KitRepo{st: st},
		Movements:   &StockMovementRepo{st: st},
	}
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
