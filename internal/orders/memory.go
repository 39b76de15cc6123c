package orders

import (
	"context"
	"sync"
	"time"

	"github.com/gocql/gocql"

	"livra_back_end/internal/models"
)

// MemoryRepository implémente le même contrat conditionnel que ScyllaDB,
// en mémoire. Utilisé par les tests et le mode développement sans base.
// Le mutex rend chaque mutation aussi indivisible qu'une LWT.
type MemoryRepository struct {
	mu      sync.Mutex
	orders  map[gocql.UUID]models.Order
	history map[gocql.UUID][]models.StatusChange
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders:  make(map[gocql.UUID]models.Order),
		history: make(map[gocql.UUID][]models.StatusChange),
	}
}

func (r *MemoryRepository) Insert(ctx context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneOrder(o)
	return &c, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id gocql.UUID, from, to models.OrderStatus, actorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	if from.RequiresDriver() && !to.RequiresDriver() {
		// Annulation après assignation : le livreur est libéré avec la commande.
		o.DriverID = ""
	}
	r.orders[id] = o
	r.appendHistory(id, from, to, actorID)
	return true, nil
}

func (r *MemoryRepository) Claim(ctx context.Context, id gocql.UUID, driverID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != models.StatusAcceptedByStore || o.DriverID != "" {
		return false, nil
	}
	o.Status = models.StatusAcceptedByDriver
	o.DriverID = driverID
	r.orders[id] = o
	r.appendHistory(id, models.StatusAcceptedByStore, models.StatusAcceptedByDriver, driverID)
	return true, nil
}

func (r *MemoryRepository) appendHistory(id gocql.UUID, from, to models.OrderStatus, actorID string) {
	r.history[id] = append(r.history[id], models.StatusChange{
		OrderID:   id,
		From:      from,
		To:        to,
		ActorID:   actorID,
		ChangedAt: time.Now(),
	})
}

func (r *MemoryRepository) Available(ctx context.Context) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool {
		return o.Status == models.StatusAcceptedByStore && o.DriverID == ""
	}), nil
}

func (r *MemoryRepository) All(ctx context.Context) ([]models.Order, error) {
	return r.filter(func(models.Order) bool { return true }), nil
}

func (r *MemoryRepository) ByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *MemoryRepository) ByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.StoreID == storeID }), nil
}

func (r *MemoryRepository) ByDriver(ctx context.Context, driverID string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.DriverID == driverID }), nil
}

func (r *MemoryRepository) filter(keep func(models.Order) bool) []models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

func (r *MemoryRepository) History(ctx context.Context, id gocql.UUID) ([]models.StatusChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.StatusChange(nil), r.history[id]...), nil
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}
