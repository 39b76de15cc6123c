package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"livra_back_end/internal/models"
)

// ScyllaRepository persiste les commandes dans le keyspace orders.
// L'arbitrage des courses d'assignation repose sur les transactions légères
// (LWT) de ScyllaDB : la condition IF est évaluée atomiquement côté serveur.
type ScyllaRepository struct {
	session *gocql.Session
}

func NewScyllaRepository(session *gocql.Session) *ScyllaRepository {
	return &ScyllaRepository{session: session}
}

const orderColumns = `order_id, customer_id, store_id, driver_id, items, items_total, delivery_fee, total_price,
	pickup_lat, pickup_lng, dropoff_lat, dropoff_lng, status, created_at`

func (r *ScyllaRepository) Insert(ctx context.Context, o *models.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("sérialisation items: %w", err)
	}

	// driver_id reste null à la création : la condition de claim
	// "IF driver_id = null" ne tiendrait pas face à une chaîne vide.
	err = r.session.Query(`
		INSERT INTO orders (order_id, customer_id, store_id, items, items_total, delivery_fee, total_price,
			pickup_lat, pickup_lng, dropoff_lat, dropoff_lng, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.CustomerID, o.StoreID, string(itemsJSON), o.ItemsTotal, o.DeliveryFee, o.TotalPrice,
		o.Pickup.Lat, o.Pickup.Lng, o.Dropoff.Lat, o.Dropoff.Lng, string(o.Status), o.CreatedAt).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return nil
}

func (r *ScyllaRepository) Get(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	var (
		o         models.Order
		itemsJSON string
		status    string
	)
	err := r.session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id).
		WithContext(ctx).
		Scan(&o.ID, &o.CustomerID, &o.StoreID, &o.DriverID, &itemsJSON, &o.ItemsTotal, &o.DeliveryFee, &o.TotalPrice,
			&o.Pickup.Lat, &o.Pickup.Lng, &o.Dropoff.Lat, &o.Dropoff.Lng, &status, &o.CreatedAt)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	o.Status = models.OrderStatus(status)
	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return nil, fmt.Errorf("désérialisation items: %w", err)
	}
	return &o, nil
}

// UpdateStatus : compare-and-swap sur le statut attendu. Une condition LWT
// non vérifiée laisse la ligne strictement inchangée. Une annulation après
// assignation remet driver_id à null dans la même écriture conditionnelle :
// driver_id renseigné implique toujours un statut avec livreur.
func (r *ScyllaRepository) UpdateStatus(ctx context.Context, id gocql.UUID, from, to models.OrderStatus, actorID string) (bool, error) {
	cql := `UPDATE orders SET status = ? WHERE order_id = ? IF status = ?`
	if from.RequiresDriver() && !to.RequiresDriver() {
		cql = `UPDATE orders SET status = ?, driver_id = null WHERE order_id = ? IF status = ?`
	}
	prev := make(map[string]interface{})
	applied, err := r.session.Query(cql, string(to), id, string(from)).WithContext(ctx).MapScanCAS(prev)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if applied {
		r.appendHistory(ctx, id, from, to, actorID)
	}
	return applied, nil
}

// Claim : première écriture conditionnelle gagnante. La condition
// "statut ACCEPTED_BY_STORE ET driver_id absent" est évaluée en un seul pas
// indivisible par ScyllaDB ; tous les autres prétendants voient applied=false.
func (r *ScyllaRepository) Claim(ctx context.Context, id gocql.UUID, driverID string) (bool, error) {
	prev := make(map[string]interface{})
	applied, err := r.session.Query(`
		UPDATE orders SET status = ?, driver_id = ?
		WHERE order_id = ?
		IF status = ? AND driver_id = null
	`, string(models.StatusAcceptedByDriver), driverID, id, string(models.StatusAcceptedByStore)).
		WithContext(ctx).MapScanCAS(prev)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if applied {
		r.appendHistory(ctx, id, models.StatusAcceptedByStore, models.StatusAcceptedByDriver, driverID)
	}
	return applied, nil
}

// appendHistory ajoute la ligne d'audit. Best-effort : l'échec de l'audit ne
// doit pas annuler une transition déjà appliquée.
func (r *ScyllaRepository) appendHistory(ctx context.Context, id gocql.UUID, from, to models.OrderStatus, actorID string) {
	err := r.session.Query(`
		INSERT INTO order_status_history (order_id, changed_at, from_status, to_status, actor_id)
		VALUES (?, ?, ?, ?, ?)
	`, id, time.Now(), string(from), string(to), actorID).WithContext(ctx).Exec()
	if err != nil {
		log.Printf("⚠️ Erreur écriture historique commande %s: %v", id, err)
	}
}

func (r *ScyllaRepository) Available(ctx context.Context) ([]models.Order, error) {
	all, err := r.scanOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = ? ALLOW FILTERING`,
		string(models.StatusAcceptedByStore))
	if err != nil {
		return nil, err
	}
	// driver_id = null n'est pas filtrable côté serveur sans index
	out := all[:0]
	for _, o := range all {
		if o.DriverID == "" {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *ScyllaRepository) All(ctx context.Context) ([]models.Order, error) {
	return r.scanOrders(ctx, `SELECT `+orderColumns+` FROM orders`)
}

func (r *ScyllaRepository) ByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return r.scanOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = ? ALLOW FILTERING`, customerID)
}

func (r *ScyllaRepository) ByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	return r.scanOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE store_id = ? ALLOW FILTERING`, storeID)
}

func (r *ScyllaRepository) ByDriver(ctx context.Context, driverID string) ([]models.Order, error) {
	return r.scanOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE driver_id = ? ALLOW FILTERING`, driverID)
}

func (r *ScyllaRepository) scanOrders(ctx context.Context, query string, bind ...interface{}) ([]models.Order, error) {
	iter := r.session.Query(query, bind...).WithContext(ctx).Iter()

	var (
		out       []models.Order
		o         models.Order
		itemsJSON string
		status    string
	)
	for iter.Scan(&o.ID, &o.CustomerID, &o.StoreID, &o.DriverID, &itemsJSON, &o.ItemsTotal, &o.DeliveryFee, &o.TotalPrice,
		&o.Pickup.Lat, &o.Pickup.Lng, &o.Dropoff.Lat, &o.Dropoff.Lng, &status, &o.CreatedAt) {
		o.Status = models.OrderStatus(status)
		o.Items = nil
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			log.Printf("⚠️ Items illisibles pour commande %s: %v", o.ID, err)
		}
		out = append(out, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return out, nil
}

func (r *ScyllaRepository) History(ctx context.Context, id gocql.UUID) ([]models.StatusChange, error) {
	iter := r.session.Query(`
		SELECT order_id, changed_at, from_status, to_status, actor_id
		FROM order_status_history WHERE order_id = ?
	`, id).WithContext(ctx).Iter()

	var (
		out      []models.StatusChange
		ch       models.StatusChange
		from, to string
	)
	for iter.Scan(&ch.OrderID, &ch.ChangedAt, &from, &to, &ch.ActorID) {
		ch.From = models.OrderStatus(from)
		ch.To = models.OrderStatus(to)
		out = append(out, ch)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return out, nil
}
