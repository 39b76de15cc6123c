package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"livra_back_end/internal/geo"
	"livra_back_end/internal/models"
	"livra_back_end/internal/pricing"
)

// Service porte les règles du cycle de vie des commandes : états légaux,
// transitions légales, et qui a le droit de déclencher chacune.
//
// Le repository est passé explicitement à la construction (aucun singleton) :
// créé au démarrage du process, jeté à l'arrêt.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PlaceOrderInput : les prix des lignes sont déjà figés par l'appelant
// (snapshot du catalogue au moment du checkout).
type PlaceOrderInput struct {
	CustomerID string
	StoreID    string
	Items      []models.OrderItem
	Pickup     models.Coordinates
	Dropoff    models.Coordinates
}

// PlaceOrder crée une commande en statut PENDING. Les frais de livraison sont
// calculés à cet instant et figés dans l'enregistrement : ils ne sont jamais
// recalculés.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if in.CustomerID == "" || in.StoreID == "" {
		return nil, fmt.Errorf("%w: client ou magasin manquant", ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: panier vide", ErrValidation)
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantité non positive pour %s", ErrValidation, item.Name)
		}
		if item.UnitPrice <= 0 {
			return nil, fmt.Errorf("%w: prix non positif pour %s", ErrValidation, item.Name)
		}
	}
	if !in.Pickup.IsValid() || !in.Dropoff.IsValid() {
		return nil, fmt.Errorf("%w: coordonnées de retrait ou de livraison absentes", ErrValidation)
	}

	var itemsTotal int64
	for _, item := range in.Items {
		itemsTotal += item.UnitPrice * int64(item.Quantity)
	}

	fee := pricing.FeeFor(geo.DistanceKm(in.Pickup, in.Dropoff), itemsTotal)

	o := &models.Order{
		ID:          gocql.TimeUUID(),
		CustomerID:  in.CustomerID,
		StoreID:     in.StoreID,
		Items:       in.Items,
		ItemsTotal:  itemsTotal,
		DeliveryFee: fee,
		TotalPrice:  itemsTotal + fee,
		Pickup:      in.Pickup,
		Dropoff:     in.Dropoff,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}

	log.Printf("🛒 Commande %s créée (%d articles, total %d)", o.ID, len(o.Items), o.TotalPrice)
	return o, nil
}

// StoreAccept : PENDING → ACCEPTED_BY_STORE, uniquement par le magasin
// propriétaire. Double acceptation, mauvais magasin et état terminal sont
// tous couverts par ErrInvalidTransition.
func (s *Service) StoreAccept(ctx context.Context, orderID gocql.UUID, storeID string) (*models.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.StoreID != storeID {
		return nil, fmt.Errorf("%w: commande d'un autre magasin", ErrInvalidTransition)
	}

	applied, err := s.repo.UpdateStatus(ctx, orderID, models.StatusPending, models.StatusAcceptedByStore, storeID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("%w: la commande n'est plus en attente", ErrInvalidTransition)
	}

	log.Printf("🏪 Commande %s acceptée par le magasin %s", orderID, storeID)
	return s.repo.Get(ctx, orderID)
}

// DriverClaim : ACCEPTED_BY_STORE → ACCEPTED_BY_DRIVER. Plusieurs livreurs
// peuvent tenter en même temps ; la première écriture conditionnelle réussie
// gagne, les autres reçoivent ErrClaimLost et doivent recharger la commande.
// Une fois posé, driver_id ne change plus jamais.
func (s *Service) DriverClaim(ctx context.Context, orderID gocql.UUID, driverID string) (*models.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != models.StatusAcceptedByStore {
		return nil, fmt.Errorf("%w: la commande n'est pas réclamable (statut %s)", ErrInvalidTransition, o.Status)
	}

	applied, err := s.repo.Claim(ctx, orderID, driverID)
	if err != nil {
		return nil, err
	}
	if !applied {
		// La précondition était vraie à la lecture : un concurrent est passé entre-temps.
		return nil, ErrClaimLost
	}

	log.Printf("🛵 Commande %s prise par le livreur %s", orderID, driverID)
	return s.repo.Get(ctx, orderID)
}

// DriverConfirmPickup : ACCEPTED_BY_DRIVER → PICKED_UP, par le livreur assigné.
func (s *Service) DriverConfirmPickup(ctx context.Context, orderID gocql.UUID, driverID string) (*models.Order, error) {
	return s.driverAdvance(ctx, orderID, driverID, models.StatusAcceptedByDriver, models.StatusPickedUp)
}

// DriverConfirmDelivery : PICKED_UP → DELIVERED, par le livreur assigné.
func (s *Service) DriverConfirmDelivery(ctx context.Context, orderID gocql.UUID, driverID string) (*models.Order, error) {
	return s.driverAdvance(ctx, orderID, driverID, models.StatusPickedUp, models.StatusDelivered)
}

func (s *Service) driverAdvance(ctx context.Context, orderID gocql.UUID, driverID string, from, to models.OrderStatus) (*models.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.DriverID != driverID {
		return nil, ErrNotAssigned
	}

	applied, err := s.repo.UpdateStatus(ctx, orderID, from, to, driverID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("%w: statut attendu %s", ErrInvalidTransition, from)
	}

	log.Printf("📦 Commande %s: %s → %s (livreur %s)", orderID, from, to, driverID)
	return s.repo.Get(ctx, orderID)
}

// Cancel : annulation depuis tout état non terminal, par une partie prenante
// de la commande ou un admin.
func (s *Service) Cancel(ctx context.Context, orderID gocql.UUID, actor models.Actor) (*models.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actor.Role != models.RoleAdmin &&
		actor.ID != o.CustomerID && actor.ID != o.StoreID && (o.DriverID == "" || actor.ID != o.DriverID) {
		return nil, ErrNotAssigned
	}
	if o.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: la commande est déjà %s", ErrInvalidTransition, o.Status)
	}

	applied, err := s.repo.UpdateStatus(ctx, orderID, o.Status, models.StatusCancelled, actor.ID)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Le statut a bougé entre la lecture et l'écriture : l'appelant recharge.
		return nil, fmt.Errorf("%w: le statut a changé, rechargez la commande", ErrInvalidTransition)
	}

	log.Printf("❌ Commande %s annulée par %s (%s)", orderID, actor.ID, actor.Role)
	return s.repo.Get(ctx, orderID)
}

// Get retourne une commande.
func (s *Service) Get(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	return s.repo.Get(ctx, orderID)
}

// Available liste les commandes réclamables pour le fil des livreurs.
func (s *Service) Available(ctx context.Context) ([]models.Order, error) {
	return s.repo.Available(ctx)
}

func (s *Service) All(ctx context.Context) ([]models.Order, error) {
	return s.repo.All(ctx)
}

func (s *Service) ByCustomer(ctx context.Context, id string) ([]models.Order, error) {
	return s.repo.ByCustomer(ctx, id)
}

func (s *Service) ByStore(ctx context.Context, id string) ([]models.Order, error) {
	return s.repo.ByStore(ctx, id)
}

func (s *Service) ByDriver(ctx context.Context, id string) ([]models.Order, error) {
	return s.repo.ByDriver(ctx, id)
}

// History retourne la piste d'audit des transitions d'une commande.
func (s *Service) History(ctx context.Context, orderID gocql.UUID) ([]models.StatusChange, error) {
	return s.repo.History(ctx, orderID)
}
