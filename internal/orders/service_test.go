package orders

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/gocql/gocql"

	"livra_back_end/internal/models"
)

func testItems() []models.OrderItem {
	return []models.OrderItem{
		{ProductID: gocql.TimeUUID(), Name: "Poulet yassa", Quantity: 2, UnitPrice: 1500},
		{ProductID: gocql.TimeUUID(), Name: "Jus de bissap", Quantity: 1, UnitPrice: 500},
	}
}

func testCoords() (models.Coordinates, models.Coordinates) {
	return models.Coordinates{Lat: 48.8566, Lng: 2.3522},
		models.Coordinates{Lat: 48.8738, Lng: 2.2950}
}

func placeTestOrder(t *testing.T, svc *Service) *models.Order {
	t.Helper()
	pickup, dropoff := testCoords()
	o, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: "client-1",
		StoreID:    "magasin-1",
		Items:      testItems(),
		Pickup:     pickup,
		Dropoff:    dropoff,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	return o
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	pickup, dropoff := testCoords()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: "client-1",
		StoreID:    "magasin-1",
		Pickup:     pickup,
		Dropoff:    dropoff,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("panier vide: attendu ErrValidation, obtenu %v", err)
	}

	// aucun enregistrement ne doit avoir été créé
	all, _ := repo.ByCustomer(context.Background(), "client-1")
	if len(all) != 0 {
		t.Fatalf("un enregistrement a été créé malgré l'échec: %d", len(all))
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	pickup, dropoff := testCoords()
	ctx := context.Background()

	cases := []struct {
		name string
		in   PlaceOrderInput
	}{
		{"prix non positif", PlaceOrderInput{
			CustomerID: "c", StoreID: "m", Pickup: pickup, Dropoff: dropoff,
			Items: []models.OrderItem{{Name: "x", Quantity: 1, UnitPrice: 0}},
		}},
		{"quantité non positive", PlaceOrderInput{
			CustomerID: "c", StoreID: "m", Pickup: pickup, Dropoff: dropoff,
			Items: []models.OrderItem{{Name: "x", Quantity: 0, UnitPrice: 100}},
		}},
		{"coordonnées absentes", PlaceOrderInput{
			CustomerID: "c", StoreID: "m", Dropoff: dropoff,
			Items: testItems(),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.PlaceOrder(ctx, tc.in); !errors.Is(err, ErrValidation) {
				t.Fatalf("attendu ErrValidation, obtenu %v", err)
			}
		})
	}
}

func TestPlaceOrderFreezesTotals(t *testing.T) {
	t.Setenv("DELIVERY_FLAT_FEE", "")
	t.Setenv("DELIVERY_PRICING_MODE", "flat")

	svc := NewService(NewMemoryRepository())
	o := placeTestOrder(t, svc)

	if o.Status != models.StatusPending {
		t.Fatalf("statut initial: attendu PENDING, obtenu %s", o.Status)
	}
	if o.ItemsTotal != 3500 {
		t.Fatalf("sous-total: attendu 3500, obtenu %d", o.ItemsTotal)
	}
	if o.DeliveryFee != 200 {
		t.Fatalf("frais forfaitaires: attendu 200, obtenu %d", o.DeliveryFee)
	}
	if o.TotalPrice != o.ItemsTotal+o.DeliveryFee {
		t.Fatalf("total incohérent: %d != %d + %d", o.TotalPrice, o.ItemsTotal, o.DeliveryFee)
	}
	if o.TotalPrice < o.DeliveryFee {
		t.Fatal("invariant violé: total < frais de livraison")
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	o := placeTestOrder(t, svc)

	o, err := svc.StoreAccept(ctx, o.ID, "magasin-1")
	if err != nil {
		t.Fatalf("StoreAccept: %v", err)
	}
	if o.Status != models.StatusAcceptedByStore || o.DriverID != "" {
		t.Fatalf("après acceptation: statut=%s driver=%q", o.Status, o.DriverID)
	}

	o, err = svc.DriverClaim(ctx, o.ID, "livreur-1")
	if err != nil {
		t.Fatalf("DriverClaim: %v", err)
	}
	if o.Status != models.StatusAcceptedByDriver || o.DriverID != "livreur-1" {
		t.Fatalf("après claim: statut=%s driver=%q", o.Status, o.DriverID)
	}

	o, err = svc.DriverConfirmPickup(ctx, o.ID, "livreur-1")
	if err != nil {
		t.Fatalf("DriverConfirmPickup: %v", err)
	}
	if o.Status != models.StatusPickedUp {
		t.Fatalf("après retrait: statut=%s", o.Status)
	}

	o, err = svc.DriverConfirmDelivery(ctx, o.ID, "livreur-1")
	if err != nil {
		t.Fatalf("DriverConfirmDelivery: %v", err)
	}
	if o.Status != models.StatusDelivered {
		t.Fatalf("après livraison: statut=%s", o.Status)
	}

	// une ligne d'audit par transition
	hist, err := svc.History(ctx, o.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 4 {
		t.Fatalf("audit: attendu 4 transitions, obtenu %d", len(hist))
	}
}

func TestStoreAcceptTwice(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	o := placeTestOrder(t, svc)

	if _, err := svc.StoreAccept(ctx, o.ID, "magasin-1"); err != nil {
		t.Fatalf("première acceptation: %v", err)
	}
	_, err := svc.StoreAccept(ctx, o.ID, "magasin-1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double acceptation: attendu ErrInvalidTransition, obtenu %v", err)
	}

	// le statut n'a pas bougé suite à l'échec
	cur, _ := svc.Get(ctx, o.ID)
	if cur.Status != models.StatusAcceptedByStore {
		t.Fatalf("statut modifié par l'appel échoué: %s", cur.Status)
	}
}

func TestStoreAcceptWrongStore(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	o := placeTestOrder(t, svc)

	_, err := svc.StoreAccept(context.Background(), o.ID, "magasin-2")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("mauvais magasin: attendu ErrInvalidTransition, obtenu %v", err)
	}
}

func TestDriverClaimBeforeStoreAccept(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	o := placeTestOrder(t, svc)

	_, err := svc.DriverClaim(context.Background(), o.ID, "livreur-1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("claim sur PENDING: attendu ErrInvalidTransition, obtenu %v", err)
	}
}

func TestPickupByWrongDriver(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	o := placeTestOrder(t, svc)

	if _, err := svc.StoreAccept(ctx, o.ID, "magasin-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DriverClaim(ctx, o.ID, "livreur-1"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.DriverConfirmPickup(ctx, o.ID, "livreur-2")
	if !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("mauvais livreur: attendu ErrNotAssigned, obtenu %v", err)
	}
}

func TestCancel(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	customer := models.Actor{ID: "client-1", Role: models.RoleCustomer}

	// annulation depuis PENDING : succès, puis terminal
	o := placeTestOrder(t, svc)
	o, err := svc.Cancel(ctx, o.ID, customer)
	if err != nil {
		t.Fatalf("annulation PENDING: %v", err)
	}
	if o.Status != models.StatusCancelled {
		t.Fatalf("statut après annulation: %s", o.Status)
	}
	if _, err := svc.StoreAccept(ctx, o.ID, "magasin-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("transition depuis CANCELLED: attendu ErrInvalidTransition, obtenu %v", err)
	}

	// annulation d'une commande livrée : refus
	o2 := placeTestOrder(t, svc)
	svc.StoreAccept(ctx, o2.ID, "magasin-1")
	svc.DriverClaim(ctx, o2.ID, "livreur-1")
	svc.DriverConfirmPickup(ctx, o2.ID, "livreur-1")
	svc.DriverConfirmDelivery(ctx, o2.ID, "livreur-1")
	if _, err := svc.Cancel(ctx, o2.ID, customer); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("annulation DELIVERED: attendu ErrInvalidTransition, obtenu %v", err)
	}

	// un tiers ne peut pas annuler
	o3 := placeTestOrder(t, svc)
	outsider := models.Actor{ID: "client-999", Role: models.RoleCustomer}
	if _, err := svc.Cancel(ctx, o3.ID, outsider); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("annulation par un tiers: attendu ErrNotAssigned, obtenu %v", err)
	}
}

func TestCancelAfterClaimReleasesDriver(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	// annulation depuis ACCEPTED_BY_DRIVER : le livreur est libéré
	o := placeTestOrder(t, svc)
	svc.StoreAccept(ctx, o.ID, "magasin-1")
	svc.DriverClaim(ctx, o.ID, "livreur-1")
	o, err := svc.Cancel(ctx, o.ID, models.Actor{ID: "livreur-1", Role: models.RoleDriver})
	if err != nil {
		t.Fatalf("annulation après claim: %v", err)
	}
	if o.Status != models.StatusCancelled || o.DriverID != "" {
		t.Fatalf("après annulation: statut=%s driver=%q", o.Status, o.DriverID)
	}

	// annulation depuis PICKED_UP : même libération
	o2 := placeTestOrder(t, svc)
	svc.StoreAccept(ctx, o2.ID, "magasin-1")
	svc.DriverClaim(ctx, o2.ID, "livreur-2")
	svc.DriverConfirmPickup(ctx, o2.ID, "livreur-2")
	o2, err = svc.Cancel(ctx, o2.ID, models.Actor{ID: "client-1", Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("annulation après retrait: %v", err)
	}
	if o2.DriverID != "" {
		t.Fatalf("driver_id non libéré: %q", o2.DriverID)
	}
	// la commande annulée ne figure plus dans les livraisons du livreur
	mine, _ := svc.ByDriver(ctx, "livreur-2")
	for _, m := range mine {
		if m.ID == o2.ID {
			t.Fatalf("commande annulée encore rattachée au livreur %s", m.DriverID)
		}
	}
}

// TestLifecycleInvariantsRandomWalk applique des séquences aléatoires
// d'opérations et vérifie après chacune que :
//   - driver_id est présent si et seulement si le statut l'exige ;
//   - le statut n'avance que le long du chemin défini, sans saut ni retour.
func TestLifecycleInvariantsRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	drivers := []string{"livreur-1", "livreur-2", "livreur-3"}

	for run := 0; run < 50; run++ {
		svc := NewService(NewMemoryRepository())
		ctx := context.Background()
		o := placeTestOrder(t, svc)
		prev := o.Status

		for step := 0; step < 20; step++ {
			driver := drivers[rng.Intn(len(drivers))]
			switch rng.Intn(5) {
			case 0:
				svc.StoreAccept(ctx, o.ID, "magasin-1")
			case 1:
				svc.DriverClaim(ctx, o.ID, driver)
			case 2:
				svc.DriverConfirmPickup(ctx, o.ID, driver)
			case 3:
				svc.DriverConfirmDelivery(ctx, o.ID, driver)
			case 4:
				svc.Cancel(ctx, o.ID, models.Actor{ID: "client-1", Role: models.RoleCustomer})
			}

			cur, err := svc.Get(ctx, o.ID)
			if err != nil {
				t.Fatalf("run %d étape %d: Get: %v", run, step, err)
			}
			if got, want := cur.DriverID != "", cur.Status.RequiresDriver(); got != want {
				t.Fatalf("run %d étape %d: invariant driver_id violé (statut=%s driver=%q)",
					run, step, cur.Status, cur.DriverID)
			}
			if cur.Status != prev && !models.CanTransition(prev, cur.Status) {
				t.Fatalf("run %d étape %d: transition illégale %s → %s", run, step, prev, cur.Status)
			}
			prev = cur.Status
		}
	}
}
