package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"livra_back_end/internal/models"
)

// TestConcurrentClaims : N livreurs réclament la même commande en même temps.
// Exactement un gagne, tous les autres reçoivent ErrClaimLost, et le
// driver_id final est celui du gagnant.
func TestConcurrentClaims(t *testing.T) {
	const claimants = 16

	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	o := placeTestOrder(t, svc)
	if _, err := svc.StoreAccept(ctx, o.ID, "magasin-1"); err != nil {
		t.Fatal(err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		lost    int
	)

	start := make(chan struct{})
	for i := 0; i < claimants; i++ {
		driverID := fmt.Sprintf("livreur-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.DriverClaim(ctx, o.ID, driverID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, driverID)
			case errors.Is(err, ErrClaimLost) || errors.Is(err, ErrInvalidTransition):
				// ErrInvalidTransition si le perdant a relu la commande après
				// la victoire du gagnant : dans les deux cas il doit la lâcher.
				lost++
			default:
				t.Errorf("claim %s: erreur inattendue %v", driverID, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if len(winners) != 1 {
		t.Fatalf("attendu exactement 1 gagnant, obtenu %d (%v)", len(winners), winners)
	}
	if lost != claimants-1 {
		t.Fatalf("attendu %d perdants, obtenu %d", claimants-1, lost)
	}

	final, err := svc.Get(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Status != models.StatusAcceptedByDriver {
		t.Fatalf("statut final: %s", final.Status)
	}
	if final.DriverID != winners[0] {
		t.Fatalf("driver_id final %q != gagnant %q", final.DriverID, winners[0])
	}
}

// TestDriverIDImmutable : une fois le livreur assigné, aucun second claim
// ne peut écraser driver_id.
func TestDriverIDImmutable(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	o := placeTestOrder(t, svc)
	svc.StoreAccept(ctx, o.ID, "magasin-1")

	if _, err := svc.DriverClaim(ctx, o.ID, "livreur-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DriverClaim(ctx, o.ID, "livreur-2"); err == nil {
		t.Fatal("un second claim a réussi")
	}

	final, _ := svc.Get(ctx, o.ID)
	if final.DriverID != "livreur-1" {
		t.Fatalf("driver_id écrasé: %q", final.DriverID)
	}
}

// TestClaimRepositoryContract vérifie la sémantique CAS du repository nu :
// une seule des écritures conditionnelles concurrentes est appliquée.
func TestClaimRepositoryContract(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()
	o := placeTestOrder(t, svc)
	svc.StoreAccept(ctx, o.ID, "magasin-1")

	applied1, err := repo.Claim(ctx, o.ID, "livreur-1")
	if err != nil || !applied1 {
		t.Fatalf("premier claim: applied=%v err=%v", applied1, err)
	}
	applied2, err := repo.Claim(ctx, o.ID, "livreur-2")
	if err != nil {
		t.Fatal(err)
	}
	if applied2 {
		t.Fatal("le second claim conditionnel a été appliqué")
	}
}
