package orders

import (
	"context"

	"github.com/gocql/gocql"

	"livra_back_end/internal/models"
)

// Repository est le contrat de persistance des commandes.
//
// Toute mutation est une écriture conditionnelle atomique (compare-and-swap
// sur le statut attendu), jamais une lecture suivie d'une écriture
// inconditionnelle : deux étapes séparées seraient observables comme une
// perte de mise à jour par un acteur concurrent.
type Repository interface {
	Insert(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id gocql.UUID) (*models.Order, error)

	// UpdateStatus effectue la transition from → to en un seul pas atomique,
	// conditionné sur "le statut courant est from". Retourne false si la
	// condition n'était plus vraie au moment de l'écriture.
	UpdateStatus(ctx context.Context, id gocql.UUID, from, to models.OrderStatus, actorID string) (bool, error)

	// Claim assigne un livreur en un seul pas atomique, conditionné sur
	// "statut ACCEPTED_BY_STORE ET driver_id non renseigné". C'est la seule
	// règle d'arbitrage : la première écriture conditionnelle réussie gagne.
	Claim(ctx context.Context, id gocql.UUID, driverID string) (bool, error)

	// Available liste les commandes réclamables (ACCEPTED_BY_STORE, sans livreur).
	Available(ctx context.Context) ([]models.Order, error)

	// All liste toutes les commandes, pour la supervision.
	All(ctx context.Context) ([]models.Order, error)

	ByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	ByStore(ctx context.Context, storeID string) ([]models.Order, error)
	ByDriver(ctx context.Context, driverID string) ([]models.Order, error)

	// History retourne la piste d'audit des transitions, la plus récente en premier.
	History(ctx context.Context, id gocql.UUID) ([]models.StatusChange, error)
}
