package orders

import "errors"

// Taxonomie des erreurs métier. Toutes sont des issues attendues que l'UI
// doit présenter comme messages utilisateur, jamais des crashs. Les handlers
// les traduisent en codes HTTP via errors.Is.
var (
	// ErrValidation : entrée mal formée à la création (panier vide,
	// coordonnées absentes, prix non positif).
	ErrValidation = errors.New("commande invalide")

	// ErrInvalidTransition : la précondition de statut n'est pas remplie.
	ErrInvalidTransition = errors.New("transition de statut non autorisée")

	// ErrNotAssigned : l'appelant n'est pas le livreur assigné à la commande.
	ErrNotAssigned = errors.New("livreur non assigné à cette commande")

	// ErrClaimLost : un autre livreur a remporté la course d'assignation.
	// Le perdant doit recharger la commande et la retirer de sa liste.
	ErrClaimLost = errors.New("commande déjà prise par un autre livreur")

	// ErrNotFound : la commande n'existe pas.
	ErrNotFound = errors.New("commande introuvable")

	// ErrExternalService : défaillance d'un collaborateur externe (base,
	// stockage, paiement). Une écriture conditionnelle échouée laisse
	// l'enregistrement inchangé : aucune écriture partielle.
	ErrExternalService = errors.New("service externe indisponible")
)
