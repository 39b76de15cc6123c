package models

// Role est le rôle d'un acteur de la plateforme.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStore    Role = "store"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// Actor identifie l'appelant courant (extrait du JWT par le middleware).
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Operation est une action du cycle de vie d'une commande.
type Operation string

const (
	OpPlaceOrder      Operation = "place_order"
	OpStoreAccept     Operation = "store_accept"
	OpDriverClaim     Operation = "driver_claim"
	OpConfirmPickup   Operation = "confirm_pickup"
	OpConfirmDelivery Operation = "confirm_delivery"
	OpCancel          Operation = "cancel"
)

// roleOperations est LA table rôle → opérations autorisées.
// Toute vérification de rôle passe par CanPerform, jamais par une
// comparaison de chaîne éparpillée dans les handlers.
var roleOperations = map[Role]map[Operation]bool{
	RoleCustomer: {OpPlaceOrder: true, OpCancel: true},
	RoleStore:    {OpStoreAccept: true, OpCancel: true},
	RoleDriver:   {OpDriverClaim: true, OpConfirmPickup: true, OpConfirmDelivery: true, OpCancel: true},
	RoleAdmin:    {OpCancel: true},
}

// CanPerform indique si un rôle a le droit d'invoquer une opération.
func CanPerform(role Role, op Operation) bool {
	ops := roleOperations[role]
	return ops != nil && ops[op]
}

// ValidRole vérifie qu'un rôle est connu de la plateforme.
func ValidRole(role Role) bool {
	_, ok := roleOperations[role]
	return ok
}
