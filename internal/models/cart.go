package models

// Cart est le panier éphémère d'un client, stocké dans Redis entre
// l'ajout d'un article et le checkout. Détruit après commande réussie.
type Cart struct {
	CustomerID string     `json:"customer_id"`
	StoreID    string     `json:"store_id"`
	Items      []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price,omitempty"` // en centimes
}
