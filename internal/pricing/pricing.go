package pricing

import (
	"math"
	"os"
	"strconv"
)

// Barème de livraison, montants en centimes.
const (
	BaseFee           = 150 // prise en charge
	PerKmRate         = 30  // par kilomètre
	DiscountThreshold = 5000
	DiscountRate      = 0.20
	feeStep           = 10 // les frais sont toujours arrondis au multiple de 10 supérieur

	DefaultFlatFee = 200
)

// DeliveryFee calcule les frais de livraison en fonction de la distance et du
// sous-total de la commande. Pure, déterministe, sans I/O :
//   - base 150 + 30 par km
//   - remise de 20% au-delà de 5000 de sous-total
//   - arrondi au multiple de 10 supérieur
func DeliveryFee(distanceKm float64, subtotal int64) int64 {
	fee := float64(BaseFee) + distanceKm*float64(PerKmRate)
	if subtotal > DiscountThreshold {
		fee *= 1 - DiscountRate
	}
	return int64(math.Ceil(fee/feeStep)) * feeStep
}

// FlatFee retourne le tarif forfaitaire configuré (DELIVERY_FLAT_FEE, 200 par défaut).
func FlatFee() int64 {
	if v := os.Getenv("DELIVERY_FLAT_FEE"); v != "" {
		if fee, err := strconv.ParseInt(v, 10, 64); err == nil && fee >= 0 {
			return fee
		}
	}
	return DefaultFlatFee
}

// DistanceBased indique si la tarification à la distance est activée
// (DELIVERY_PRICING_MODE=distance). Le forfait reste le défaut tant que le
// produit n'a pas tranché entre les deux politiques.
func DistanceBased() bool {
	return os.Getenv("DELIVERY_PRICING_MODE") == "distance"
}

// FeeFor applique la politique configurée : forfaitaire ou à la distance.
func FeeFor(distanceKm float64, subtotal int64) int64 {
	if DistanceBased() {
		return DeliveryFee(distanceKm, subtotal)
	}
	return FlatFee()
}
