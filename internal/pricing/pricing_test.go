package pricing

import "testing"

func TestDeliveryFee(t *testing.T) {
	cases := []struct {
		name       string
		distanceKm float64
		subtotal   int64
		want       int64
	}{
		{"distance nulle", 0, 0, 150},
		{"dix kilomètres", 10, 0, 450},
		{"remise gros panier", 10, 6000, 360}, // (150+300)*0.8
		{"un kilomètre", 1, 0, 180},
		{"arrondi au multiple de 10 supérieur", 0.5, 0, 170},   // 165 → 170
		{"remise puis arrondi", 1, 6000, 150},                  // 180*0.8 = 144 → 150
		{"seuil de remise exclu", 10, 5000, 450},               // 5000 n'ouvre pas la remise
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeliveryFee(tc.distanceKm, tc.subtotal)
			if got != tc.want {
				t.Fatalf("DeliveryFee(%v, %d) = %d, attendu %d", tc.distanceKm, tc.subtotal, got, tc.want)
			}
		})
	}
}

func TestDeliveryFeeAlwaysMultipleOfTen(t *testing.T) {
	for km := 0.0; km < 25; km += 0.3 {
		for _, subtotal := range []int64{0, 2000, 5001, 9999} {
			if fee := DeliveryFee(km, subtotal); fee%10 != 0 {
				t.Fatalf("DeliveryFee(%v, %d) = %d n'est pas un multiple de 10", km, subtotal, fee)
			}
		}
	}
}

func TestFlatFeeDefault(t *testing.T) {
	t.Setenv("DELIVERY_FLAT_FEE", "")
	if fee := FlatFee(); fee != DefaultFlatFee {
		t.Fatalf("forfait par défaut: attendu %d, obtenu %d", DefaultFlatFee, fee)
	}
}

func TestFlatFeeConfigured(t *testing.T) {
	t.Setenv("DELIVERY_FLAT_FEE", "250")
	if fee := FlatFee(); fee != 250 {
		t.Fatalf("forfait configuré: attendu 250, obtenu %d", fee)
	}
}

func TestFeeForModes(t *testing.T) {
	t.Setenv("DELIVERY_FLAT_FEE", "")
	t.Setenv("DELIVERY_PRICING_MODE", "flat")
	if fee := FeeFor(10, 0); fee != DefaultFlatFee {
		t.Fatalf("mode forfait: attendu %d, obtenu %d", DefaultFlatFee, fee)
	}

	t.Setenv("DELIVERY_PRICING_MODE", "distance")
	if fee := FeeFor(10, 0); fee != 450 {
		t.Fatalf("mode distance: attendu 450, obtenu %d", fee)
	}
}
