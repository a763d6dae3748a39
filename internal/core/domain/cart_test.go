package domain

import (
	"math"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCart_AddItem_IncrementsExisting(t *testing.T) {
	cart := &Cart{UserID: "u1"}

	cart.AddItem(CartItem{ItemID: "plan-a", Name: "Comprehensive", Price: 100})
	cart.AddItem(CartItem{ItemID: "plan-a", Name: "Comprehensive", Price: 100})
	cart.AddItem(CartItem{ItemID: "plan-a", Name: "Comprehensive", Price: 100})

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Items[0].Quantity)
	}
}

func TestCart_TotalItems_SumsQuantities(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(CartItem{ItemID: "plan-a", Price: 100})
	cart.AddItem(CartItem{ItemID: "plan-a", Price: 100})
	cart.AddItem(CartItem{ItemID: "plan-b", Price: 50})

	if got := cart.TotalItems(); got != 3 {
		t.Fatalf("expected total items 3, got %d", got)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 distinct entries, got %d", len(cart.Items))
	}
}

func TestCart_UpdateQuantity_ZeroRemoves(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(CartItem{ItemID: "plan-a", Price: 100})
	cart.AddItem(CartItem{ItemID: "plan-b", Price: 50})

	cart.UpdateQuantity("plan-a", 0)
	if len(cart.Items) != 1 || cart.Items[0].ItemID != "plan-b" {
		t.Fatalf("expected only plan-b to remain, got %+v", cart.Items)
	}

	cart.UpdateQuantity("plan-b", -1)
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
}

func TestCart_UpdateQuantity_SetsValue(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(CartItem{ItemID: "plan-a", Price: 100})

	cart.UpdateQuantity("plan-a", 5)
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}

	// unknown item ids are ignored
	cart.UpdateQuantity("missing", 2)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(cart.Items))
	}
}

func TestCart_TotalPrice_UsesEffectivePrice(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(CartItem{ItemID: "plan-a", Price: 100, DiscountedPrice: floatPtr(80)})
	cart.UpdateQuantity("plan-a", 2)
	cart.AddItem(CartItem{ItemID: "plan-b", Price: 50})

	// 80*2 + 50*1
	if got := cart.TotalPrice(); !almostEqual(got, 210) {
		t.Fatalf("expected total 210, got %v", got)
	}
}

func TestCart_RemoveItem_AbsentIsNoop(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(CartItem{ItemID: "plan-a", Price: 100})

	cart.RemoveItem("missing")
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(cart.Items))
	}

	cart.RemoveItem("plan-a")
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
}

func TestCart_Clear(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(CartItem{ItemID: "plan-a", Price: 100})
	cart.AddItem(CartItem{ItemID: "plan-b", Price: 50})

	cart.Clear()
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	if cart.TotalItems() != 0 || cart.TotalPrice() != 0 {
		t.Fatalf("expected zero totals after clear")
	}
}

func TestCartItem_EffectivePrice(t *testing.T) {
	full := CartItem{Price: 120}
	if got := full.EffectivePrice(); !almostEqual(got, 120) {
		t.Fatalf("expected 120, got %v", got)
	}

	discounted := CartItem{Price: 120, DiscountedPrice: floatPtr(95)}
	if got := discounted.EffectivePrice(); !almostEqual(got, 95) {
		t.Fatalf("expected 95, got %v", got)
	}
}
