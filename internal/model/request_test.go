package model

import "testing"

func TestDefaultUniformSize(t *testing.T) {
	if got := DefaultUniformSize(); got != "M" {
		t.Errorf("DefaultUniformSize() = %q, want %q", got, "M")
	}
}

func TestValidUniformSize(t *testing.T) {
	for _, size := range UniformSizes {
		if !ValidUniformSize(size) {
			t.Errorf("expected %q to be a valid size", size)
		}
	}
	for _, size := range []string{"", "XXL", "m", "3XL"} {
		if ValidUniformSize(size) {
			t.Errorf("expected %q to be invalid", size)
		}
	}
}

func TestItemsCost(t *testing.T) {
	lines := []RequestItem{
		{Quantity: 2, UnitCost: 20},
		{Quantity: 1, UnitCost: 800},
	}
	if got := ItemsCost(lines); got != 840 {
		t.Errorf("ItemsCost = %v, want 840", got)
	}

	if got := ItemsCost(nil); got != 0 {
		t.Errorf("ItemsCost(nil) = %v, want 0", got)
	}
}
