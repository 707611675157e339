package core

import "testing"

func TestInputFrameKeepsOrderAndRepeats(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionLeft)
	f.Set(ActionRotate)

	if len(f.Actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(f.Actions))
	}
	if f.Actions[0] != ActionLeft || f.Actions[2] != ActionRotate {
		t.Errorf("actions out of order: %v", f.Actions)
	}
	if !f.Has(ActionRotate) || f.Has(ActionSwap) {
		t.Error("Has reported wrong membership")
	}

	f.Clear()
	if len(f.Actions) != 0 || f.Has(ActionLeft) {
		t.Error("Clear should empty the frame")
	}
}

func TestActionString(t *testing.T) {
	if ActionSwap.String() != "Swap" {
		t.Errorf("ActionSwap.String() = %q", ActionSwap.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
