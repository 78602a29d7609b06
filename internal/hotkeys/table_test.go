package hotkeys

import "testing"

func TestDigitTarget(t *testing.T) {
	tests := []struct {
		digit int
		want  int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 3}, {5, 4},
		{6, 5}, {7, 6}, {8, 7}, {9, 8},
		{0, 9}, // the 0 key addresses the tenth desktop
	}

	for _, tt := range tests {
		if got := DigitTarget(tt.digit); got != tt.want {
			t.Errorf("DigitTarget(%d) = %d, want %d", tt.digit, got, tt.want)
		}
	}
}

func TestBuildTable_AllTwentyBindings(t *testing.T) {
	table := BuildTable("control", "control-shift")

	if len(table) != 20 {
		t.Fatalf("len(table) = %d, want 20 (10 switch + 10 move)", len(table))
	}

	for digit := 0; digit <= 9; digit++ {
		wantTarget := DigitTarget(digit)

		switchAction, ok := table[Sequence("control", digit)]
		if !ok {
			t.Fatalf("no switch binding for digit %d", digit)
		}
		if switchAction.Kind != KindSwitch || switchAction.Target != wantTarget {
			t.Errorf("switch digit %d = %v, want Switch(%d)", digit, switchAction, wantTarget)
		}

		moveAction, ok := table[Sequence("control-shift", digit)]
		if !ok {
			t.Fatalf("no move binding for digit %d", digit)
		}
		if moveAction.Kind != KindMoveWindow || moveAction.Target != wantTarget {
			t.Errorf("move digit %d = %v, want MoveWindow(%d)", digit, moveAction, wantTarget)
		}
	}
}

func TestBuildTable_TargetsInRange(t *testing.T) {
	for _, action := range BuildTable("super", "super-shift") {
		if action.Target < 0 || action.Target > 9 {
			t.Errorf("action %v has target outside [0,9]", action)
		}
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{Action{KindSwitch, 0}, "switch(0)"},
		{Action{KindMoveWindow, 9}, "move-window(9)"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
