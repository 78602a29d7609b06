package hotkeys

import "fmt"

// Table maps a hotkey identifier (its registered key sequence) to an action.
// Built once at startup and read-only afterwards.
type Table map[string]Action

// DigitTarget maps a digit key to its desktop index: 1..9 address desktops
// 0..8, and 0 addresses desktop 9, matching the keyboard's ten-key layout.
func DigitTarget(digit int) int {
	if digit == 0 {
		return 9
	}
	return digit - 1
}

// Sequence builds the key sequence string for a modifier plus digit, in the
// "modifier-key" form the X binding layer parses (e.g. "control-3").
func Sequence(modifier string, digit int) string {
	return fmt.Sprintf("%s-%d", modifier, digit)
}

// BuildTable constructs the full dispatch table: digits with the switch
// modifier produce Switch actions, digits with the move modifier produce
// MoveWindow actions.
func BuildTable(switchModifier, moveModifier string) Table {
	table := make(Table, 20)
	for digit := 0; digit <= 9; digit++ {
		table[Sequence(switchModifier, digit)] = Action{Kind: KindSwitch, Target: DigitTarget(digit)}
		table[Sequence(moveModifier, digit)] = Action{Kind: KindMoveWindow, Target: DigitTarget(digit)}
	}
	return table
}
