package state

// Enemy is a combatant on the field. Enemies exist only while the narrator
// keeps them in the roster: an add begins their life, a remove is a defeat.
// HP is the only field the narrator may mutate after the add.
type Enemy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"maxHp"`
}
