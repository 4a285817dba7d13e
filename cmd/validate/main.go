// Command validate lints a narrator delta payload. It reports which fields
// failed to decode, then dry-runs the payload against a fresh game state and
// prints the resulting log lines and notifications. Useful when tuning
// prompts against a new model.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/jwebster45206/realm-engine/pkg/state"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <delta.json>  (use - for stdin)\n", os.Args[0])
		os.Exit(1)
	}

	data, err := readInput(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		os.Exit(1)
	}

	validator := &DeltaValidator{}
	if err := validator.validate(data); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Delta payload is valid!")
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

type DeltaValidator struct {
	warnings []string
}

func (v *DeltaValidator) validate(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("input is not valid JSON")
	}

	var delta state.TurnDelta
	if err := json.Unmarshal(data, &delta); err != nil {
		return fmt.Errorf("failed to decode delta: %w", err)
	}

	for _, field := range delta.Malformed {
		v.addWarning(fmt.Sprintf("field %q did not decode and would be skipped", field))
	}

	if delta.Narration == "" {
		v.addWarning("narration is empty; the player would see nothing")
	}

	v.validateQuestIDs(&delta)

	// Dry-run against a fresh character to surface reconciliation warnings.
	gs := state.NewGameState("Validator")
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	next, notifications := state.NewReconciler(gs, &delta, logger).Apply("(dry run)")

	fmt.Printf("Reconciled: %d log entries, %d notifications, %d inventory items\n",
		len(next.Log), len(notifications), len(next.Player.Inventory))
	for _, n := range notifications {
		fmt.Printf("  [%s] %s\n", n.Kind, n.Message)
	}

	if len(v.warnings) > 0 {
		fmt.Println("Warnings:")
		for _, w := range v.warnings {
			fmt.Println("  - " + w)
		}
	}

	return nil
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func (v *DeltaValidator) validateQuestIDs(delta *state.TurnDelta) {
	if delta.QuestOffer != nil && !validIDRegex.MatchString(delta.QuestOffer.ID) {
		v.addWarning(fmt.Sprintf("quest offer ID %q should be lowercase snake_case", delta.QuestOffer.ID))
	}
	if delta.QuestUpdates == nil {
		return
	}
	for _, q := range delta.QuestUpdates.Add {
		if !validIDRegex.MatchString(q.ID) {
			v.addWarning(fmt.Sprintf("quest ID %q should be lowercase snake_case", q.ID))
		}
	}
	for _, q := range delta.QuestUpdates.Update {
		if !validIDRegex.MatchString(q.ID) {
			v.addWarning(fmt.Sprintf("quest ID %q should be lowercase snake_case", q.ID))
		}
	}
}

func (v *DeltaValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, msg)
}
