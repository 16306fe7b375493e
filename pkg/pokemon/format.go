package pokemon

import (
	"fmt"
	"io"
	"strings"
)

// StatLabel returns the short display label for a stat name:
// "special-attack" becomes "Sp.Atk", "special-defense" becomes "Sp.Def",
// and the first remaining hyphen becomes a space.
func StatLabel(name string) string {
	label := strings.Replace(name, "special-attack", "Sp.Atk", 1)
	label = strings.Replace(label, "special-defense", "Sp.Def", 1)
	return strings.Replace(label, "-", " ", 1)
}

// Summary is the one-line list entry: "#25 pikachu [electric]".
func (p Pokemon) Summary() string {
	return fmt.Sprintf("#%d %s [%s]", p.Number, p.Name, strings.Join(p.Types, " "))
}

// WriteDetail renders the detail view of p.
func WriteDetail(w io.Writer, p Pokemon) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s #%d\n", p.Name, p.Number)
	fmt.Fprintf(&b, "Types: %s\n", strings.Join(p.Types, ", "))
	if p.Photo != "" {
		fmt.Fprintf(&b, "Photo: %s\n", p.Photo)
	}

	b.WriteString("\nAbout\n")
	fmt.Fprintf(&b, "  Height: %sm\n", p.HeightMeters())
	fmt.Fprintf(&b, "  Weight: %skg\n", p.WeightKilograms())

	b.WriteString("\nBase Stats\n")
	for _, stat := range p.Stats.Entries() {
		fmt.Fprintf(&b, "  %-8s %3d\n", StatLabel(stat.Name), stat.Value)
	}

	b.WriteString("\nAbilities\n")
	fmt.Fprintf(&b, "  %s\n", strings.Join(p.Abilities, ", "))

	b.WriteString("\nMoves\n")
	fmt.Fprintf(&b, "  %s\n", strings.Join(p.Moves, ", "))

	_, err := io.WriteString(w, b.String())
	return err
}
