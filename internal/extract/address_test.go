package extract

import (
	"testing"
)

func TestAssembleAddress_ExpandsAroundAnchor(t *testing.T) {
	lines := makeLines(
		"Olivia Wilson",
		"Marketing Manager",
		"olivia@acme.com",
		"Suite 200",
		"123 Main St",
		"Springfield, IL 62704",
	)
	got := AssembleAddress(lines)
	want := "Suite 200\n123 Main St\nSpringfield, IL 62704"
	if got != want {
		t.Errorf("address = %q, want %q", got, want)
	}
}

func TestAssembleAddress_ContactLineTerminatesUpwardExpansion(t *testing.T) {
	lines := makeLines(
		"Acme Corp",
		"+1 415 555 0100",
		"123 Main St",
		"Springfield, IL 62704",
	)
	got := AssembleAddress(lines)
	want := "123 Main St\nSpringfield, IL 62704"
	if got != want {
		t.Errorf("address = %q, want %q", got, want)
	}
}

func TestAssembleAddress_DownwardExpansionIncludesTrailer(t *testing.T) {
	lines := makeLines(
		"123 Main St",
		"Floor 3",
	)
	got := AssembleAddress(lines)
	want := "123 Main St\nFloor 3"
	if got != want {
		t.Errorf("address = %q, want %q", got, want)
	}
}

func TestAssembleAddress_UpwardCap(t *testing.T) {
	lines := makeLines(
		"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf",
		"123 Main St",
	)
	got := AssembleAddress(lines)
	// Six lines at most, anchor included.
	want := "Charlie\nDelta\nEcho\nFoxtrot\nGolf\n123 Main St"
	if got != want {
		t.Errorf("address = %q, want %q", got, want)
	}
}

func TestAssembleAddress_NoHintMeansEmpty(t *testing.T) {
	lines := makeLines("Olivia Wilson", "Acme Corp")
	if got := AssembleAddress(lines); got != "" {
		t.Errorf("address = %q, want empty", got)
	}
}

func TestAssembleAddress_BlankLinesAreSkipped(t *testing.T) {
	lines := makeLines(
		"Suite 200",
		"nan",
		"123 Main St",
	)
	got := AssembleAddress(lines)
	want := "Suite 200\n123 Main St"
	if got != want {
		t.Errorf("address = %q, want %q", got, want)
	}
}

func TestAssembleAddress_OutOfRangeIndexFallsBack(t *testing.T) {
	lines := makeLines("123 Main St", "Springfield, IL 62704")
	// Simulate a sequence rebuilt after filtering, where original indices no
	// longer fit the slice.
	lines[1].Index = 40
	got := AssembleAddress(lines)
	want := "123 Main St\nSpringfield, IL 62704"
	if got != want {
		t.Errorf("address = %q, want %q", got, want)
	}
}
