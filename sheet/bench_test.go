package sheet

import (
	"fmt"
	"testing"

	"github.com/mharlow/gosheet/cellref"
)

func pos(t testing.TB, addr string) cellref.Position {
	t.Helper()
	p, err := cellref.ParseAddress(addr)
	if err != nil {
		t.Fatalf("ParseAddress(%s): %v", addr, err)
	}
	return p
}

func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewSheet()
		for row := 1; row <= 100; row++ {
			for col := 0; col < 26; col++ {
				addr := fmt.Sprintf("%c%d", 'A'+col, row)
				if err := s.SetCell(pos(b, addr), fmt.Sprintf("%d", row*(col+1))); err != nil {
					b.Fatalf("SetCell(%s): %v", addr, err)
				}
			}
		}
	}
}

func BenchmarkFormulaDependencyChain(b *testing.B) {
	s := NewSheet()
	if err := s.SetCell(pos(b, "A1"), "1"); err != nil {
		b.Fatalf("SetCell(A1): %v", err)
	}
	for i := 2; i <= 100; i++ {
		addr := fmt.Sprintf("A%d", i)
		if err := s.SetCell(pos(b, addr), fmt.Sprintf("=A%d+1", i-1)); err != nil {
			b.Fatalf("SetCell(%s): %v", addr, err)
		}
	}

	last, _ := s.GetCell(pos(b, "A100"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		last.InvalidateCellCache()
		_ = last.GetValue()
	}
}

func BenchmarkWideDependencyFanOut(b *testing.B) {
	s := NewSheet()
	if err := s.SetCell(pos(b, "A1"), "100"); err != nil {
		b.Fatalf("SetCell(A1): %v", err)
	}
	for i := 2; i <= 500; i++ {
		addr := fmt.Sprintf("B%d", i)
		if err := s.SetCell(pos(b, addr), "=A1*2"); err != nil {
			b.Fatalf("SetCell(%s): %v", addr, err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SetCell(pos(b, "A1"), fmt.Sprintf("%d", i)); err != nil {
			b.Fatalf("SetCell(A1): %v", err)
		}
	}
}

func BenchmarkCascadingUpdates(b *testing.B) {
	s := NewSheet()
	for row := 1; row <= 50; row++ {
		for col := 0; col < 10; col++ {
			addr := fmt.Sprintf("%c%d", 'A'+col, row)
			var text string
			if col == 0 {
				text = fmt.Sprintf("%d", row)
			} else {
				prev := fmt.Sprintf("%c%d", 'A'+col-1, row)
				text = fmt.Sprintf("=%s*2", prev)
			}
			if err := s.SetCell(pos(b, addr), text); err != nil {
				b.Fatalf("SetCell(%s): %v", addr, err)
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SetCell(pos(b, "A1"), fmt.Sprintf("%d", i%100)); err != nil {
			b.Fatalf("SetCell(A1): %v", err)
		}
	}
}

func BenchmarkCircularReferenceDetection(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewSheet()
		_ = s.SetCell(pos(b, "A1"), "=B1+C1")
		_ = s.SetCell(pos(b, "B1"), "=C1+D1")
		_ = s.SetCell(pos(b, "C1"), "=D1+E1")
		_ = s.SetCell(pos(b, "D1"), "=E1+F1")
		_ = s.SetCell(pos(b, "E1"), "=F1+G1")
		_ = s.SetCell(pos(b, "F1"), "=G1+H1")
		_ = s.SetCell(pos(b, "G1"), "=H1+A1")
		_ = s.SetCell(pos(b, "H1"), "=A1")
	}
}

func BenchmarkManySmallFormulas(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewSheet()
		for row := 1; row <= 100; row++ {
			_ = s.SetCell(pos(b, fmt.Sprintf("A%d", row)), fmt.Sprintf("%d", row))
			_ = s.SetCell(pos(b, fmt.Sprintf("B%d", row)), fmt.Sprintf("=A%d*2", row))
			_ = s.SetCell(pos(b, fmt.Sprintf("C%d", row)), fmt.Sprintf("=B%d+A%d", row, row))
			_ = s.SetCell(pos(b, fmt.Sprintf("D%d", row)), fmt.Sprintf("=C%d/2", row))
		}
	}
}

func BenchmarkDirtyPropagation(b *testing.B) {
	s := NewSheet()
	grid := 20
	for row := 1; row <= grid; row++ {
		for col := 1; col <= grid; col++ {
			addr := fmt.Sprintf("%c%d", 'A'+col-1, row)
			var text string
			switch {
			case row == 1 && col == 1:
				text = "1"
			case row == 1:
				prev := fmt.Sprintf("%c%d", 'A'+col-2, row)
				text = fmt.Sprintf("=%s+1", prev)
			case col == 1:
				prev := fmt.Sprintf("%c%d", 'A'+col-1, row-1)
				text = fmt.Sprintf("=%s+1", prev)
			default:
				left := fmt.Sprintf("%c%d", 'A'+col-2, row)
				top := fmt.Sprintf("%c%d", 'A'+col-1, row-1)
				text = fmt.Sprintf("=%s+%s", left, top)
			}
			if err := s.SetCell(pos(b, addr), text); err != nil {
				b.Fatalf("SetCell(%s): %v", addr, err)
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SetCell(pos(b, "A1"), fmt.Sprintf("%d", i%100)); err != nil {
			b.Fatalf("SetCell(A1): %v", err)
		}
	}
}
