package runner

import (
	"strings"
	"testing"

	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/store"
)

// loadProgram feeds each line of src through ExecuteLine, then RUNs it.
func loadProgram(t *testing.T, rn *Runner, src string) error {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(src), "\n") {
		if line == "" {
			continue
		}
		if err := rn.ExecuteLine(line); err != nil {
			t.Fatalf("ExecuteLine(%q) = %v", line, err)
		}
	}
	return rn.ExecuteLine("RUN")
}

func newRunner(lines ...string) (*Runner, *fakeTerminal) {
	term := newFakeTerminal(lines...)
	return NewWithOptions(runtime.Options{Terminal: term}), term
}

func TestScenarioFactorial(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `
10 N=5
20 F=1
30 FOR I=1 TO N
40 F=F*I
50 NEXT I
`)
	if err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("F")); got != 120 {
		t.Errorf("F = %v, want 120", got)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("I")); got != 6 {
		t.Errorf("I = %v, want 6", got)
	}
}

func TestScenarioNestedGosub(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `
10 A=0
20 GOSUB 100
30 END
100 A=A+1
110 GOSUB 200
120 A=A+1
130 RETURN
200 A=A+10
210 RETURN
`)
	if err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("A")); got != 12 {
		t.Errorf("A = %v, want 12", got)
	}
}

func TestScenarioReadDataRestore(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `
10 READ A,B,C
20 S=A+B+C
30 RESTORE
40 READ X
50 S=S+X
60 DATA 10,20,30
`)
	if err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("S")); got != 70 {
		t.Errorf("S = %v, want 70", got)
	}
}

func TestScenario2DArray(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `
10 DIM A(3,3)
20 FOR I=0 TO 3: FOR J=0 TO 3: A(I,J)=I*10+J: NEXT J: NEXT I
30 S=A(2,3)+A(3,2)
`)
	if err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("S")); got != 55 {
		t.Errorf("S = %v, want 55", got)
	}
}

func TestScenarioStringConcatValStr(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `
10 A$="12"+"34"
20 X=VAL(A$)+1
`)
	if err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("X")); got != 1235 {
		t.Errorf("X = %v, want 1235", got)
	}
	if got := rn.State.Variables.GetString(store.Fold("A$")); got != "1234" {
		t.Errorf("A$ = %q, want %q", got, "1234")
	}
}

func TestScenarioOnGotoOutOfRangeFallsThrough(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `
10 X=4
20 ON X GOTO 100,200,300
30 A=99
40 END
100 A=1
200 A=2
300 A=3
`)
	if err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("A")); got != 99 {
		t.Errorf("A = %v, want 99", got)
	}
}

// TestVariableIdentitySharesStorage: SCORE, SC, and SCOREBOARD all fold
// to the same two-character key and therefore share storage.
func TestVariableIdentitySharesStorage(t *testing.T) {
	rn, _ := newRunner()
	if err := loadProgram(t, rn, `
10 SCORE=7
20 SC=SC+1
30 X=SCOREBOARD
`); err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("X")); got != 8 {
		t.Errorf("X = %v, want 8 (SCORE/SC/SCOREBOARD share storage)", got)
	}
}

// TestDollarSuffixIsDistinctFromBareName: A$ and A are separate
// variables.
func TestDollarSuffixIsDistinctFromBareName(t *testing.T) {
	rn, _ := newRunner()
	if err := loadProgram(t, rn, `
10 A=5
20 A$="FIVE"
`); err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("A")); got != 5 {
		t.Errorf("A = %v, want 5", got)
	}
	if got := rn.State.Variables.GetString(store.Fold("A$")); got != "FIVE" {
		t.Errorf("A$ = %q, want %q", got, "FIVE")
	}
}

// TestNegativeTwoSquaredResolvesToFour pins the precedence of unary minus
// against '^': unary binds tighter, so -2^2 == (-2)^2 == 4.
func TestNegativeTwoSquaredResolvesToFour(t *testing.T) {
	rn, _ := newRunner()
	if err := loadProgram(t, rn, `10 X=-2^2`); err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("X")); got != 4 {
		t.Errorf("X = %v, want 4", got)
	}
}

func TestNextWithoutForIsNF(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `10 NEXT I`)
	if err == nil {
		t.Fatal("expected NF error, got nil")
	}
	if !strings.Contains(err.Error(), "NEXT WITHOUT FOR") {
		t.Errorf("err = %v, want NEXT WITHOUT FOR", err)
	}
}

func TestReturnWithoutGosubIsRG(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `10 RETURN`)
	if err == nil {
		t.Fatal("expected RG error, got nil")
	}
	if !strings.Contains(err.Error(), "RETURN WITHOUT GOSUB") {
		t.Errorf("err = %v, want RETURN WITHOUT GOSUB", err)
	}
}

func TestGotoUndefinedLineIsUS(t *testing.T) {
	rn, _ := newRunner()
	err := loadProgram(t, rn, `10 GOTO 999`)
	if err == nil {
		t.Fatal("expected US error, got nil")
	}
	if !strings.Contains(err.Error(), "UNDEF'D STATEMENT") {
		t.Errorf("err = %v, want UNDEF'D STATEMENT", err)
	}
}

// TestAutoDimThenDimIsRedimensionedArray: auto-dim on first subscripted
// use yields subscripts 0..10, and a later DIM on the same array is DD.
func TestAutoDimThenDimIsRedimensionedArray(t *testing.T) {
	rn, _ := newRunner()
	if err := loadProgram(t, rn, `10 A(5)=1`); err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if err := rn.ExecuteLine("20 DIM A(20)"); err != nil {
		t.Fatalf("ExecuteLine(DIM) = %v", err)
	}
	err := rn.ExecuteLine("RUN")
	if err == nil {
		t.Fatal("expected DD error, got nil")
	}
	if !strings.Contains(err.Error(), "REDIM'D ARRAY") {
		t.Errorf("err = %v, want REDIM'D ARRAY", err)
	}
}

// TestStopThenContResumesAfterStop exercises CONT's resume-after-STOP
// invariant: STOP does not re-execute on CONT.
func TestStopThenContResumesAfterStop(t *testing.T) {
	rn, _ := newRunner()
	for _, line := range []string{"10 A=1", "20 STOP", "30 A=A+1"} {
		if err := rn.ExecuteLine(line); err != nil {
			t.Fatalf("ExecuteLine(%q) = %v", line, err)
		}
	}
	err := rn.ExecuteLine("RUN")
	if err == nil || !strings.Contains(err.Error(), "BREAK") {
		t.Fatalf("RUN = %v, want BREAK", err)
	}
	if err := rn.ExecuteLine("CONT"); err != nil {
		t.Fatalf("CONT = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("A")); got != 2 {
		t.Errorf("A = %v, want 2 (STOP must not re-execute on CONT)", got)
	}
}

func TestInputReadsCommaSeparatedFields(t *testing.T) {
	rn, term := newRunner("10,20")
	_ = term
	if err := rn.ExecuteLine(`10 INPUT A,B`); err != nil {
		t.Fatalf("ExecuteLine(INPUT) = %v", err)
	}
	if err := rn.ExecuteLine("RUN"); err != nil {
		t.Fatalf("RUN = %v", err)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("A")); got != 10 {
		t.Errorf("A = %v, want 10", got)
	}
	if got := rn.State.Variables.GetNumber(store.Fold("B")); got != 20 {
		t.Errorf("B = %v, want 20", got)
	}
}
