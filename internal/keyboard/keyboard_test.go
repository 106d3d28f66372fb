package keyboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCharToEvdevRoundTrip(t *testing.T) {
	for ch := range charToCode {
		code, shift, ok := CharToEvdev(ch)
		require.True(t, ok, "char %q should map", ch)
		back, ok := EvdevToChar(code, shift)
		require.True(t, ok)
		require.Equal(t, ch, back, "round trip for %q", ch)
	}
}

func TestCharToEvdevRejectsNonASCII(t *testing.T) {
	_, _, ok := CharToEvdev('é')
	require.False(t, ok)
	_, _, ok = CharToEvdev('€')
	require.False(t, ok)
}

func TestShiftedDigitsProduceSymbols(t *testing.T) {
	code, shift, ok := CharToEvdev('!')
	require.True(t, ok)
	require.True(t, shift)
	ch, ok := EvdevToChar(code, true)
	require.True(t, ok)
	require.Equal(t, '!', ch)
	ch, ok = EvdevToChar(code, false)
	require.True(t, ok)
	require.Equal(t, '1', ch)
}

type fakeInjector struct {
	codes   []uint32
	shifts  []bool
	serials []uint32
}

func (f *fakeInjector) InjectKey(code uint32, shift bool, serial uint32) {
	f.codes = append(f.codes, code)
	f.shifts = append(f.shifts, shift)
	f.serials = append(f.serials, serial)
}

func TestInjectCharUsesMonotonicSerials(t *testing.T) {
	fi := &fakeInjector{}
	c := NewController(fi)
	require.True(t, c.InjectChar('a'))
	require.True(t, c.InjectChar('B'))
	require.False(t, c.InjectChar('€'))
	require.Equal(t, []uint32{1, 2}, fi.serials)
	require.Equal(t, []bool{false, true}, fi.shifts)
}

func TestVisibilityToggleAndPerWindowMemory(t *testing.T) {
	c := NewController(nil)
	require.False(t, c.Visible())
	c.Show()
	require.True(t, c.Visible())

	c.SaveForWindow(1)
	c.Hide()
	c.SaveForWindow(2)

	c.RestoreForWindow(1)
	require.True(t, c.Visible())
	c.RestoreForWindow(2)
	require.False(t, c.Visible())

	c.RestoreForWindow(999)
	require.False(t, c.Visible(), "unseen window defaults to hidden")
}

func TestPredictPrefixMatch(t *testing.T) {
	out := FallbackPredictor{}.Predict("", "th")
	require.Contains(t, out, "the")
	require.Contains(t, out, "this")
	require.LessOrEqual(t, len(out), 3)
}

func TestPredictFuzzyFallbackWhenFewPrefixMatches(t *testing.T) {
	out := FallbackPredictor{}.Predict("", "amd")
	require.Contains(t, out, "and", "amd is one substitution from and, within the length-3 budget of 1")
}

func TestPredictEmptyPartialReturnsNothing(t *testing.T) {
	require.Nil(t, FallbackPredictor{}.Predict("", ""))
}

func TestPredictWordsPrefersExternal(t *testing.T) {
	out := PredictWords(stubPredictor{[]string{"zzz"}}, "", "z")
	require.Equal(t, []string{"zzz"}, out)
}

type stubPredictor struct{ out []string }

func (s stubPredictor) Predict(pastContext, partialWord string) []string { return s.out }

func TestLevenshteinBudgetScalesWithLength(t *testing.T) {
	require.Equal(t, 1, levenshteinBudget(3))
	require.Equal(t, 2, levenshteinBudget(6))
	require.Equal(t, 3, levenshteinBudget(7))
}
