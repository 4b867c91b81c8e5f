package diag_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/diag"
)

func TestListOrdersByLineKeepingInsertionOrderForTies(t *testing.T) {
	var l diag.List
	l.Add(diag.New(diag.KindCannotCoerce, 10, "INT to REF INT"))
	l.Add(diag.New(diag.KindCyclicMode, 3, "MODE A = A"))
	l.Add(diag.New(diag.KindUndeclaredIdentifier, 3, "foo"))

	require.True(t, l.Errors())
	require.Equal(t, 3, l.Count())

	all := l.All()
	require.Equal(t, diag.KindCyclicMode, all[0].Kind)
	require.Equal(t, diag.KindUndeclaredIdentifier, all[1].Kind)
	require.Equal(t, diag.KindCannotCoerce, all[2].Kind)
}

func TestListResetClearsDiagnostics(t *testing.T) {
	var l diag.List
	l.Add(diag.New(diag.KindCyclicMode, 1, ""))
	l.Reset()
	require.False(t, l.Errors())
	require.Equal(t, 0, l.Count())
}

func TestKindFatalClassification(t *testing.T) {
	require.False(t, diag.KindCannotCoerce.Fatal())
	require.False(t, diag.KindValueVoided.Fatal())
	require.True(t, diag.KindIndexOutOfBounds.Fatal())
	require.True(t, diag.KindScopeViolation.Fatal())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := diag.Wrap(diag.KindDivisionByZero, 7, "INT /", cause)
	require.ErrorIs(t, e, cause)
	require.Contains(t, e.Error(), "line 7")
}

func TestRaiseAndRecoverRoundTrip(t *testing.T) {
	fatal := func() (fe *diag.FatalError, ok bool) {
		defer func() {
			fe, ok = diag.Recover(recover())
		}()
		diag.Raise(diag.KindIndexOutOfBounds, 4, "xs[4]")
		return
	}

	fe, ok := fatal()
	require.True(t, ok)
	require.Equal(t, diag.KindIndexOutOfBounds, fe.Kind)
}

func TestRecoverRejectsForeignPanics(t *testing.T) {
	func() {
		defer func() {
			_, ok := diag.Recover(recover())
			require.False(t, ok)
		}()
		panic("not a FatalError")
	}()
}

func TestTracebackAccumulatesFrames(t *testing.T) {
	fe := &diag.FatalError{Error: diag.New(diag.KindNilDereference, 12, "REF INT x")}
	fe.PushTrace(12, "assignation").PushTrace(9, "call add")

	tb := fe.Traceback()
	require.Contains(t, tb, "line 12: assignation")
	require.Contains(t, tb, "line 9: call add")
}
