package stdenv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/stdenv"
)

func TestBuildDeclaresPiAndSqrt(t *testing.T) {
	env := stdenv.Build()

	piTag, ok := env.Table.Lookup("pi")
	require.True(t, ok)
	require.True(t, piTag.Global)

	sqrtTag, ok := env.Table.Lookup("sqrt")
	require.True(t, ok)
	require.Equal(t, "PROC (REAL) REAL", sqrtTag.Mode.String())
}

func TestFormatIntMatchesReportWidth(t *testing.T) {
	require.Equal(t, "         +7", stdenv.FormatInt(7))
	require.Equal(t, "        +20", stdenv.FormatInt(20))
	require.Equal(t, "        +15", stdenv.FormatInt(15))
}

func TestPrintArgIsUnitedOverNumericsAndString(t *testing.T) {
	env := stdenv.Build()
	require.Equal(t, 5, len(env.PrintArg.FieldPack))
}
