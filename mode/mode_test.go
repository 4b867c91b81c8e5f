package mode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a68core/a68/mode"
)

func TestStandardModesPreinterned(t *testing.T) {
	tbl := mode.NewTable()

	i, ok := tbl.Standard("INT")
	require.True(t, ok)
	require.Equal(t, mode.Int, i.Kind)
	require.Equal(t, "INT", i.String())

	li, ok := tbl.Standard("LONG INT")
	require.True(t, ok)
	require.Equal(t, 1, li.Lengths)
	require.Equal(t, "LONG INT", li.String())
}

func TestRefFlexRowWidthAndString(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")

	refInt := tbl.Ref(i)
	require.Equal(t, "REF INT", refInt.String())
	require.Equal(t, 1, refInt.Width())
	require.True(t, refInt.HasRef())
	require.False(t, refInt.HasFlex())
	require.False(t, refInt.HasRows())

	row := tbl.Row(1, i)
	require.Equal(t, "[] INT", row.String())
	require.True(t, row.HasRows())

	flex := tbl.Flex(row)
	require.True(t, flex.HasFlex())
	require.True(t, flex.HasRows())
}

func TestStructWidthSumsFields(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")

	s := tbl.Struct(mode.Pack{
		{Mode: i, Name: "x"},
		{Mode: r, Name: "y"},
	})
	require.Equal(t, 2, s.Width())
	require.Contains(t, s.String(), "STRUCT (")
}

func TestUnionWidthIsMaxPlusTag(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	complexMode := tbl.MustStandard("COMPLEX")

	u := tbl.Union(mode.Pack{{Mode: i}, {Mode: complexMode}})
	require.Equal(t, complexMode.Width()+1, u.Width())
}

func TestUnionNormalisationAbsorbsRefVariant(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	refInt := tbl.Ref(i)

	u := tbl.Union(mode.Pack{{Mode: i}, {Mode: refInt}})
	require.Len(t, u.FieldPack, 1)
	require.Equal(t, refInt.Canonical(), u.FieldPack[0].Mode.Canonical())
}

func TestUnionNormalisationFlattensNested(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	b := tbl.MustStandard("BOOL")
	c := tbl.MustStandard("CHAR")

	inner := tbl.Union(mode.Pack{{Mode: i}, {Mode: b}})
	outer := tbl.Union(mode.Pack{{Mode: inner}, {Mode: c}})

	require.Len(t, outer.FieldPack, 3)
}

func TestUnionNormalisationContractsDuplicates(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")

	u := tbl.Union(mode.Pack{{Mode: i}, {Mode: i}})
	require.Len(t, u.FieldPack, 1)
}

func TestRecursiveStructThroughRefIsWellFormed(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")

	a := tbl.Indicant("A")
	b := tbl.Struct(mode.Pack{{Mode: i, Name: "x"}, {Mode: a.NameMode(tbl), Name: "next"}})
	a.Bind(b)

	require.True(t, a.WellFormed())
}

func TestDirectlyRecursiveStructIsIllFormed(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")

	a := tbl.Indicant("A")
	b := tbl.Struct(mode.Pack{{Mode: i, Name: "x"}, {Mode: a, Name: "loop"}})
	a.Bind(b)

	require.False(t, a.WellFormed())
}

func TestCanonicaliseCollapsesStructurallyEqualStructs(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	r := tbl.MustStandard("REAL")

	s1 := tbl.Struct(mode.Pack{{Mode: i, Name: "x"}, {Mode: r, Name: "y"}})
	s2 := tbl.Struct(mode.Pack{{Mode: i, Name: "x"}, {Mode: r, Name: "y"}})
	require.NotSame(t, s1, s2)

	tbl.Canonicalise()
	require.Same(t, s1.Canonical(), s2.Canonical())
}

func TestCanonicaliseKeepsDifferentFieldNamesApart(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")

	s1 := tbl.Struct(mode.Pack{{Mode: i, Name: "x"}})
	s2 := tbl.Struct(mode.Pack{{Mode: i, Name: "z"}})

	tbl.Canonicalise()
	require.NotEqual(t, s1.Canonical(), s2.Canonical())
}

func TestDerivedModesAreMemoised(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")

	n1 := i.NameMode(tbl)
	n2 := i.NameMode(tbl)
	require.Same(t, n1, n2)

	row1 := i.MultipleMode(tbl, 2)
	row2 := i.MultipleMode(tbl, 2)
	require.Same(t, row1, row2)
	require.Equal(t, 2, row1.Dimension)
}

func TestSliceModeOfRowIsElementMode(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	row := tbl.Row(1, i)

	require.Same(t, i, row.SliceMode(tbl))
}

func TestDeflexModeStripsFlexOnly(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	row := tbl.Row(1, i)
	flex := tbl.Flex(row)

	require.Same(t, row, flex.DeflexMode(tbl))
	require.Same(t, row, row.DeflexMode(tbl))
}

func TestVariantOfStripsRefLayers(t *testing.T) {
	tbl := mode.NewTable()
	i := tbl.MustStandard("INT")
	refInt := tbl.Ref(i)
	refRefInt := tbl.Ref(refInt)

	require.True(t, mode.VariantOf(i, refRefInt))
	require.False(t, mode.VariantOf(refRefInt, i))
}
