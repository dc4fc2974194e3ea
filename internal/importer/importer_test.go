package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

const header = "Responsable,Iniciativa,Orden,Quarter,Vertical,Título,Método,Nivel\n"

func newImporter(maxRows int) *Importer {
	return New(catalog.Default(), maxRows, logger.NewNop())
}

func TestParseBracketTitle(t *testing.T) {
	res, err := newImporter(0).Parse(strings.NewReader(header +
		"K,A_6.001,3,Q2.24,FLW,[Home] Motivo de visita,Encuesta + Tracking,Táctico\n"))
	require.NoError(t, err)
	require.Len(t, res.Studies, 1)

	s := res.Studies[0]
	assert.Equal(t, "M-6-003", s.ID)
	assert.Equal(t, "Home", s.SubproductName)
	assert.Equal(t, "Motivo de visita", s.TitleShort)
	assert.Equal(t, "Seguimiento", s.InitiativeTypeLabel)
	assert.Equal(t, "flow", s.ProductID)
	assert.Equal(t, "tactico", s.LevelKey)
	assert.Equal(t, "K", s.Responsible)
	assert.Equal(t, []string{"Encuesta", "Tracking"}, s.Techniques)
	assert.Equal(t, ImportedStatus, s.Status)
	assert.NotNil(t, s.Links)
	assert.NotNil(t, s.Roles.Vendor)
	assert.Empty(t, res.Dropped)
}

func TestParseMissingLevelColumnRejectsBatch(t *testing.T) {
	csv := "Responsable,Iniciativa,Orden,Quarter,Vertical,Título,Método\n" +
		"K,A_6.001,3,Q2.24,FLW,Home,Encuesta\n"
	res, err := newImporter(0).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrMissingColumns))

	var mce *MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []Column{ColLevel}, mce.Missing)
	assert.Equal(t, RequiredColumns, mce.Required)
	for _, col := range RequiredColumns {
		assert.Contains(t, err.Error(), string(col))
	}
}

func TestParseHeaderVariantsAndBOM(t *testing.T) {
	csv := "\uFEFFRESP , tipo de iniciativa,Nº,trimestre,Código Vertical,TITULO CORTO,Técnicas,  level \n" +
		"m,\"2 - Discovery\",12,q1.25,app,\"Checkout, \"\"express\"\"\",mix,Estratégico\n"
	res, err := newImporter(0).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Studies, 1)

	s := res.Studies[0]
	assert.Equal(t, "M-2-012", s.ID)
	assert.Equal(t, "M", s.Responsible)
	assert.Equal(t, "Q1.25", s.Quarter)
	assert.Equal(t, "APP", s.VerticalCode)
	assert.Equal(t, "app", s.ProductID)
	assert.Equal(t, `Checkout, "express"`, s.TitleShort)
	assert.Equal(t, []string{"Mix"}, s.Techniques)
	assert.Equal(t, "estrategico", s.LevelKey)
}

func TestParseTolerantFields(t *testing.T) {
	res, err := newImporter(0).Parse(strings.NewReader(header +
		"Z,A_0.001,abc,Q3.25,CRO,Mapa de actores,,Desconocido\n"))
	require.NoError(t, err)
	require.Len(t, res.Studies, 1)

	s := res.Studies[0]
	assert.Equal(t, "M-0-000", s.ID)
	assert.Equal(t, "", s.Responsible)
	assert.Equal(t, "", s.LevelKey)
	assert.Equal(t, []string{}, s.Techniques)
	assert.Equal(t, "sfe", s.ProductID)
}

func TestParseDropsUnusableRows(t *testing.T) {
	csv := header +
		"K,A_7.001,1,Q2.24,FLW,Sin tipo,Encuesta,Táctico\n" +
		"K,Otro,1,Q2.24,FLW,Sin tipo,Encuesta,Táctico\n" +
		"K,A_6.001,2,Q2.24,XXX,Vertical mala,Encuesta,Táctico\n" +
		"K,A_6.001,3,Q2.24,FLW,[Solo tag],Encuesta,Táctico\n" +
		",,,,,,,\n" +
		"K,A_6.001,4,Q2.24,FLW,Válido,Encuesta,Táctico\n"
	res, err := newImporter(0).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Studies, 1)
	assert.Equal(t, "M-6-004", res.Studies[0].ID)
	assert.Equal(t, 5, res.Rows)
	require.Len(t, res.Dropped, 4)
	assert.Equal(t, DroppedRow{Line: 2, Reason: "unknown initiative type"}, res.Dropped[0])
	assert.Equal(t, "unknown vertical", res.Dropped[2].Reason)
	assert.Equal(t, DroppedRow{Line: 5, Reason: "empty title"}, res.Dropped[3])
}

func TestParseKeepsDuplicateIDs(t *testing.T) {
	res, err := newImporter(0).Parse(strings.NewReader(header +
		"K,A_6.001,1,Q2.24,FLW,Uno,Encuesta,Táctico\n" +
		"K,A_6.001,1,Q2.24,FLW,Dos,Encuesta,Táctico\n"))
	require.NoError(t, err)
	require.Len(t, res.Studies, 2)
	assert.Equal(t, res.Studies[0].ID, res.Studies[1].ID)
}

func TestParseRowLimitAndEmptyInput(t *testing.T) {
	_, err := newImporter(1).Parse(strings.NewReader(header +
		"K,A_6.001,1,Q2.24,FLW,Uno,Encuesta,Táctico\n" +
		"K,A_6.001,2,Q2.24,FLW,Dos,Encuesta,Táctico\n"))
	assert.ErrorIs(t, err, ErrTooManyRows)

	_, err = newImporter(0).Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestSplitTitle(t *testing.T) {
	title, sub := SplitTitle("  Motivo  [Home]  de visita ")
	assert.Equal(t, "Motivo de visita", title)
	assert.Equal(t, "Home", sub)

	title, sub = SplitTitle("Sin tag")
	assert.Equal(t, "Sin tag", title)
	assert.Equal(t, "", sub)
}

func TestParseTechniques(t *testing.T) {
	assert.Equal(t, []string{"Entrevistas", "Encuesta", "Card sorting"}, ParseTechniques("Entrevistas + Encuesta, Card sorting,"))
	assert.Equal(t, []string{"Mix"}, ParseTechniques(" MIX "))
	assert.Equal(t, []string{}, ParseTechniques("  "))
}
