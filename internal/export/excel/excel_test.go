package excel

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catalogo/internal/catalog"
	"catalogo/internal/logger"
)

func testGroups() []catalog.Group {
	return []catalog.Group{
		{
			Categoria: "TOURING",
			Grabado:   "Snake",
			Imagen:    "https://cdn/snake.png",
			Apps:      "NKD 125, Pulsar 180",
			Items: []catalog.Item{
				{SKU: "SNK-1", Medida: "90/90-18", Inventario: 5, PrecioSinIVA: 100000, PrecioConIVA: 119000, Precio35: 77350},
				{SKU: "SNK-2", Medida: "100/90-18", Inventario: 2, PrecioSinIVA: 108403.36, PrecioConIVA: 129000, Precio35: 83850},
			},
		},
		{
			Categoria: "ADVENTURE",
			Grabado:   "Ranger",
			Items: []catalog.Item{
				{SKU: "RNG-1", PrecioSinIVA: 84033.61, PrecioConIVA: 100000, Precio35: 65000},
			},
		},
	}
}

func TestWrite(t *testing.T) {
	w := NewWriter(logger.New("error"))

	var buf bytes.Buffer
	require.NoError(t, w.Write(context.Background(), &buf, testGroups(), Options{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	header, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, header, 4) // header + 3 SKUs

	assert.Equal(t, "CATEGORÍA", header[0][0])
	assert.Equal(t, "REF INTERNA", header[0][3])
	assert.Equal(t, "APLICACIONES", header[0][7])

	// one row per SKU, carrying the group-level columns
	assert.Equal(t, "TOURING", header[1][0])
	assert.Equal(t, "Snake", header[1][2])
	assert.Equal(t, "SNK-1", header[1][3])
	assert.Equal(t, "90/90-18", header[1][4])
	assert.Equal(t, "NKD 125, Pulsar 180", header[1][7])

	assert.Equal(t, "SNK-2", header[2][3])
	assert.Equal(t, "ADVENTURE", header[3][0])
	assert.Equal(t, "RNG-1", header[3][3])
}

func TestWritePrices(t *testing.T) {
	w := NewWriter(logger.New("error"))

	var buf bytes.Buffer
	require.NoError(t, w.Write(context.Background(), &buf, testGroups(), Options{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	conIVA, err := f.GetCellValue(sheetName, "F2")
	require.NoError(t, err)
	assert.Equal(t, "119000", conIVA)

	sinIVA, err := f.GetCellValue(sheetName, "G2")
	require.NoError(t, err)
	assert.Equal(t, "100000", sinIVA)
}

func TestWriteEmptyCatalog(t *testing.T) {
	w := NewWriter(logger.New("error"))

	var buf bytes.Buffer
	require.NoError(t, w.Write(context.Background(), &buf, nil, Options{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
