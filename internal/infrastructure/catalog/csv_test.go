package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadParts_HeaderAndDecimalComma(t *testing.T) {
	in := "part_no;description;cost\nP-1;Filtro de aceite;10\nP-2;Bujía;5,50\n\n"
	parts, err := ReadParts(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, "P-1", parts[0].PartNo)
	assert.Equal(t, "Filtro de aceite", parts[0].Description)
	assert.Equal(t, "10", parts[0].Cost.String())
	assert.Equal(t, "5.5", parts[1].Cost.String())
	assert.Equal(t, PartID("P-1"), parts[0].ID, "el id se deriva del part_no")
}

func TestReadParts_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("P-9;Pistón cañería;12\n")
	require.NoError(t, err)

	parts, err := ReadParts(strings.NewReader(encoded), true)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "Pistón cañería", parts[0].Description)
}

func TestReadParts_DuplicateKeepsLast(t *testing.T) {
	parts, err := ReadParts(strings.NewReader("A;uno;1\nA;dos;2\n"), false)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "dos", parts[0].Description)
}

func TestReadParts_Errors(t *testing.T) {
	cases := map[string]string{
		"columnas faltantes": "A;solo descripción\n",
		"costo inválido":     "A;x;abc\n",
		"costo negativo":     "A;x;-1\n",
		"part_no vacío":      " ;x;1\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadParts(strings.NewReader(in), false)
			assert.Error(t, err)
		})
	}
}

func TestWriteSeedSQL_EscapesQuotes(t *testing.T) {
	var buf bytes.Buffer
	parts, err := ReadParts(strings.NewReader("O'R-1;Llave 1/2' ;3.25\n"), false)
	require.NoError(t, err)
	require.NoError(t, WriteSeedSQL(&buf, parts))

	out := buf.String()
	assert.Contains(t, out, "'O''R-1'")
	assert.Contains(t, out, "'Llave 1/2'''")
	assert.Contains(t, out, "ON CONFLICT (part_no)")
	assert.Contains(t, out, "3.25")
}
