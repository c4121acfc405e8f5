package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/center-locator/internal/resolver"
)

func TestFileCatalogSource_Fixture(t *testing.T) {
	src := NewFileCatalogSource(fixturePath)
	assert.Equal(t, "file:"+fixturePath, src.Describe())

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, resolver.CenterRow{
		ID:       "LW-0323",
		Code:     "ES0323",
		Name:     "Padilla",
		City:     "Barcelona",
		Province: "Barcelona",
		Address:  "C/ Padilla 239",
	}, rows[1])
}

func TestFileCatalogSource_MissingFile(t *testing.T) {
	_, err := NewFileCatalogSource("does-not-exist.json").Load(context.Background())
	assert.Error(t, err)
}

func TestParseCatalog(t *testing.T) {
	testCases := []struct {
		name string
		ext  string
		data string
		want []resolver.CenterRow
	}{
		{
			name: "top-level array with english keys",
			ext:  ".json",
			data: `[{"id":"A1","code":"C1","name":"Gros","city":"San Sebastián","province":"Gipuzkoa","address":"C/ Zabaleta 22"}]`,
			want: []resolver.CenterRow{{ID: "A1", Code: "C1", Name: "Gros", City: "San Sebastián", Province: "Gipuzkoa", Address: "C/ Zabaleta 22"}},
		},
		{
			name: "numbers are formatted and other types dropped",
			ext:  ".json",
			data: `{"centers":[{"id_centro":105,"codigo":"ES0105","nombre":true,"poblacion":"Madrid","provincia":null,"direccion":12.5}]}`,
			want: []resolver.CenterRow{{ID: "105", Code: "ES0105", Name: "", City: "Madrid", Province: "", Address: "12.5"}},
		},
		{
			name: "missing address",
			ext:  "",
			data: `{"centers":[{"id_centro":"X","codigo":"Y","nombre":"N","poblacion":"P","provincia":"Q"}]}`,
			want: []resolver.CenterRow{{ID: "X", Code: "Y", Name: "N", City: "P", Province: "Q"}},
		},
		{
			name: "spanish keys win over english keys",
			ext:  ".json",
			data: `[{"id_centro":"ES","id":"EN","codigo":"c","nombre":"n"}]`,
			want: []resolver.CenterRow{{ID: "ES", Code: "c", Name: "n"}},
		},
		{
			name: "yaml",
			ext:  ".yaml",
			data: "centers:\n  - id_centro: LW-0610\n    codigo: ES0610\n    nombre: Gros\n    poblacion: San Sebastián\n    provincia: Gipuzkoa\n    direccion: C/ Zabaleta 22\n  - id: 7\n    code: ES0007\n",
			want: []resolver.CenterRow{
				{ID: "LW-0610", Code: "ES0610", Name: "Gros", City: "San Sebastián", Province: "Gipuzkoa", Address: "C/ Zabaleta 22"},
				{ID: "7", Code: "ES0007"},
			},
		},
		{
			name: "non-object item keeps its position",
			ext:  ".json",
			data: `["oops", {"id":"A","code":"B"}]`,
			want: []resolver.CenterRow{{}, {ID: "A", Code: "B"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := ParseCatalog([]byte(tc.data), tc.ext)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rows)
		})
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	for name, data := range map[string]string{
		"broken json":      `{"centers": [`,
		"no centers key":   `{"items": []}`,
		"scalar top level": `"hello"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(data), ".json")
			assert.Error(t, err)
		})
	}
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "abc", coerceString("abc"))
	assert.Equal(t, "42", coerceString(42))
	assert.Equal(t, "42", coerceString(int64(42)))
	assert.Equal(t, "7", coerceString(int32(7)))
	assert.Equal(t, "1.5", coerceString(1.5))
	assert.Equal(t, "", coerceString(false))
	assert.Equal(t, "", coerceString([]any{"a"}))
}
