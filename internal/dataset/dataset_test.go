package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var want = []Purchase{
	{Email: "anshika@gmail.com", Password: "Iamking@000", Product: "ZARA COAT 3"},
	{Email: "shetty@gmail.com", Password: "Iamking@000", Product: "ADIDAS ORIGINAL"},
}

func TestLoadFile_FormatsAgree(t *testing.T) {
	for _, file := range []string{"purchases.json", "purchases.yaml", "purchases.toml"} {
		t.Run(file, func(t *testing.T) {
			got, err := LoadFile(filepath.Join("testdata", file))

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing field", filepath.Join("testdata", "missing_product.json"), ErrInvalidRecord},
		{"unknown extension", filepath.Join("testdata", "purchases.csv"), ErrUnknownFormat},
		{"missing file", filepath.Join("testdata", "nope.json"), os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{JSON, `[{"email":"a@b.c","password":"x","productName":"P","qty":2}]`},
		{YAML, "- email: a@b.c\n  password: x\n  productName: P\n  qty: 2\n"},
		{TOML, "[[purchase]]\nemail = \"a@b.c\"\npassword = \"x\"\nproductName = \"P\"\nqty = 2\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestFromMaps(t *testing.T) {
	got, err := FromMaps([]map[string]string{
		{"email": "anshika@gmail.com", "password": "Iamking@000", "productName": "ZARA COAT 3"},
		{"email": "shetty@gmail.com", "password": "Iamking@000", "product": "ADIDAS ORIGINAL"},
	})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInline(t *testing.T) {
	got, err := Inline(want...)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Inline(Purchase{Email: "x@y.z"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.ErrorContains(t, err, "password, productName")
}

func TestDefault(t *testing.T) {
	records := Default()

	require.Len(t, records, 2)
	for _, r := range records {
		assert.NoError(t, r.Validate())
		assert.Equal(t, "IPHONE 13 PRO", r.Product)
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"data.json": JSON,
		"data.YML":  YAML,
		"data.yaml": YAML,
		"data.toml": TOML,
	}
	for path, format := range tests {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, format, got, path)
	}
}
