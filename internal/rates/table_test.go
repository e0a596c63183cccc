package rates_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
	"gstrecon/internal/rates"
)

func masterEntries() []port.HSNEntry {
	return []port.HSNEntry{
		{Code: "8471", Description: "Automatic data processing machines", GSTRate: 18},
		{Code: "847130", Description: "Portable computers, laptops", GSTRate: 18},
		{Code: "1006", Description: "Rice", GSTRate: 5},
	}
}

func TestTableLookup_ByHSN(t *testing.T) {
	kw, err := rates.LoadKeywords("")
	require.NoError(t, err)
	table := rates.NewTableLookup(masterEntries(), kw)

	got, err := table.Lookup(context.Background(), "10061010")
	require.NoError(t, err)
	assert.Equal(t, "5%", got)

	got, err = table.Lookup(context.Background(), "84713010")
	require.NoError(t, err)
	assert.Equal(t, "18%", got)

	// not in the master, present in the keyword file's code list
	got, err = table.Lookup(context.Background(), "8703")
	require.NoError(t, err)
	assert.Equal(t, "28%", got)
}

func TestTableLookup_ByAliasAndDescription(t *testing.T) {
	kw, err := rates.LoadKeywords("")
	require.NoError(t, err)
	table := rates.NewTableLookup(masterEntries(), kw)

	got, err := table.Lookup(context.Background(), "Freight")
	require.NoError(t, err)
	assert.Equal(t, "5%", got)

	got, err = table.Lookup(context.Background(), "processing")
	require.NoError(t, err)
	assert.Equal(t, "18%", got)

	_, err = table.Lookup(context.Background(), "general")
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestTableLookup_Resolve(t *testing.T) {
	kw, err := rates.LoadKeywords("")
	require.NoError(t, err)
	table := rates.NewTableLookup(masterEntries(), kw)

	r := table.Resolve("8471", "")
	require.NotNil(t, r.Rate)
	assert.Equal(t, 18.0, *r.Rate)
	assert.Equal(t, "hsn", r.Source)
	assert.Equal(t, "8471", r.Matched)

	r = table.Resolve("", "Two office chairs with armrest")
	require.NotNil(t, r.Rate)
	assert.Equal(t, "keyword", r.Source)
	assert.Equal(t, "chair", r.Matched)

	r = table.Resolve("0000", "something else")
	assert.Nil(t, r.Rate)
	assert.Equal(t, "none", r.Source)
}

func TestTableLookup_ReplaceHSN(t *testing.T) {
	table := rates.NewTableLookup(nil, nil)
	_, err := table.Lookup(context.Background(), "1006")
	assert.ErrorIs(t, err, domain.ErrRateNotFound)

	table.ReplaceHSN(masterEntries())
	assert.Equal(t, 3, table.Size())
	got, err := table.Lookup(context.Background(), "1006")
	require.NoError(t, err)
	assert.Equal(t, "5%", got)
}

func TestLoadKeywords_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kw.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords:\n  - name: solar\n    rate: 12\n    aliases: [\" Solar Panel \"]\n"), 0o600))

	kw, err := rates.LoadKeywords(path)
	require.NoError(t, err)
	require.Len(t, kw.Keywords, 1)
	assert.Equal(t, []string{"solar panel"}, kw.Keywords[0].Aliases)

	_, err = rates.LoadKeywords(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
