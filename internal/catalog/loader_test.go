package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonCatalog = `[
  {"title": "数据分析师 8K-15K", "salary_display": "8-15千/月", "average_salary": 11.5,
   "industries": ["互联网"], "primary_type": "I", "trait_vector": {"I": 0.6, "C": 0.2}},
  {"title": "数据分析师（双休）", "salary_display": "15-20千/月", "average_salary": 17.5,
   "industries": "['金融']", "primary_type": "I", "trait_vector": "{'I': 0.7}"}
]`

const yamlCatalog = `
jobs:
  - title: 平面设计
    salary_display: 6-9千/月
    average_salary: 7.5
    industries: [广告]
    primary_type: A
    trait_vector: {A: 0.8, I: 0.1}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderMemoizesByChecksum(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "jobs.json", jsonCatalog)
	loader := NewLoader(LoaderConfig{Path: path}, nil)

	reads := 0
	loader.readFile = func(p string) ([]byte, error) {
		reads++
		return os.ReadFile(p)
	}

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Len())
	assert.Equal(t, 17.5, first.Jobs()[0].AverageSalary)
	assert.NotZero(t, first.Checksum())

	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 2, reads)

	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "会计", "average_salary": 9, "primary_type": "C", "trait_vector": {"C": 1}}]`), 0o644))

	third, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, "会计", third.Jobs()[0].Title)
}

func TestLoaderInvalidate(t *testing.T) {
	t.Parallel()

	loader := NewLoader(LoaderConfig{Path: writeFile(t, "jobs.yaml", yamlCatalog)}, nil)

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Len())
	assert.Equal(t, []string{"广告"}, first.Jobs()[0].Industries)

	loader.Invalidate()

	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Jobs(), second.Jobs())
}

func TestLoaderDegrades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		fallback bool
		wantLen  int
	}{
		{name: "missing file falls back to sample", path: "/nonexistent/jobs.json", fallback: true, wantLen: Sample().Len()},
		{name: "missing file without fallback is empty", path: "/nonexistent/jobs.json", wantLen: 0},
		{name: "unsupported format", path: writeFile(t, "jobs.xlsx", "binary"), wantLen: 0},
		{name: "malformed document", path: writeFile(t, "jobs.json", "{not json"), wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader := NewLoader(LoaderConfig{Path: tt.path, FallbackToSample: tt.fallback}, nil)
			cat, err := loader.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, cat.Len())
		})
	}
}

func TestLoaderHonorsContext(t *testing.T) {
	t.Parallel()

	loader := NewLoader(LoaderConfig{Path: writeFile(t, "jobs.json", jsonCatalog)}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The build may win the race against the cancelled context; both outcomes are valid.
	cat, err := loader.Load(ctx)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
		return
	}
	assert.Equal(t, 1, cat.Len())
}

func TestParseRows(t *testing.T) {
	t.Parallel()

	_, err := ParseRows([]byte(`{"jobs": 5}`), FormatJSON)
	assert.Error(t, err)

	_, err = ParseRows([]byte(`[]`), Format("csv"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	rows, err := ParseRows([]byte(`[{"title": "a"}, 3]`), FormatJSON)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
