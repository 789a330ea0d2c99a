package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askpdf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askpdf/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("index.backend", "sqlite")
	_ = store.Set("index.file_name", "pages.db")
	_ = store.Set("index.incremental", false)
	_ = store.Set("vector.features", 4096)
	_ = store.Set("vector.stop_words", []string{"lorem"})
	_ = store.Set("vector.no_default_stop_words", true)
	_ = store.Set("extract.timeout_seconds", 30)
	_ = store.Set("source.extensions", []string{"PDF", ".txt"})
	_ = store.Set("watch.interval_seconds", 10)
	_ = store.Set("watch.settle_milliseconds", 250)
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.IndexBackendSQLite, settings.Index.Backend)
	assert.Equal(t, "pages.db", settings.Index.ResolvedFileName())
	assert.False(t, settings.Index.Incremental)
	assert.Equal(t, 4096, settings.Vector.Features)
	assert.Equal(t, []string{"lorem"}, settings.Vector.StopWords)
	assert.True(t, settings.Vector.NoDefaultStopWords)
	assert.Equal(t, 30*time.Second, settings.Extract.Timeout)
	assert.Equal(t, []string{".pdf", ".txt"}, settings.Source.Extensions)
	assert.Equal(t, 10*time.Second, settings.Watch.Interval)
	assert.Equal(t, 250*time.Millisecond, settings.Watch.Settle)
}

func TestSettingsService_Get_InvalidStoredValue(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("index.backend", "postgres")
	service := NewSettingsService(store)

	_, err := service.Get()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected any
	}{
		{"index.backend", "SQLite", "sqlite"},
		{"index.file_name", "custom.idx", "custom.idx"},
		{"index.incremental", "false", false},
		{"vector.features", "2048", 2048},
		{"vector.stop_words", "foo, bar,,", []string{"foo", "bar"}},
		{"vector.no_default_stop_words", "true", true},
		{"extract.timeout_seconds", "0", 0},
		{"source.extensions", "pdf,.TXT", []string{".pdf", ".txt"}},
		{"watch.interval_seconds", "5", 5},
		{"watch.settle_milliseconds", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			require.NoError(t, service.Set(tt.key, tt.value))

			val, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.expected, val)
			_, err := service.Get()
			assert.NoError(t, err)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"unknown.key", "x"},
		{"index.backend", "postgres"},
		{"index.file_name", "../escape.idx"},
		{"index.incremental", "maybe"},
		{"vector.features", "0"},
		{"vector.features", "many"},
		{"extract.timeout_seconds", "-1"},
		{"source.extensions", " , "},
		{"watch.interval_seconds", "-5"},
		{"watch.settle_milliseconds", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_Unset(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Set("vector.features", "16"))

	require.NoError(t, service.Unset("vector.features"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFeatureCount, settings.Vector.Features)
	assert.ErrorIs(t, service.Unset("nope"), domain.ErrInvalidInput)
}

func TestSettingsService_List(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Set("index.backend", "sqlite"))

	entries, err := service.List()

	require.NoError(t, err)
	require.Len(t, entries, len(SettingKeys()))
	byKey := make(map[string]string)
	for _, e := range entries {
		byKey[e.Key] = e.Value
		if e.Key == "index.backend" {
			assert.False(t, e.Default)
		} else {
			assert.True(t, e.Default, e.Key)
		}
	}
	assert.Equal(t, "sqlite", byKey["index.backend"])
	assert.Equal(t, ".askpdf.db", byKey["index.file_name"])
	assert.Equal(t, "true", byKey["index.incremental"])
	assert.Equal(t, "1048576", byKey["vector.features"])
	assert.Equal(t, ".pdf", byKey["source.extensions"])
	assert.Equal(t, "2", byKey["watch.interval_seconds"])
	assert.Equal(t, "500", byKey["watch.settle_milliseconds"])
}
