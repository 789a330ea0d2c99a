package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyIndexBackend      = "index.backend"
	keyIndexFileName     = "index.file_name"
	keyIndexIncremental  = "index.incremental"
	keyVectorFeatures    = "vector.features"
	keyVectorStopWords   = "vector.stop_words"
	keyVectorNoDefaults  = "vector.no_default_stop_words"
	keyExtractTimeout    = "extract.timeout_seconds"
	keySourceExtensions  = "source.extensions"
	keyWatchIntervalSecs = "watch.interval_seconds"
	keyWatchSettleMillis = "watch.settle_milliseconds"
)

// SettingKeys returns every configuration key the settings service knows.
func SettingKeys() []string {
	keys := []string{
		keyIndexBackend,
		keyIndexFileName,
		keyIndexIncremental,
		keyVectorFeatures,
		keyVectorStopWords,
		keyVectorNoDefaults,
		keyExtractTimeout,
		keySourceExtensions,
		keyWatchIntervalSecs,
		keyWatchSettleMillis,
	}
	sort.Strings(keys)
	return keys
}

// SettingsService resolves domain.Settings from a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get resolves settings. Unset keys take their defaults; stored values that
// cannot be used are rejected so a typo never silently changes behaviour.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if v := s.configStore.GetString(keyIndexBackend); v != "" {
		settings.Index.Backend = domain.IndexBackend(v)
	}
	settings.Index.FileName = s.configStore.GetString(keyIndexFileName)
	if v, ok := s.configStore.GetBool(keyIndexIncremental); ok {
		settings.Index.Incremental = v
	}
	if v, ok := s.getInt(keyVectorFeatures); ok {
		settings.Vector.Features = v
	}
	settings.Vector.StopWords = s.configStore.GetStringSlice(keyVectorStopWords)
	if v, ok := s.configStore.GetBool(keyVectorNoDefaults); ok {
		settings.Vector.NoDefaultStopWords = v
	}
	if v, ok := s.getInt(keyExtractTimeout); ok {
		settings.Extract.Timeout = time.Duration(v) * time.Second
	}
	if v := s.configStore.GetStringSlice(keySourceExtensions); len(v) > 0 {
		settings.Source.Extensions = normaliseExtensions(v)
	}
	if v, ok := s.getInt(keyWatchIntervalSecs); ok && v > 0 {
		settings.Watch.Interval = time.Duration(v) * time.Second
	}
	if v, ok := s.getInt(keyWatchSettleMillis); ok && v >= 0 {
		settings.Watch.Settle = time.Duration(v) * time.Millisecond
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

func (s *SettingsService) getInt(key string) (int, bool) {
	if _, ok := s.configStore.Get(key); !ok {
		return 0, false
	}
	return s.configStore.GetInt(key), true
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	return s.configStore.Set(key, parsed)
}

// Unset removes key so its default applies again.
func (s *SettingsService) Unset(key string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// List returns every known key with its effective value.
func (s *SettingsService) List() ([]driving.SettingEntry, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	keys := SettingKeys()
	entries := make([]driving.SettingEntry, 0, len(keys))
	for _, key := range keys {
		_, stored := s.configStore.Get(key)
		entries = append(entries, driving.SettingEntry{
			Key:     key,
			Value:   formatSetting(settings, key),
			Default: !stored,
		})
	}
	return entries, nil
}

func isKnownKey(key string) bool {
	for _, k := range SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

func parseSetting(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case keyIndexBackend:
		b := domain.IndexBackend(strings.ToLower(value))
		if !b.IsValid() {
			return nil, fmt.Errorf("%w: %s must be one of %s", domain.ErrInvalidInput, key, backendNames())
		}
		return b.String(), nil
	case keyIndexFileName:
		if strings.ContainsAny(value, `/\`) {
			return nil, fmt.Errorf("%w: %s must be a file name, not a path", domain.ErrInvalidInput, key)
		}
		return value, nil
	case keyIndexIncremental, keyVectorNoDefaults:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil
	case keyVectorFeatures, keyWatchIntervalSecs:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case keyExtractTimeout, keyWatchSettleMillis:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be zero or a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case keyVectorStopWords:
		return splitList(value), nil
	case keySourceExtensions:
		exts := normaliseExtensions(splitList(value))
		if len(exts) == 0 {
			return nil, fmt.Errorf("%w: %s needs at least one extension", domain.ErrInvalidInput, key)
		}
		return exts, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func formatSetting(settings domain.Settings, key string) string {
	switch key {
	case keyIndexBackend:
		return settings.Index.Backend.String()
	case keyIndexFileName:
		return settings.Index.ResolvedFileName()
	case keyIndexIncremental:
		return strconv.FormatBool(settings.Index.Incremental)
	case keyVectorFeatures:
		return strconv.Itoa(settings.Vector.Features)
	case keyVectorStopWords:
		return strings.Join(settings.Vector.StopWords, ",")
	case keyVectorNoDefaults:
		return strconv.FormatBool(settings.Vector.NoDefaultStopWords)
	case keyExtractTimeout:
		return strconv.Itoa(int(settings.Extract.Timeout / time.Second))
	case keySourceExtensions:
		return strings.Join(settings.Source.Extensions, ",")
	case keyWatchIntervalSecs:
		return strconv.Itoa(int(settings.Watch.Interval / time.Second))
	case keyWatchSettleMillis:
		return strconv.Itoa(int(settings.Watch.Settle / time.Millisecond))
	default:
		return ""
	}
}

// splitList splits a comma separated value, dropping empty items.
func splitList(value string) []string {
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// normaliseExtensions lower-cases extensions and adds a leading dot.
func normaliseExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func backendNames() string {
	names := make([]string, 0, len(domain.AllIndexBackends()))
	for _, b := range domain.AllIndexBackends() {
		names = append(names, b.String())
	}
	return strings.Join(names, ", ")
}
