package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/mrlokans/shelfcheck/internal/library"
	"github.com/mrlokans/shelfcheck/internal/matching"
	"github.com/mrlokans/shelfcheck/internal/metadata"
	"github.com/mrlokans/shelfcheck/internal/reconcile"
)

type (
	Config struct {
		HTTP
		Global
		Matching
		Sort
		Metadata
		Upload
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Matching struct {
		MinFragmentLength  int
		FragmentDelimiters string // Every character splits a title into fragments
	}
	Sort struct {
		Locale string // BCP 47 tag, e.g. "fr" or "en-GB"
	}
	Metadata struct {
		BaseURL             string
		Timeout             time.Duration
		RateInterval        time.Duration // Minimum delay between two Google Books calls
		Concurrency         int
		OpenLibraryFallback bool // Ask OpenLibrary when Google Books has no volume
		OpenLibraryBaseURL  string
		CacheDir            string // Fetched books are cached on disk when set
	}
	Upload struct {
		MaxFileSize int64
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Matching heuristics
	v.SetDefault("match_min_fragment_length", matching.DefaultMinFragmentLength)
	v.SetDefault("match_fragment_delimiters", matching.DefaultFragmentDelimiters)
	v.SetDefault("sort_locale", DefaultSortLocale)

	// Metadata defaults
	v.SetDefault("metadata_base_url", metadata.DefaultGoogleBooksBaseURL)
	v.SetDefault("metadata_timeout", "10s")
	v.SetDefault("metadata_rate_interval", "200ms")
	v.SetDefault("metadata_concurrency", 4)
	v.SetDefault("metadata_openlibrary_fallback", true)
	v.SetDefault("metadata_openlibrary_base_url", metadata.DefaultOpenLibraryBaseURL)
	v.SetDefault("metadata_cache_dir", "")

	v.SetDefault("upload_max_file_size", DefaultUploadMaxFileSize)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Matching: Matching{
			MinFragmentLength:  v.GetInt("MATCH_MIN_FRAGMENT_LENGTH"),
			FragmentDelimiters: v.GetString("MATCH_FRAGMENT_DELIMITERS"),
		},
		Sort: Sort{
			Locale: v.GetString("SORT_LOCALE"),
		},
		Metadata: Metadata{
			BaseURL:             v.GetString("METADATA_BASE_URL"),
			Timeout:             v.GetDuration("METADATA_TIMEOUT"),
			RateInterval:        v.GetDuration("METADATA_RATE_INTERVAL"),
			Concurrency:         v.GetInt("METADATA_CONCURRENCY"),
			OpenLibraryFallback: v.GetBool("METADATA_OPENLIBRARY_FALLBACK"),
			OpenLibraryBaseURL:  v.GetString("METADATA_OPENLIBRARY_BASE_URL"),
			CacheDir:            v.GetString("METADATA_CACHE_DIR"),
		},
		Upload: Upload{
			MaxFileSize: v.GetInt64("UPLOAD_MAX_FILE_SIZE"),
		},
	}
}

// SortLanguage parses the sort locale, falling back to French when the tag
// is not valid BCP 47.
func (c *Config) SortLanguage() language.Tag {
	tag, err := language.Parse(c.Sort.Locale)
	if err != nil {
		log.Printf("Warning: invalid SORT_LOCALE %q, using %s: %v", c.Sort.Locale, DefaultSortLocale, err)
		return language.French
	}
	return tag
}

// MetadataProvider builds the Google Books client, backed by OpenLibrary
// when the fallback is enabled and by the disk cache when a directory is set.
func (c *Config) MetadataProvider() metadata.Provider {
	var provider metadata.Provider = metadata.NewGoogleBooksClient(metadata.GoogleBooksConfig{
		BaseURL:      c.Metadata.BaseURL,
		Timeout:      c.Metadata.Timeout,
		RateInterval: c.Metadata.RateInterval,
	})
	if c.Metadata.OpenLibraryFallback {
		provider = metadata.NewFallbackProvider(
			provider,
			metadata.NewOpenLibraryClient(c.Metadata.OpenLibraryBaseURL, c.Metadata.Timeout),
		)
	}
	if c.Metadata.CacheDir == "" {
		return provider
	}

	cached, err := metadata.NewCachingProvider(provider, c.Metadata.CacheDir)
	if err != nil {
		log.Printf("Warning: metadata cache disabled: %v", err)
		return provider
	}
	return cached
}

// ReconcileOptions gathers the parsing, matching and fetching settings.
func (c *Config) ReconcileOptions() reconcile.Options {
	return reconcile.Options{
		Library: library.Options{
			Locale: c.SortLanguage(),
		},
		Matching: matching.Options{
			MinFragmentLength:  c.Matching.MinFragmentLength,
			FragmentDelimiters: c.Matching.FragmentDelimiters,
		},
		FetchConcurrency: c.Metadata.Concurrency,
	}
}
