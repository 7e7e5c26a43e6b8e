package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries all runtime settings. Values come from the environment,
// optionally seeded from a .env file; every field has a working default
// except the database URL and the Azure credentials.
type Config struct {
	Port        string
	DatabaseURL string

	// OCRProvider selects the recognition engine: "tesseract" (local) or
	// "azure" (Computer Vision).
	OCRProvider   string
	AzureEndpoint string
	AzureKey      string
	TesseractLang string

	// Raster fallback settings. DPI defaults to 144, twice the 72 dpi
	// native PDF resolution, so small receipt fonts stay OCR-legible.
	PdftoppmPath string
	RasterDPI    int

	// Layout reconstruction thresholds, in PDF user-space units.
	RowTolerance float64
	LineGap      float64
	ColumnGap    float64

	// DenylistExtra adds storefront-specific boilerplate keywords on top
	// of the built-in denylist. Comma-separated.
	DenylistExtra []string
}

func Load() *Config {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		OCRProvider:   getenv("OCR_PROVIDER", "tesseract"),
		AzureEndpoint: os.Getenv("AZURE_VISION_ENDPOINT"),
		AzureKey:      os.Getenv("AZURE_VISION_KEY"),
		TesseractLang: getenv("TESSERACT_LANG", "eng"),
		PdftoppmPath:  getenv("PDFTOPPM_PATH", "pdftoppm"),
		RasterDPI:     getenvInt("RASTER_DPI", 144),
		RowTolerance:  getenvFloat("LAYOUT_ROW_TOLERANCE", 5),
		LineGap:       getenvFloat("LAYOUT_LINE_GAP", 10),
		ColumnGap:     getenvFloat("LAYOUT_COLUMN_GAP", 20),
	}
	if extra := os.Getenv("DENYLIST_EXTRA"); extra != "" {
		for _, kw := range strings.Split(extra, ",") {
			kw = strings.TrimSpace(strings.ToLower(kw))
			if kw != "" {
				cfg.DenylistExtra = append(cfg.DenylistExtra, kw)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
