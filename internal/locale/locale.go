// Package locale holds the user-facing status strings. Messages are loaded
// from embedded per-language YAML catalogs; Arabic is the display language
// of record and the fallback for unknown locales.
package locale

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

const fallbackLanguage = "ar"

type Messages struct {
	Language        string
	Success         string
	UnsafeQuery     string
	ExecutionFailed string
	NoData          string
	InternalError   string
	NotReady        string
}

type catalogFile struct {
	Language string            `yaml:"language"`
	Messages map[string]string `yaml:"messages"`
}

// Load reads the catalog for language, falling back to Arabic when no
// catalog for that language is embedded.
func Load(language string) (*Messages, error) {
	data, err := catalogFS.ReadFile("catalogs/" + language + ".yaml")
	if err != nil {
		data, err = catalogFS.ReadFile("catalogs/" + fallbackLanguage + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read fallback catalog: %w", err)
		}
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse locale catalog: %w", err)
	}

	msgs := &Messages{
		Language:        file.Language,
		Success:         file.Messages["success"],
		UnsafeQuery:     file.Messages["unsafe_query"],
		ExecutionFailed: file.Messages["execution_failed"],
		NoData:          file.Messages["no_data"],
		InternalError:   file.Messages["internal_error"],
		NotReady:        file.Messages["not_ready"],
	}
	for key, value := range map[string]string{
		"success":          msgs.Success,
		"unsafe_query":     msgs.UnsafeQuery,
		"execution_failed": msgs.ExecutionFailed,
		"no_data":          msgs.NoData,
		"internal_error":   msgs.InternalError,
		"not_ready":        msgs.NotReady,
	} {
		if value == "" {
			return nil, fmt.Errorf("locale catalog %q is missing message %q", file.Language, key)
		}
	}
	return msgs, nil
}
