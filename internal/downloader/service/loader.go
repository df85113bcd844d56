package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rizkirmdhn/docfetch/pkg/models"
	"github.com/sirupsen/logrus"
)

var validate = newValidator()

// rawEntry uses pointers so that a missing field can be told apart from an empty one
type rawEntry struct {
	Title *string `json:"title" validate:"required"`
	URL   *string `json:"url" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadConfig reads and validates the download list at path
func (s *DownloaderService) LoadConfig(path string) ([]models.ConfigEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	if s.config.EchoConfig {
		fmt.Fprintf(s.out, "File content: %s\n", data)
	}
	s.log.WithFields(logrus.Fields{
		"path":    path,
		"content": string(data),
	}).Debug("Read download list")

	entries, err := ParseConfig(path, data)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"path":    path,
		"entries": len(entries),
	}).Info("Loaded download list")

	return entries, nil
}

// ParseConfig decodes data as a JSON array of {title, url} objects. path is
// only used to annotate errors.
func ParseConfig(path string, data []byte) ([]models.ConfigEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ParseError{Path: path, Index: -1, Err: err}
	}
	if items == nil {
		return nil, &ParseError{Path: path, Index: -1, Err: errors.New("expected a JSON array, got null")}
	}

	entries := make([]models.ConfigEntry, 0, len(items))
	for i, item := range items {
		entry, err := parseEntry(item)
		if err != nil {
			err.Path = path
			err.Index = i
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseEntry(item json.RawMessage) (models.ConfigEntry, *ParseError) {
	var raw rawEntry
	if err := json.Unmarshal(item, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.ConfigEntry{}, &ParseError{Field: typeErr.Field, Err: err}
		}
		return models.ConfigEntry{}, &ParseError{Err: err}
	}

	if err := validate.Struct(&raw); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) && len(valErrs) > 0 {
			return models.ConfigEntry{}, &ParseError{Field: valErrs[0].Field(), Err: ErrMissingField}
		}
		return models.ConfigEntry{}, &ParseError{Err: err}
	}

	return models.ConfigEntry{Title: *raw.Title, URL: *raw.URL}, nil
}
