// Package dataset supplies the purchase records that drive the purchase scenario
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRecord is returned for records missing a required field
var ErrInvalidRecord = errors.New("invalid purchase record")

// ErrUnknownFormat is returned for files whose extension names no supported format
var ErrUnknownFormat = errors.New("unknown dataset format")

// Purchase is one account buying one product
type Purchase struct {
	Email    string `json:"email" yaml:"email" toml:"email"`
	Password string `json:"password" yaml:"password" toml:"password"`
	Product  string `json:"productName" yaml:"productName" toml:"productName"`
}

// Validate checks that every field is set
func (p Purchase) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Email) == "" {
		missing = append(missing, "email")
	}
	if p.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(p.Product) == "" {
		missing = append(missing, "productName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRecord, strings.Join(missing, ", "))
	}
	return nil
}

// Format is a dataset file encoding
type Format string

// Formats
const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf infers the format from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Default returns the two records the purchase scenario runs with when no file is given
func Default() []Purchase {
	return []Purchase{
		{Email: "anshika@gmail.com", Password: "Iamking@000", Product: "IPHONE 13 PRO"},
		{Email: "shetty@gmail.com", Password: "Iamking@000", Product: "IPHONE 13 PRO"},
	}
}

// Inline validates records written in code
func Inline(records ...Purchase) ([]Purchase, error) {
	return validateAll(records)
}

// FromMaps converts string maps keyed email, password and productName.
// "product" is accepted in place of productName.
func FromMaps(rows []map[string]string) ([]Purchase, error) {
	records := make([]Purchase, 0, len(rows))
	for _, row := range rows {
		p := Purchase{
			Email:    row["email"],
			Password: row["password"],
			Product:  row["productName"],
		}
		if p.Product == "" {
			p.Product = row["product"]
		}
		records = append(records, p)
	}
	return validateAll(records)
}

// LoadFile reads records from a JSON, YAML or TOML file
func LoadFile(path string) ([]Purchase, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	records, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return records, nil
}

// tomlDocument holds records as an array of [[purchase]] tables
type tomlDocument struct {
	Purchases []Purchase `toml:"purchase"`
}

// Parse decodes records. JSON and YAML documents are a top-level list;
// TOML documents use [[purchase]] tables.
func Parse(data []byte, format Format) ([]Purchase, error) {
	var records []Purchase
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case TOML:
		var doc tomlDocument
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode toml: %w", err)
		}
		records = doc.Purchases
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return validateAll(records)
}

func validateAll(records []Purchase) ([]Purchase, error) {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}
