package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/docbridge/docbridge/pkg/docstore"
)

// Config is the CLI configuration file layout.
type Config struct {
	Connection ConnectionSection `yaml:"connection"`
	Schemas    []SchemaSection   `yaml:"schemas"`
}

// ConnectionSection configures the backend connection.
type ConnectionSection struct {
	Type     string            `yaml:"type"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	Options  map[string]string `yaml:"options"`
}

// SchemaSection declares one document schema.
type SchemaSection struct {
	Name    string         `yaml:"name"`
	IDField string         `yaml:"idField"`
	Fields  []FieldSection `yaml:"fields"`
}

// FieldSection declares one schema field.
type FieldSection struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Fields []FieldSection `yaml:"fields"`
}

// LoadConfig reads and parses the YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Connection.Type == "" {
		cfg.Connection.Type = "riak"
	}
	return &cfg, nil
}

// ConnectionConfig converts the connection section into the store layer's
// configuration.
func (c *Config) ConnectionConfig() docstore.ConnectionConfig {
	options := make(map[string]interface{}, len(c.Connection.Options))
	for k, v := range c.Connection.Options {
		options[k] = v
	}
	return docstore.ConnectionConfig{
		ConnectionType: c.Connection.Type,
		Host:           c.Connection.Host,
		Port:           c.Connection.Port,
		Username:       c.Connection.Username,
		Password:       c.Connection.Password,
		Options:        options,
	}
}

// Schema resolves a declared schema by name.
func (c *Config) Schema(name string) (*docstore.Schema, error) {
	for _, section := range c.Schemas {
		if section.Name == name {
			return buildSchema(section)
		}
	}
	return nil, fmt.Errorf("schema %q is not declared in the config", name)
}

func buildSchema(section SchemaSection) (*docstore.Schema, error) {
	idField := section.IDField
	if idField == "" {
		idField = "id"
	}
	fields, err := buildFields(section.Fields)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", section.Name, err)
	}
	return docstore.NewSchema(section.Name, idField, fields), nil
}

func buildFields(sections []FieldSection) ([]docstore.Field, error) {
	fields := make([]docstore.Field, 0, len(sections))
	for _, section := range sections {
		fieldType, err := parseFieldType(section.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", section.Name, err)
		}
		sub, err := buildFields(section.Fields)
		if err != nil {
			return nil, err
		}
		fields = append(fields, docstore.Field{Name: section.Name, Type: fieldType, Fields: sub})
	}
	return fields, nil
}

func parseFieldType(name string) (docstore.FieldType, error) {
	switch name {
	case "", "undefined":
		return docstore.FieldUndefined, nil
	case "integer", "int":
		return docstore.FieldInteger, nil
	case "float", "double":
		return docstore.FieldFloat, nil
	case "string", "text":
		return docstore.FieldString, nil
	case "bool", "boolean":
		return docstore.FieldBool, nil
	case "date":
		return docstore.FieldDate, nil
	case "datetime", "timestamp":
		return docstore.FieldDateTime, nil
	case "binary", "bytes":
		return docstore.FieldBinary, nil
	case "doc", "document", "map":
		return docstore.FieldDoc, nil
	case "list", "set":
		return docstore.FieldList, nil
	}
	return docstore.FieldUndefined, fmt.Errorf("unknown field type %q", name)
}
