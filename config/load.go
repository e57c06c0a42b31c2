package config

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "runnable-host.schema.json"

var validate = validator.New()

var compiled = sync.OnceValues(func() (*sjsonschema.Schema, error) {
	raw, err := Schema()
	if err != nil {
		return nil, err
	}

	compiler := sjsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, errors.Wrap(err, "failed to AddResource")
	}

	sch, err := compiler.Compile(schemaURL)
	return sch, errors.Wrap(err, "failed to Compile schema")
})

// Schema returns the JSON Schema of a config document.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		Anonymous:                  true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(&Config{})
	schema.Title = "runnable-host configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal schema")
	}
	return data, nil
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is chosen by the operator
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}
	return Parse(data)
}

// Parse decodes a YAML config document over Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := checkSchema(data); err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate runs the struct validation rules on cfg.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// checkSchema validates the raw document, which catches unknown keys and
// wrongly typed values before they are silently dropped by decoding.
func checkSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "failed to decode config")
	}

	// the schema validator wants JSON types
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to convert config to JSON")
	}
	var obj any
	if err := json.Unmarshal(jsonBytes, &obj); err != nil {
		return errors.Wrap(err, "failed to convert config to JSON")
	}

	sch, err := compiled()
	if err != nil {
		return err
	}
	if err := sch.Validate(obj); err != nil {
		return errors.Wrap(err, "config does not match schema")
	}
	return nil
}
