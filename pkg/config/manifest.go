package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema/manifest.schema.json
var manifestSchemaBytes []byte

var (
	manifestSchema     *jsonschema.Schema
	manifestSchemaOnce sync.Once
	manifestSchemaErr  error
	schemaPrinter      = message.NewPrinter(language.English)
)

// getManifestSchema compiles the embedded JSON schema once and returns it.
func getManifestSchema() (*jsonschema.Schema, error) {
	manifestSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(manifestSchemaBytes))
		if err != nil {
			manifestSchemaErr = fmt.Errorf("unmarshaling manifest schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("manifest.schema.json", doc); err != nil {
			manifestSchemaErr = fmt.Errorf("adding manifest schema resource: %w", err)
			return
		}
		manifestSchema, manifestSchemaErr = c.Compile("manifest.schema.json")
		if manifestSchemaErr != nil {
			manifestSchemaErr = fmt.Errorf("compiling manifest schema: %w", manifestSchemaErr)
		}
	})
	return manifestSchema, manifestSchemaErr
}

// ValidateManifest checks raw codemate.yaml bytes against the manifest
// schema. Schema violations come back as ValidationErrors; other errors mean
// the document could not be checked at all.
func ValidateManifest(data []byte) error {
	schema, err := getManifestSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	// An empty manifest is a valid manifest with no overrides.
	if raw == nil {
		return nil
	}

	// The validator wants JSON-shaped input, so round-trip the decoded YAML
	// through encoding/json.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("converting manifest to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("preparing manifest for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("unexpected validation error: %w", err)
	}

	return schemaIssues(validationErr)
}

// schemaIssues flattens a jsonschema error tree into ValidationErrors,
// keeping only leaf errors that point at a concrete keyword.
func schemaIssues(ve *jsonschema.ValidationError) ValidationErrors {
	var errs ValidationErrors
	collectSchemaIssues(ve, &errs)
	if len(errs) == 0 {
		errs = append(errs, ValidationError{Field: "manifest", Message: ve.Error()})
	}
	return errs
}

func collectSchemaIssues(ve *jsonschema.ValidationError, errs *ValidationErrors) {
	if len(ve.Causes) == 0 {
		keyword := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}
		// Container keywords repeat what their causes already say.
		if keyword == "" || keyword == "allOf" || keyword == "oneOf" || keyword == "$ref" {
			return
		}

		field := strings.Join(ve.InstanceLocation, ".")
		if field == "" {
			field = "manifest"
		}
		*errs = append(*errs, ValidationError{
			Field:   field,
			Message: ve.ErrorKind.LocalizedString(schemaPrinter),
		})
		return
	}

	for _, cause := range ve.Causes {
		collectSchemaIssues(cause, errs)
	}
}

// checkRequires enforces a manifest's requires constraint against the running
// version. Development builds ("dev" or an unparseable version) validate the
// constraint but skip enforcement.
func (l *Loader) checkRequires(m *Manifest, path string) error {
	if m.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q in %s: %w", m.Requires, path, err)
	}

	current, err := semver.NewVersion(strings.TrimPrefix(l.version, "v"))
	if err != nil {
		return nil
	}

	if !constraint.Check(current) {
		return fmt.Errorf("%s %s does not satisfy %q required by %s", l.cliName, l.version, m.Requires, path)
	}
	return nil
}
