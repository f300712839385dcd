package yaml

import (
	"testing"
)

func TestManifestParser_Parse_Valid(t *testing.T) {
	parser := NewManifestParser()
	yamlData := []byte(`dist:
  module: github.com/newrelic/nrdot-collector-releases/nrdot-collector-host
  name: nrdot-collector-host
  description: NRDOT Collector Host
  version: 1.2.3
receivers:
  - gomod: go.opentelemetry.io/collector/receiver/otlpreceiver v0.120.0
  - gomod: github.com/open-telemetry/opentelemetry-collector-contrib/receiver/hostmetricsreceiver v0.120.0
processors:
  - gomod: go.opentelemetry.io/collector/processor/batchprocessor v0.120.0
exporters:
  - gomod: go.opentelemetry.io/collector/exporter/otlpexporter v0.120.0
`)

	manifest, err := parser.Parse(yamlData)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if manifest.Name != "nrdot-collector-host" {
		t.Errorf("Name = %v, want nrdot-collector-host", manifest.Name)
	}
	if manifest.Version != "1.2.3" {
		t.Errorf("Version = %v, want 1.2.3", manifest.Version)
	}
	if manifest.Description != "NRDOT Collector Host" {
		t.Errorf("Description = %v, want NRDOT Collector Host", manifest.Description)
	}
	if manifest.Components.Receivers != 2 {
		t.Errorf("Receivers = %d, want 2", manifest.Components.Receivers)
	}
	if manifest.Components.Total() != 4 {
		t.Errorf("Total components = %d, want 4", manifest.Components.Total())
	}
}

func TestManifestParser_Parse_Empty(t *testing.T) {
	parser := NewManifestParser()

	manifest, err := parser.Parse([]byte(``))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if manifest.Name != "" || manifest.Components.Total() != 0 {
		t.Errorf("Parse() of empty manifest = %+v, want zero value", manifest)
	}
}

func TestManifestParser_Parse_InvalidYAML(t *testing.T) {
	parser := NewManifestParser()
	yamlData := []byte(`dist:
  name: test
    invalid: [broken yaml
`)

	_, err := parser.Parse(yamlData)
	if err == nil {
		t.Error("Parse() should return error for invalid YAML")
	}
}
