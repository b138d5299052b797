package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/candlepad/candlepad/internal/config"
)

// interchangeDocument mirrors the column-major dataset interchange format for
// schema generation.
type interchangeDocument struct {
	Open   []float64 `json:"Open" jsonschema:"title=Open,description=Opening price per candle"`
	High   []float64 `json:"High" jsonschema:"title=High,description=Highest price per candle"`
	Low    []float64 `json:"Low" jsonschema:"title=Low,description=Lowest price per candle"`
	Close  []float64 `json:"Close" jsonschema:"title=Close,description=Closing price per candle"`
	Volume []float64 `json:"Volume,omitempty" jsonschema:"title=Volume,description=Traded volume per candle"`
}

func datasetSchemaJSON() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&interchangeDocument{})

	schema.Title = "dataset-interchange"
	schema.Description = "Column-major OHLCV dataset interchange document"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

func main() {
	cfg := config.Default()

	configSchema, err := cfg.GenerateSchemaJSON()
	if err != nil {
		log.Fatalf("Failed to generate config schema: %v", err)
	}

	datasetSchema, err := datasetSchemaJSON()
	if err != nil {
		log.Fatalf("Failed to generate dataset schema: %v", err)
	}

	schemaName := "candlepad-config.json"
	schemaPath := filepath.Join("./config", schemaName)
	datasetSchemaPath := filepath.Join("./config", "dataset-interchange.json")
	sampleConfigPath := filepath.Join("./config", "candlepad.yaml")

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := os.WriteFile(schemaPath, []byte(configSchema), 0644); err != nil {
		log.Fatalf("Failed to write config schema to file: %v", err)
	}

	if err := os.WriteFile(datasetSchemaPath, []byte(datasetSchema), 0644); err != nil {
		log.Fatalf("Failed to write dataset schema to file: %v", err)
	}

	// write sample config to file if it doesn't exist
	if _, err := os.Stat(sampleConfigPath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Failed to marshal sample config to yaml: %v", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)

		if err := os.WriteFile(sampleConfigPath, yamlBytes, 0644); err != nil {
			log.Fatalf("Failed to write sample config to file: %v", err)
		}

		log.Printf("Sample config successfully generated at %s", sampleConfigPath)
	}

	log.Printf("Schemas successfully generated at %s and %s", schemaPath, datasetSchemaPath)
}
