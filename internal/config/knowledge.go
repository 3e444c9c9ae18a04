package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/normgate/internal/apperr"
)

//go:embed defaults/*
var defaultsFS embed.FS

func (c *Config) loadKnowledge(baseDir string) error {
	var err error
	if c.Knowledge.HighestEndeavour, err = readDoc(baseDir, c.Endeavours.HighestPath, "highest_endeavour.json", "endeavours.highest_path"); err != nil {
		return err
	}
	if c.Knowledge.SystemEndeavours, err = readDoc(baseDir, c.Endeavours.SystemPath, "system_endeavours.json", "endeavours.system_path"); err != nil {
		return err
	}
	calc, err := readDoc(baseDir, c.Endeavours.CalculusPath, "normative_calculus.md", "endeavours.calculus_path")
	if err != nil {
		return err
	}
	scoring, err := readDoc(baseDir, c.Endeavours.ScoringPath, "scoring_metric.md", "endeavours.scoring_path")
	if err != nil {
		return err
	}
	c.Knowledge.NormativeCalculus = string(calc)
	c.Knowledge.ScoringMetric = string(scoring)

	for key, doc := range map[string][]byte{
		"endeavours.highest_path": c.Knowledge.HighestEndeavour,
		"endeavours.system_path":  c.Knowledge.SystemEndeavours,
	} {
		if !json.Valid(doc) {
			return apperr.Configuration("config.Load", key, fmt.Errorf("endeavour document is not valid JSON"))
		}
	}
	return nil
}

// readDoc returns the file at path (relative paths resolve against the
// config file's directory) or the embedded default.
func readDoc(baseDir, path, fallback, key string) ([]byte, error) {
	if path == "" {
		return DefaultDocument(fallback)
	}
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Configuration("config.Load", key, err)
	}
	return data, nil
}

// DefaultDocument returns one of the embedded default documents by file name.
func DefaultDocument(name string) ([]byte, error) {
	data, err := defaultsFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, apperr.Configuration("config.DefaultDocument", name, err)
	}
	return data, nil
}
