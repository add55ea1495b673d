package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
)

// datasetCandidates are checked, in order, for a dataset to suggest.
var datasetCandidates = []string{
	"assets/data/country-data.json",
	"data/country-data.json",
	"country-data.json",
}

// detectDataset returns the first dataset file found in the current directory.
func detectDataset() string {
	for _, candidate := range datasetCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return DefaultConfig().DataSource
}

// validateSource accepts an http(s) URL or an existing file.
func validateSource(s string) error {
	if s == "" {
		return fmt.Errorf("a path or URL is required")
	}
	if u, err := url.Parse(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return nil
	}
	if _, err := os.Stat(s); err != nil {
		return fmt.Errorf("no file at %s", s)
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to malabomap! Let's configure the map.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Dataset.
	dataPrompt := promptui.Prompt{
		Label:    "Country dataset (file path or URL)",
		Default:  detectDataset(),
		Validate: validateSource,
	}
	dataSource, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	cfg.DataSource = dataSource

	// 2. Particles background.
	particlesPrompt := promptui.Prompt{
		Label:   "Particle background config (file path or URL)",
		Default: filepath.Join(filepath.Dir(dataSource), "particlesjs-config.json"),
	}
	particlesSource, err := particlesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("particles config: %w", err)
	}
	cfg.ParticlesSource = particlesSource

	// 3. Assets directory.
	assetsPrompt := promptui.Prompt{
		Label:   "Static assets directory",
		Default: cfg.AssetsDir,
	}
	assetsDir, err := assetsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("assets dir: %w", err)
	}
	cfg.AssetsDir = assetsDir

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 5. Hot reload.
	watchPrompt := promptui.Select{
		Label: "Reload the dataset when the file changes?",
		Items: []string{"no", "yes"},
	}
	watchIdx, _, err := watchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("watch selection: %w", err)
	}
	cfg.Watch = watchIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
