package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Let's configure the studio site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Card source.
	variantPrompt := promptui.Select{
		Label: "Where do project cards come from",
		Items: []string{
			"storage - snapshot in shared storage, synced across tabs",
			"rest    - backend GET /api/projects",
		},
	}
	variantIdx, _, err := variantPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("variant selection: %w", err)
	}
	cfg.Variant = []Variant{VariantStorage, VariantREST}[variantIdx]

	// 2. Backend URL, only needed for the REST variant.
	if cfg.Variant == VariantREST {
		urlPrompt := promptui.Prompt{
			Label:    "Backend base URL",
			Default:  cfg.APIBaseURL,
			Validate: validateURL,
		}
		cfg.APIBaseURL, err = urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("backend url: %w", err)
		}
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port to serve on",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 4. Carousel mode.
	modePrompt := promptui.Select{
		Label: "Carousel mode",
		Items: []string{"infinite - wraps around seamlessly", "finite   - single row"},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("carousel mode: %w", err)
	}
	cfg.Carousel.Infinite = modeIdx == 0

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter an absolute URL such as http://localhost:3000")
	}
	return nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}
