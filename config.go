package moneybook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings the command layer needs before a profile can
// be opened.
type Config struct {
	// Dir is the store directory holding the profile's flat files.
	Dir string `yaml:"dir"`
	// Currency is the ISO 4217 code used for display formatting.
	Currency string `yaml:"currency"`
	// RecurringCapacity caps recurring templates per saving account.
	RecurringCapacity int `yaml:"recurring_capacity"`
	// BondCapacity caps bonds per investment account.
	BondCapacity int `yaml:"bond_capacity"`
}

// settingsFile is looked up in the working directory first, then in the
// default data directory.
const settingsFile = "moneybook.yaml"

// DefaultConfig returns the built-in settings: data under ~/.moneybook,
// SGD display, standard capacities.
func DefaultConfig() Config {
	dir := ".moneybook"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".moneybook")
	}
	return Config{
		Dir:               dir,
		Currency:          "SGD",
		RecurringCapacity: DefaultRecurringCapacity,
		BondCapacity:      DefaultBondCapacity,
	}
}

// LoadConfig resolves the effective settings. Precedence, lowest to
// highest: built-in defaults, a moneybook.yaml settings file, then the
// MONEYBOOK_DIR and MONEYBOOK_CURRENCY environment variables. A .env file
// in the working directory is folded into the environment first, when
// present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	for _, path := range []string{settingsFile, filepath.Join(cfg.Dir, settingsFile)} {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
		break
	}

	if dir := os.Getenv("MONEYBOOK_DIR"); dir != "" {
		cfg.Dir = dir
	}
	if cur := os.Getenv("MONEYBOOK_CURRENCY"); cur != "" {
		cfg.Currency = cur
	}
	if cfg.RecurringCapacity <= 0 {
		cfg.RecurringCapacity = DefaultRecurringCapacity
	}
	if cfg.BondCapacity <= 0 {
		cfg.BondCapacity = DefaultBondCapacity
	}
	return cfg, nil
}

// Apply installs the process-wide display and capacity settings. New
// accounts pick up the capacities; existing accounts keep the ones they
// were created with.
func (c Config) Apply() {
	SetDisplayCurrency(c.Currency)
	recurringCapacity = c.RecurringCapacity
	bondCapacity = c.BondCapacity
}

// Effective capacities for newly created accounts.
var (
	recurringCapacity = DefaultRecurringCapacity
	bondCapacity      = DefaultBondCapacity
)
