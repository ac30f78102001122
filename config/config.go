package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix      = "INVENTORY_"
	defaultEnvFile = ".env"
	configFile     = "config.yaml"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	Storage struct {
		Backend string `koanf:"backend" validate:"oneof=file sqlite memory"`
		Path    string `koanf:"path" validate:"required_unless=Backend memory"`
	} `koanf:"storage"`

	Activity struct {
		Path string `koanf:"path" validate:"required"`
	} `koanf:"activity"`

	Export struct {
		CSVPath  string `koanf:"csvpath" validate:"required"`
		XLSXPath string `koanf:"xlsxpath" validate:"required"`
	} `koanf:"export"`

	Catalog struct {
		Capacity int `koanf:"capacity" validate:"gt=0"`
		LowStock int `koanf:"lowstock" validate:"gte=0"`
	} `koanf:"catalog"`

	Log struct {
		Level string `koanf:"level" validate:"oneof=debug info warn error"`
		File  string `koanf:"file"`
	} `koanf:"log"`

	Metrics struct {
		Textfile string `koanf:"textfile"`
	} `koanf:"metrics"`
}

// defaults standart qiymatlar (eng past ustunlik)
func defaults() map[string]any {
	return map[string]any{
		"storage.backend":  "file",
		"storage.path":     "inventory.txt",
		"activity.path":    "activity_log.txt",
		"export.csvpath":   "inventory_export.csv",
		"export.xlsxpath":  "inventory_export.xlsx",
		"catalog.capacity": 100,
		"catalog.lowstock": 10,
		"log.level":        "info",
		"log.file":         "diagnostics.log",
		"metrics.textfile": "",
	}
}

func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "storage.backend=%s storage.path=%s ", c.Storage.Backend, c.Storage.Path)
	fmt.Fprintf(&b, "activity.path=%s ", c.Activity.Path)
	fmt.Fprintf(&b, "export.csvpath=%s export.xlsxpath=%s ", c.Export.CSVPath, c.Export.XLSXPath)
	fmt.Fprintf(&b, "catalog.capacity=%d catalog.lowstock=%d ", c.Catalog.Capacity, c.Catalog.LowStock)
	fmt.Fprintf(&b, "log.level=%s log.file=%s metrics.textfile=%s", c.Log.Level, c.Log.File, c.Metrics.Textfile)
	return b.String()
}

// Load joriy papkadagi config.yaml va .env dan konfiguratsiyani yuklash
func Load() (*Config, error) {
	return LoadFrom(configFile, defaultEnvFile)
}

// LoadFrom qatlamlar tartibi: defaults -> yaml -> .env -> tizim env
func LoadFrom(yamlPath, envPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("standart qiymatlarni yuklashda xato: %w", err)
	}

	// 1. YAML fayl (mavjud bo'lsa)
	if yamlPath != "" {
		if _, err := os.Stat(yamlPath); err == nil {
			if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%s faylini o'qishda xato: %w", yamlPath, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s faylini tekshirishda xato: %w", yamlPath, err)
		}
	}

	// 2. .env fayl
	if envPath != "" {
		if envFileMap, err := godotenv.Read(envPath); err == nil {
			envMap := make(map[string]any)
			for key, value := range envFileMap {
				if strings.HasPrefix(strings.ToUpper(key), envPrefix) {
					envMap[keyTransformer(key)] = value
				}
			}
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				return nil, fmt.Errorf(".env ni yuklashda xato: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s faylini o'qishda xato: %w", envPath, err)
		}
	}

	// 3. Tizim environment o'zgaruvchilari, eng yuqori ustunlik
	if err := k.Load(env.Provider(envPrefix, ".", keyTransformer), nil); err != nil {
		return nil, fmt.Errorf("environment o'zgaruvchilarini yuklashda xato: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("konfiguratsiyani o'qishda xato: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate struct teglari bo'yicha tekshirish
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("%s: failed on rule %s (%v)", fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Value()))
		}
		return fmt.Errorf("konfiguratsiya noto'g'ri: %s", strings.Join(msgs, "; "))
	}
	return fmt.Errorf("konfiguratsiya noto'g'ri: %w", err)
}

// keyTransformer INVENTORY_STORAGE_PATH -> storage.path
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
	return strings.ReplaceAll(key, "_", ".")
}
