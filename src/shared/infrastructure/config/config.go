package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"sales/src/sales/domain/entity"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config configuración del servicio. Orden de carga: defaults, archivo YAML
// (POS_CONFIG_FILE) y por último variables de entorno
type Config struct {
	Port              string           `yaml:"port"`
	StoreName         string           `yaml:"store_name"`
	Currency          string           `yaml:"currency"`
	PrometheusEnabled bool             `yaml:"prometheus_enabled"`
	DB                DBConfig         `yaml:"db"`
	Catalog           CatalogConfig    `yaml:"catalog"`
	Redis             RedisConfig      `yaml:"redis"`
	Kafka             KafkaConfig      `yaml:"kafka"`
	Discounts         []DiscountConfig `yaml:"discounts"`
	Shared            SharedConfig     `yaml:"shared"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// CatalogConfig Source: "pim" (HTTP vía Kong), "db" (tabla items) o "memory" (Items)
type CatalogConfig struct {
	Source   string              `yaml:"source"`
	CacheTTL time.Duration       `yaml:"cache_ttl"`
	Items    []CatalogItemConfig `yaml:"items"`
}

type CatalogItemConfig struct {
	ItemID      int    `yaml:"item_id"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
}

type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	KeyPrefix string        `yaml:"key_prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// DiscountConfig política para un prefijo de customer_id (dos dígitos)
type DiscountConfig struct {
	Prefix  int    `yaml:"prefix"`
	Kind    string `yaml:"kind"`
	Name    string `yaml:"name"`
	Percent string `yaml:"percent"`
	Flat    string `yaml:"flat"`
}

// Default devuelve una configuración por defecto
func Default() *Config {
	return &Config{
		Port:      "8080",
		StoreName: "POS",
		Currency:  entity.DefaultCurrency,
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "pos_db",
		},
		Catalog: CatalogConfig{
			Source:   "pim",
			CacheTTL: 5 * time.Minute,
		},
		Redis: RedisConfig{
			KeyPrefix: "pos",
			TTL:       12 * time.Hour,
		},
		Kafka: KafkaConfig{
			Topic: "pos.sales.running-total",
		},
		Shared: DefaultSharedConfig(),
	}
}

// Load arma la configuración completa
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("POS_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if _, err := cfg.DiscountRules(); err != nil {
		return nil, err
	}
	if _, err := cfg.CatalogItems(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.StoreName = getEnv("STORE_NAME", c.StoreName)
	c.Currency = getEnv("CURRENCY", c.Currency)
	if v := os.Getenv("PROMETHEUS_ENABLED"); v != "" {
		c.PrometheusEnabled = v == "true"
	}

	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnv("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)

	c.Catalog.Source = getEnv("CATALOG_SOURCE", c.Catalog.Source)
	if v := os.Getenv("CATALOG_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Catalog.CacheTTL = d
		}
	}

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitCSV(v)
	}
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)
}

// ConnString arma el string de conexión para lib/pq
func (c *Config) ConnString() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=disable"
}

// DiscountRules convierte las políticas configuradas; sin políticas usa las de fábrica
func (c *Config) DiscountRules() (*entity.DiscountRules, error) {
	if len(c.Discounts) == 0 {
		return entity.DefaultDiscountRules(), nil
	}

	policies := make(map[int]entity.DiscountPolicy, len(c.Discounts))
	for _, d := range c.Discounts {
		if d.Prefix < 10 || d.Prefix > 99 {
			return nil, fmt.Errorf("discount prefix must have two digits, got %d", d.Prefix)
		}
		percent := decimal.Zero
		if d.Percent != "" {
			p, err := decimal.NewFromString(d.Percent)
			if err != nil {
				return nil, fmt.Errorf("invalid percent for prefix %d: %w", d.Prefix, err)
			}
			percent = p
		}
		if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("percent for prefix %d must be between 0 and 100", d.Prefix)
		}
		flat := entity.Zero()
		if d.Flat != "" {
			f, err := entity.NewAmount(d.Flat)
			if err != nil {
				return nil, fmt.Errorf("invalid flat reduction for prefix %d: %w", d.Prefix, err)
			}
			if f.IsNegative() {
				return nil, fmt.Errorf("flat reduction for prefix %d must not be negative", d.Prefix)
			}
			flat = f
		}
		policies[d.Prefix] = entity.DiscountPolicy{
			Kind:    entity.DiscountKind(d.Kind),
			Name:    d.Name,
			Percent: percent,
			Flat:    flat,
		}
	}
	return entity.NewDiscountRules(policies), nil
}

// CatalogItems convierte el seed del catálogo en memoria
func (c *Config) CatalogItems() ([]entity.ItemInfo, error) {
	items := make([]entity.ItemInfo, 0, len(c.Catalog.Items))
	for _, it := range c.Catalog.Items {
		price, err := entity.NewAmount(it.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price for item %d: %w", it.ItemID, err)
		}
		items = append(items, entity.ItemInfo{
			ItemID:      it.ItemID,
			Description: it.Description,
			UnitPrice:   price,
		})
	}
	return items, nil
}

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
