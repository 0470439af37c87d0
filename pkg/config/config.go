package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Presets PresetsConfig
	Marker  MarkerConfig
	Redis   RedisConfig
	Export  ExportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PresetsConfig fuente remota de presets de compañías. Sin timeout propio:
// en fallo se usa la copia local embebida, sin reintentos.
type PresetsConfig struct {
	CompaniesURL string
}

// MarkerConfig marcador del último preset aplicado.
type MarkerConfig struct {
	Store string // memory | redis
	Key   string // clave fija con namespace
}

// RedisConfig conexión Redis (sólo si MARKER_STORE=redis).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ExportConfig opciones de exportación. Si OutputDir no está vacío, además
// de servirse como descarga el PDF se escribe en ese directorio.
type ExportConfig struct {
	OutputDir string
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo .env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "invoice-studio"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Presets: PresetsConfig{
			CompaniesURL: getString(v, "COMPANIES_URL",
				"https://ahmedalavi.github.io/median_data/invoice_companies.json"),
		},
		Marker: MarkerConfig{
			Store: getString(v, "MARKER_STORE", "memory"),
			Key:   getString(v, "MARKER_KEY", "median:lastCompany"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Export: ExportConfig{
			OutputDir: getString(v, "EXPORT_OUTPUT_DIR", ""),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
