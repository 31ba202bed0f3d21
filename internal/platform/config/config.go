// Package config loads process configuration from the environment, an optional
// .env file and, for the client, command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultPort is used when PORT is unset.
const DefaultPort = 3000

// Server configures the API service.
type Server struct {
	Host            string        `mapstructure:"host"                 validate:"required"`
	Port            int           `mapstructure:"port"                 validate:"min=1,max=65535"`
	LogLevel        string        `mapstructure:"log_level"            validate:"oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"     validate:"gt=0"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ProjectID       string        `mapstructure:"google_cloud_project"`
}

// Addr is the listen address, e.g. "0.0.0.0:3000".
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Client configures the terminal UI client.
type Client struct {
	APIBaseURL string `mapstructure:"api_base_url" validate:"required,http_url"`
	LogLevel   string `mapstructure:"log_level"    validate:"oneof=debug info warn error"`
}

// LoadServer reads server settings. Keys map to upper-case environment
// variables (PORT, HOST, LOG_LEVEL, SHUTDOWN_TIMEOUT, METRICS_ENABLED,
// CORS_ORIGINS, GOOGLE_CLOUD_PROJECT). Missing env files are ignored.
func LoadServer(envFiles ...string) (*Server, error) {
	v, err := newViper(envFiles)
	if err != nil {
		return nil, err
	}
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("google_cloud_project", "")

	cfg := &Server{}
	if err := decode(v, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient reads client settings from API_BASE_URL and LOG_LEVEL. A changed
// --api flag in flags takes precedence over the environment.
func LoadClient(flags *pflag.FlagSet, envFiles ...string) (*Client, error) {
	v, err := newViper(envFiles)
	if err != nil {
		return nil, err
	}
	v.SetDefault("api_base_url", fmt.Sprintf("http://localhost:%d", DefaultPort))
	v.SetDefault("log_level", "warn")
	if flags != nil {
		if f := flags.Lookup("api"); f != nil {
			if err := v.BindPFlag("api_base_url", f); err != nil {
				return nil, fmt.Errorf("bind api flag: %w", err)
			}
		}
	}

	cfg := &Client{}
	if err := decode(v, cfg); err != nil {
		return nil, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

func newViper(envFiles []string) (*viper.Viper, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	v := viper.New()
	v.AutomaticEnv()
	return v, nil
}

func decode(v *viper.Viper, out any) error {
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(out, hook); err != nil {
		return fmt.Errorf("decode configuration: %w", err)
	}
	return validate(out)
}

var validate = func() func(any) error {
	instance := validator.New(validator.WithRequiredStructEnabled())
	// Report the environment variable name rather than the Go field name.
	instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return strings.ToUpper(name)
	})
	return func(cfg any) error {
		err := instance.Struct(cfg)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s=%v fails %q", fe.Field(), fe.Value(), fe.ActualTag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
}()
