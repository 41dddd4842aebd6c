package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/logger"
)

// FileSystem is the file access the loader needs; tests swap it out.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem reads the working directory.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file without overriding variables already set.
func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds the loader's file system and explicit file paths.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. A missing file is an
// error, unlike the searched defaults.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// configFile returns the explicit config file, or the first of
// ./<service>.yml, ./<service>.yaml and ./config.yml that exists.
func (lc *LoaderConfig) configFile(service string) (string, error) {
	if lc.ConfigFile != "" {
		if !lc.FileSystem.Exists(lc.ConfigFile) {
			return "", apperrors.InvalidConfig(fmt.Sprintf("config file %s not found", lc.ConfigFile))
		}
		return lc.ConfigFile, nil
	}
	return lc.first("./"+service+".yml", "./"+service+".yaml", "./config.yml"), nil
}

// envFile returns the explicit .env file, or .env.<service> or .env.
func (lc *LoaderConfig) envFile(service string) (string, error) {
	if lc.EnvFile != "" {
		if !lc.FileSystem.Exists(lc.EnvFile) {
			return "", apperrors.InvalidConfig(fmt.Sprintf("env file %s not found", lc.EnvFile))
		}
		return lc.EnvFile, nil
	}
	return lc.first(".env."+service, ".env"), nil
}

func (lc *LoaderConfig) first(paths ...string) string {
	for _, p := range paths {
		if lc.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// LoadConfig fills cfg from a YAML file, then from environment variables.
// Fields cfg already holds survive unless a source sets them. Every scalar
// field is bound to its key path in upper case with dots as underscores,
// so LOGGING_LEVEL sets logging.level and TRACING_SAMPLE_RATE sets
// tracing.sample_rate. Lists such as sources can only come from the file.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()

	path, err := lc.configFile(serviceName)
	if err != nil {
		return err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return apperrors.InvalidConfig(fmt.Sprintf("failed to read %s", path)).WithCause(err)
		}
	}

	envPath, err := lc.envFile(serviceName)
	if err != nil {
		return err
	}
	if envPath != "" {
		if err := lc.FileSystem.LoadEnv(envPath); err != nil {
			logger.Warn("failed to load .env file", logger.Fields("file", envPath, logger.FieldError, err.Error()))
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnv(v, reflect.TypeOf(cfg), "")

	if err := v.Unmarshal(cfg); err != nil {
		return apperrors.InvalidConfig(fmt.Sprintf("failed to unmarshal config for service %s", serviceName)).WithCause(err)
	}
	return nil
}

// bindEnv binds the scalar fields of t, recursing into nested structs.
// Slices, maps and pointers are skipped: their keys are not fixed.
func bindEnv(v *viper.Viper, t reflect.Type, prefix string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		switch f.Type.Kind() {
		case reflect.Struct:
			bindEnv(v, f.Type, key)
		case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		default:
			_ = v.BindEnv(key)
		}
	}
}
