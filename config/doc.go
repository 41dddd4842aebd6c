// Package config loads and validates lazyseq configuration.
//
// LoadConfig reads a YAML file with Viper, then applies environment
// variables, including those from a .env file loaded with godotenv. Each
// scalar field is bound to its key path in upper case, so LOGGING_LEVEL
// overrides logging.level:
//
//	cfg, err := config.Load("lazyseq", config.Config{Name: "lazyseq"}, config.WithConfigFile("lazyseq.yml"))
//
// Without an explicit file the loader looks for ./<service>.yml,
// ./<service>.yaml and ./config.yml, and for .env.<service> or .env.
package config
