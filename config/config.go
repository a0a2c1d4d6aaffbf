// Package config wires viper to the registered defaults, the environment and the config file.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kitsufix/kitsufix/constant"
	"github.com/kitsufix/kitsufix/filesystem"
	"github.com/kitsufix/kitsufix/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to their environment variable form.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// DotEnv is the optional file loaded from the working directory before env vars are bound.
const DotEnv = ".env"

// Setup loads .env, binds env vars, registers defaults and reads the config file if present.
func Setup() error {
	// Variables already set in the process win over .env.
	if err := godotenv.Load(DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// FilePath is where `config write` and `config set` persist the configuration.
func FilePath() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}
