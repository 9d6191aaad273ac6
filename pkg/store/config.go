package store

import (
	"log"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the persistence directory.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the data path from an .agenda config file or the
// AGENDA_ environment, defaulting to ~/.agenda.db.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.agenda.db")
	viper.SetConfigName(".agenda") // .yaml is implicit
	viper.SetEnvPrefix("AGENDA")
	viper.AutomaticEnv()

	if override := os.Getenv("AGENDA_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	return &fileConfig{Path: filepath.Clean(path)}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
