package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "tipline.db")
	v.SetDefault("files.dir", "files")
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}
