package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Load reads the config file resolved by ResolveConfigPath. A missing file
// is not an error: backups can run on flags alone. checkPerms rejects
// world- or group-readable files, which matter once S3 credentials are in
// them.
func Load(checkPerms bool) (*viper.Viper, error) {
	path := ResolveConfigPath()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("ROTAR")
	v.AutomaticEnv()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return v, nil
	}

	if checkPerms {
		if err := checkConfigPermissions(path); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return v, nil
}

func checkConfigPermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		return fmt.Errorf("config file %s has overly permissive mode %s (recommended: 0600)", path, mode)
	}
	return nil
}
