package helpers

import (
	"github.com/Jeffail/gabs"
	"github.com/pkg/errors"
)

// config Saves the bot-config
var config *gabs.Container

// LoadConfig loads the config from $path into $config
func LoadConfig(path string) error {
	json, err := gabs.ParseJSONFile(path)
	if err != nil {
		return errors.Wrap(err, "unable to parse config file "+path)
	}

	config = json
	return nil
}

// SetConfig replaces the current config, used when the config does not come from a file
func SetConfig(c *gabs.Container) {
	config = c
}

// GetConfig is a config getter
func GetConfig() *gabs.Container {
	return config
}

// ConfigString returns the string at $path or $fallback if it is missing or not a string
func ConfigString(path, fallback string) string {
	if config == nil {
		return fallback
	}
	value, ok := config.Path(path).Data().(string)
	if !ok || value == "" {
		return fallback
	}
	return value
}

// ConfigBool returns the bool at $path or false
func ConfigBool(path string) bool {
	if config == nil {
		return false
	}
	value, _ := config.Path(path).Data().(bool)
	return value
}

// ConfigStringMap returns the object at $path as a string map, non string values are skipped
func ConfigStringMap(path string) map[string]string {
	result := make(map[string]string)
	if config == nil || !config.ExistsP(path) {
		return result
	}

	children, err := config.Path(path).ChildrenMap()
	if err != nil {
		return result
	}
	for key, child := range children {
		if value, ok := child.Data().(string); ok && value != "" {
			result[key] = value
		}
	}
	return result
}
