package autonconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/auton/configs"
	"github.com/reusee/auton/logs"
)

//go:embed schema.cue
var schema string

var filenames = []string{
	"auton.cue",
	".auton.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	var dirs []string

	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}

	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}

	// system wide dir
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, schema)
}

// Schema returns the closed schema every config document is validated against.
func Schema() string {
	return schema
}
