package paths

import (
	"os"
	"path/filepath"
)

const (
	appDirName = "todocard"
	configFile = "config.json"
	tokenFile  = "token.json"
	credsFile  = "credentials.json"
	tasksFile  = "tasks.json"
	dbFile     = "tasks.db"
	logFile    = "todocard.log"
)

func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, appDirName), nil
}

// DataDir holds the local task stores.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir holds the log file.
func StateDir() (string, error) {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appDirName), nil
}

func ConfigPath() (string, error) {
	return join(ConfigDir, configFile)
}

func TokenPath() (string, error) {
	return join(ConfigDir, tokenFile)
}

func CredentialsPath() (string, error) {
	return join(ConfigDir, credsFile)
}

func TasksPath() (string, error) {
	return join(DataDir, tasksFile)
}

func DatabasePath() (string, error) {
	return join(DataDir, dbFile)
}

func LogPath() (string, error) {
	return join(StateDir, logFile)
}

// ExportDir is where downloaded notes go when none is configured:
// ~/Downloads when it exists, otherwise the working directory.
func ExportDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		downloads := filepath.Join(home, "Downloads")
		if info, err := os.Stat(downloads); err == nil && info.IsDir() {
			return downloads
		}
	}
	return "."
}

func join(dir func() (string, error), name string) (string, error) {
	base, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, name), nil
}
