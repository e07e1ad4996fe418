package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	SnapshotPath string
	NotesDBPath  string
	NotesEnabled bool
	ProgressStep int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		SnapshotPath: ".stint_snapshot.json",
		NotesDBPath:  ".stint_notes.db",
		NotesEnabled: true,
		ProgressStep: 5,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("STINT_SNAPSHOT_FILE")); v != "" {
		cfg.SnapshotPath = v
	}
	if v := strings.TrimSpace(os.Getenv("STINT_NOTES_DB")); v != "" {
		cfg.NotesDBPath = v
	}
	if v, ok := getEnvBool("STINT_NOTES"); ok {
		cfg.NotesEnabled = v
	}
	if v, ok := getEnvInt("STINT_PROGRESS_STEP"); ok && v > 0 && v <= 100 {
		cfg.ProgressStep = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
