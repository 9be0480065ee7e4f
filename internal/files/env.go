package files

import (
	"os"
	"path/filepath"
	"strings"
)

// VaultEnv names the variable that points jots at a vault.
const VaultEnv = "JOTS_VAULT"

// ResolveBasePath determines the vault root. JOTS_VAULT wins when set,
// otherwise the current working directory is the vault.
func ResolveBasePath() (string, error) {
	if override, ok := os.LookupEnv(VaultEnv); ok {
		override = strings.TrimSpace(override)
		if override != "" {
			path, err := normalizePath(override)
			if err != nil {
				return "", err
			}
			return path, nil
		}
	}

	return os.Getwd()
}

func normalizePath(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}
