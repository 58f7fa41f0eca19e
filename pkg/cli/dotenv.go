package cli

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads path into the process environment via godotenv.Load,
// falling back to the hand-rolled LoadDotEnv parser if godotenv rejects the
// file (e.g. a loosely-formatted file godotenv's stricter grammar rejects).
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return LoadDotEnv(path)
	}
	return nil
}

// LoadDotEnv parses a simple .env file and sets environment variables.
// Supports comments (#), optional "export " prefix, and quoted values.
// Returns an error if the file cannot be read; callers may ignore the error
// to mimic godotenv.Load() behavior.
func LoadDotEnv(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, raw := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}
		val = strings.ReplaceAll(val, `\n`, "\n")
		os.Setenv(key, val)
	}
	return nil
}
