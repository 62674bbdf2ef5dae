package credential

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Placeholder is the dummy value shipped in .env templates. A key equal
// to it is treated the same as a missing key.
const Placeholder = "your_api_key_here"

// LoadFromFile scans an .env-style file for a line starting with
// "varName=" and returns the value after the first '=', whitespace
// trimmed. It returns "" if the file does not exist or no such line is
// found. The rest of the file is not validated.
func LoadFromFile(path, varName string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	prefix := varName + "="
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	return ""
}

// Resolve looks up an API key by trying, in order: the environment
// variable varName, the varName line in the .env file at envFile, and
// the viper config key cfgKey. The placeholder value counts as missing
// at every stage.
func Resolve(varName, envFile, cfgKey string) string {
	if key := os.Getenv(varName); Valid(key) {
		return key
	}
	if key := LoadFromFile(envFile, varName); Valid(key) {
		return key
	}
	if key := viper.GetString(cfgKey); Valid(key) {
		return key
	}
	return ""
}

// Valid reports whether key is usable: non-empty and not the template
// placeholder.
func Valid(key string) bool {
	return key != "" && key != Placeholder
}
