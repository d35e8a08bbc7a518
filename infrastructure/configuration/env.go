package configuration

import (
	"os"

	"trucking-news/infrastructure/logger"

	"github.com/joho/godotenv"
)

// LoadEnvFromFile loads the first env files that exist. OS environment keeps
// precedence, godotenv never overwrites existing variables.
func LoadEnvFromFile(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.GetLogger().WithField("file", p).Warnf("Loading env file failed: %v", err)
			continue
		}
		logger.GetLogger().WithField("file", p).Info("Loaded environment file")
	}
}
