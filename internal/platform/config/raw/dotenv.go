package raw

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the files named by CORE_ENV_FILE (comma separated, default .env)
// into the process env. Variables already set win, missing files are skipped.
// Call it before the logger is first used since LOG_* keys may live in the file.
func LoadDotEnv() ([]string, error) {
	files := strings.TrimSpace(os.Getenv("CORE_ENV_FILE"))
	if files == "" {
		files = ".env"
	}
	var loaded []string
	for _, f := range strings.Split(files, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}
