package secretsweep

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// log writes diagnostics to stderr; stdout is reserved for reports.
var log = logrus.New()

func setupLogging(level, format string) error {
	log.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: flagNoColor})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid --log-format %q: want text|json", format)
	}
	return nil
}
