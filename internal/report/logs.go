package report

import (
	"github.com/sirupsen/logrus"

	"github.com/secretsweep/secretsweep/internal/types"
)

// LogFinding emits f at info level in the "[Kind][file:line] Suspect: ..."
// form with kind, file and line as structured fields.
func LogFinding(log logrus.FieldLogger, f types.Finding) {
	log.WithFields(logrus.Fields{
		"kind": string(f.Kind),
		"file": f.Path,
		"line": f.Line,
	}).Info(f.String())
}

// PrintLog logs every finding in order.
func PrintLog(log logrus.FieldLogger, findings []types.Finding) {
	for _, f := range findings {
		LogFinding(log, f)
	}
}
