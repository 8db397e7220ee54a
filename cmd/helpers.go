package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/output"
	"github.com/marcus/rcm/internal/remotes"
)

// report prints err in the active output mode and returns it so RunE
// propagates a non-zero exit.
func report(err error) error {
	if jsonOut {
		output.JSONError(errorCode(err), err.Error())
	} else {
		output.Error("%v", err)
	}
	return err
}

// errorCode maps the lifecycle error taxonomy to stable JSON codes.
func errorCode(err error) string {
	var (
		validation *manager.ValidationError
		unknown    *manager.UnknownTypeError
		conflict   *manager.ConflictError
		notFound   *manager.NotFoundError
		probe      *manager.ProbeFailedError
		configIO   *manager.ConfigIOError
	)
	switch {
	case errors.As(err, &validation):
		return output.ErrCodeInvalidInput
	case errors.As(err, &unknown):
		return output.ErrCodeUnknownType
	case errors.As(err, &conflict):
		return output.ErrCodeConflict
	case errors.As(err, &notFound), errors.Is(err, remotes.ErrNotFound), errors.Is(err, remotes.ErrStoreAbsent):
		return output.ErrCodeNotFound
	case errors.As(err, &probe):
		return output.ErrCodeProbeFailed
	case errors.As(err, &configIO):
		return output.ErrCodeConfigIO
	default:
		return output.ErrCodeExternalTool
	}
}

// parseSetFlags turns repeated --set key=value flags into a field map.
func parseSetFlags(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", pair)
		}
		values[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return values, nil
}

// confirm asks a yes/no question on the terminal, defaulting to no.
// In JSON mode nothing is interactive, so the answer is always no.
func confirm(question string) bool {
	if jsonOut {
		return false
	}
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
