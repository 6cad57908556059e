package logs

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	radixhttp "github.com/equinor/radix-common/net/http"
	radixutils "github.com/equinor/radix-common/utils"
)

// Params Parameters for a log output
type Params struct {
	// Container name of the container, empty for all containers of the pod
	Container string
	// Since only logs newer than this time, nil for all
	Since *time.Time
	// Lines number of lines from the end of the log, nil for all
	Lines *int64
	// AsFile return the log as an attachment
	AsFile bool
	// Follow stream the log while the container is running
	Follow bool
}

// GetLogParams Gets parameters for a log output
func GetLogParams(r *http.Request) (Params, error) {
	params := Params{Container: strings.TrimSpace(r.FormValue("container"))}
	var errs []error

	if sinceTime := strings.TrimSpace(r.FormValue("sinceTime")); sinceTime != "" {
		since, err := radixutils.ParseTimestamp(sinceTime)
		if err != nil {
			errs = append(errs, fmt.Errorf("sinceTime: %w", err))
		} else {
			params.Since = &since
		}
	}
	if lines := strings.TrimSpace(r.FormValue("lines")); lines != "" {
		val, err := strconv.ParseInt(lines, 10, 64)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("lines: %w", err))
		case val <= 0:
			errs = append(errs, errors.New("lines: must be a positive number"))
		default:
			params.Lines = &val
		}
	}
	var err error
	if params.AsFile, err = parseBool(r, "file"); err != nil {
		errs = append(errs, err)
	}
	if params.Follow, err = parseBool(r, "follow"); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return Params{}, radixhttp.ValidationError("log parameters", err.Error())
	}
	return params, nil
}

func parseBool(r *http.Request, name string) (bool, error) {
	value := strings.TrimSpace(r.FormValue(name))
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return parsed, nil
}
