package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kbukum/dataprovider/dataprovider"
	apperrors "github.com/kbukum/dataprovider/errors"
)

// toAppError classifies a command failure for display. Data-access errors
// keep their message; the AppError adds a code, a retry hint and the failing
// operation as details.
func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	var dpErr *dataprovider.Error
	if !errors.As(err, &dpErr) {
		return apperrors.InvalidInput("", err.Error()).WithCause(err)
	}

	var appErr *apperrors.AppError
	switch dpErr.Kind {
	case dataprovider.KindStatus:
		appErr = apperrors.FromHTTPStatus(dpErr.StatusCode, err.Error())
	case dataprovider.KindTransport, dataprovider.KindDecode:
		appErr = apperrors.ExternalServiceError("backend", err)
	default:
		appErr = apperrors.Internal(err)
	}
	appErr.WithDetail("kind", dpErr.Kind.String())
	if dpErr.Op != "" {
		appErr.WithDetail("op", dpErr.Op)
	}
	if dpErr.Resource != "" {
		appErr.WithDetail("resource", dpErr.Resource)
	}
	return appErr
}

// reportError writes err to w, as an error body when asJSON is set.
func reportError(w io.Writer, err error, asJSON bool) {
	appErr := toAppError(err)
	if asJSON {
		data, mErr := json.MarshalIndent(appErr.ToResponse(), "", "  ")
		if mErr == nil {
			fmt.Fprintln(w, string(data))
			return
		}
	}
	fmt.Fprintf(w, "Error: %s: %s\n", appErr.Code, err)
}
