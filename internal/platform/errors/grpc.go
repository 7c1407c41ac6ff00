package errors

import (
	"errors"

	"github.com/louisbranch/dicebag/internal/platform/errors/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = i18n.BaseLocale

// Localize returns the user-facing message for err in locale.
func Localize(err error, locale string) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return i18n.Format(locale, string(CodeUnknown), nil)
	}
	return i18n.Format(locale, string(appErr.Code), appErr.Metadata)
}

// HandleError converts domain errors to gRPC status for client responses.
// It formats the user-facing message for the given locale, defaulting to
// en-US if the locale is empty or unsupported.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != CodeUnknown {
		resolved := i18n.Resolve(locale)
		return appErr.ToGRPCStatus(resolved, Localize(appErr, resolved))
	}

	// Unknown error - return internal with generic message
	return status.Error(codes.Internal, "an unexpected error occurred")
}
