package ui

import (
	"errors"

	"github.com/ytget/image-predictor/internal/model"
)

// FailureMessage returns the localized notice for an intake or submission error
func FailureMessage(l *Localization, err error) string {
	if err == nil {
		return ""
	}

	switch model.CategoryOf(err) {
	case model.FailureInvalidType:
		var validationErr *model.ValidationError
		detail := ""
		if errors.As(err, &validationErr) {
			detail = validationErr.Detail
		}
		if detail == "" {
			detail = DashPlaceholder
		}
		return l.Format(KeyInvalidImageType, detail)
	case model.FailureTooLarge:
		return l.GetText(KeyImageTooLarge)
	case model.FailureNoImage:
		return l.GetText(KeyNoImageSelected)
	case model.FailureBusy:
		return l.GetText(KeyRequestInFlight)
	case model.FailureNetwork:
		var networkErr *model.NetworkError
		if errors.As(err, &networkErr) {
			return l.Format(KeyNetworkError, networkErr.Err)
		}
	case model.FailureHTTPStatus:
		var statusErr *model.HTTPStatusError
		if errors.As(err, &statusErr) {
			body := statusErr.Body
			if body == "" {
				body = DashPlaceholder
			}
			return l.Format(KeyHTTPError, statusErr.StatusCode, body)
		}
	case model.FailureServerReported:
		var serverErr *model.ServerReportedError
		if errors.As(err, &serverErr) {
			return l.Format(KeyServerError, serverErr.Message)
		}
	case model.FailureMalformed:
		var malformedErr *model.MalformedResponseError
		if errors.As(err, &malformedErr) {
			return l.Format(KeyMalformedResponse, malformedErr.Payload)
		}
	}

	return l.Format(KeyUnexpectedError, err)
}
