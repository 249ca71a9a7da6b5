package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-progress-tracker/models"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	responseErr := &ResponseError{
		StatusCode: resp.StatusCode(),
		Message:    messageFromBody(resp.Body()),
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		responseErr.Err = ErrBadRequest
	case http.StatusUnauthorized:
		responseErr.Err = ErrUnauthorized
	case http.StatusForbidden:
		responseErr.Err = ErrForbidden
	case http.StatusNotFound:
		responseErr.Err = ErrNotFound
	case http.StatusConflict:
		responseErr.Err = ErrConflict
	case http.StatusInternalServerError:
		responseErr.Err = ErrInternalServerError
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		responseErr.Err = ErrServerUnavailable
	default:
		responseErr.Err = fmt.Errorf("%w: http %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	return responseErr
}

// messageFromBody extracts {"message": "..."} from a JSON body and falls back
// to the trimmed raw body for plain-text replies.
func messageFromBody(body []byte) string {
	var msg models.MessageResponse
	if err := json.Unmarshal(body, &msg); err == nil {
		return msg.Message
	}
	return strings.TrimSpace(string(body))
}

// mapTransportError marks a failure to reach the server at all.
func mapTransportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrServerUnavailable, err)
}
