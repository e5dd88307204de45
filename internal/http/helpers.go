package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/editor"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/internal/validation"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if baseClean == "/" {
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

var badRequestErrors = []error{
	pages.ErrPageRequired,
	pages.ErrTitleRequired,
	pages.ErrHandleRequired,
	pages.ErrHandleInvalid,
	pages.ErrParentNotFound,
	pages.ErrParentSelf,
	pages.ErrDeleteConfirmationRequired,
	blocks.ErrUnknownType,
	editor.ErrInvalidPath,
	editor.ErrIndexOutOfRange,
	editor.ErrNotLayout,
	editor.ErrConfirmationRequired,
	editor.ErrUnknownStyle,
	editor.ErrInvalidBreakpoint,
	editor.ErrInvalidColumnCount,
	editor.ErrInvalidOp,
	editor.ErrSessionPageRequired,
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if pages.IsNotFound(err) || errors.Is(err, editor.ErrSessionNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, pages.ErrAuthRequired) || errors.Is(err, interfaces.ErrUnauthenticated) {
		return http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		}
	}

	if errors.Is(err, pages.ErrHandleExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, blocks.ErrInvalidContent) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, errorResponse{
				Error:   "bad_request",
				Message: err.Error(),
				Issues:  fieldIssues(err),
			}
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
			Issues:  fieldIssues(err),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

// fieldIssues flattens ozzo field errors into issues keyed by field name.
func fieldIssues(err error) []validation.ValidationIssue {
	var fields ozzo.Errors
	if !errors.As(err, &fields) {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	issues := make([]validation.ValidationIssue, 0, len(keys))
	for _, key := range keys {
		issues = append(issues, validation.ValidationIssue{
			Location: "/" + key,
			Message:  fields[key].Error(),
		})
	}
	return issues
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

func parseBoolQuery(value string, defaultValue bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseIntQuery(value string, defaultValue int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}
