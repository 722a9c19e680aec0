package validators

import (
	"fmt"
	"strconv"
	"strings"

	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
)

func ValidateTaskID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: task id must be a positive integer, got %q", apperrors.ErrInvalidInput, raw)
	}
	return id, nil
}

func ValidateStatus(raw string) (constants.TaskStatus, error) {
	status := constants.TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: status must be one of %s, got %q", apperrors.ErrInvalidInput, statusList(), raw)
	}
	return status, nil
}

func ValidateDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if description == "" {
		return "", fmt.Errorf("%w: description is required", apperrors.ErrInvalidInput)
	}
	return description, nil
}

func statusList() string {
	names := make([]string, 0, len(constants.TaskStatuses))
	for _, s := range constants.TaskStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
