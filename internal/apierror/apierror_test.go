/*
Copyright 2025 Kitpack Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apierror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	details := "component updated meanwhile"
	apiErr := apierror.NewAPIError(apierror.ErrConflict, "Stock moved underneath us", details)

	assert.Equal(t, apierror.ErrConflict, apiErr.Code)
	assert.Equal(t, "Stock moved underneath us", apiErr.Message)
	assert.Equal(t, details, apiErr.Details)
	assert.Equal(t, "CONFLICT: Stock moved underneath us", apiErr.Error())
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "NotFound Error",
			err:      apierror.NewAPIError(apierror.ErrNotFound, "Order not found", nil),
			expected: http.StatusNotFound,
		},
		{
			name:     "InsufficientStock Error",
			err:      apierror.NewAPIError(apierror.ErrInsufficientStock, "Not enough stock", nil),
			expected: http.StatusConflict,
		},
		{
			name:     "PreconditionFailed Error",
			err:      apierror.NewAPIError(apierror.ErrPreconditionFailed, "Line item already complete", nil),
			expected: http.StatusPreconditionFailed,
		},
		{
			name:     "InvalidInput Error",
			err:      apierror.NewAPIError(apierror.ErrInvalidInput, "Order number is required", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "ChecklistIncomplete Error",
			err:      apierror.NewAPIError(apierror.ErrChecklistIncomplete, "Required component 'cmp_box' is not checked", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "InternalServerError",
			err:      apierror.NewAPIError(apierror.ErrInternalServer, "Internal server error", nil),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Unknown Error",
			err:      errors.New("unknown error"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusCode := apierror.MapErrorToHTTPStatus(tt.err)
			assert.Equal(t, tt.expected, statusCode)
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, apierror.Retryable(apierror.NewAPIError(apierror.ErrInternalServer, "db down", nil)))
	assert.False(t, apierror.Retryable(apierror.NewAPIError(apierror.ErrInsufficientStock, "no stock", nil)))
	assert.False(t, apierror.Retryable(errors.New("plain error")))
}
