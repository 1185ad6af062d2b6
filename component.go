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

package kitpack

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

func (l *Kitpack) CreateComponent(ctx context.Context, cmp model.Component) (model.Component, error) {
	ctx, span := tracer.Start(ctx, "CreateComponent")
	defer span.End()

	if cmp.Name == "" {
		return model.Component{}, apierror.NewAPIError(apierror.ErrInvalidInput, "A component needs a name", nil)
	}
	if cmp.CurrentStock < 0 {
		return model.Component{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Initial stock cannot be negative", nil)
	}
	return l.datasource.CreateComponent(ctx, cmp)
}

func (l *Kitpack) GetComponent(ctx context.Context, componentID string) (*model.Component, error) {
	ctx, span := tracer.Start(ctx, "GetComponent")
	defer span.End()
	return l.datasource.GetComponent(ctx, componentID)
}

func (l *Kitpack) GetAllComponents(ctx context.Context) ([]model.Component, error) {
	ctx, span := tracer.Start(ctx, "GetAllComponents")
	defer span.End()
	return l.datasource.GetAllComponents(ctx)
}

// GetLowStockComponents lists components at or below their alert threshold.
func (l *Kitpack) GetLowStockComponents(ctx context.Context) ([]model.Component, error) {
	ctx, span := tracer.Start(ctx, "GetLowStockComponents")
	defer span.End()
	return l.datasource.GetLowStockComponents(ctx)
}

// AdjustStock applies a manual correction outside the packing flow, for
// deliveries, recounts and damage. The change and its reason land in the
// stock adjustments audit trail, not in the usage ledger.
func (l *Kitpack) AdjustStock(ctx context.Context, componentID string, change int64, reason string) (*model.Component, error) {
	ctx, span := tracer.Start(ctx, "AdjustStock")
	defer span.End()

	if change == 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "A stock adjustment cannot be zero", nil)
	}
	if reason == "" {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "A stock adjustment needs a reason", nil)
	}

	if err := l.datasource.AdjustComponentStock(ctx, componentID, change, reason); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"component_id": componentID,
		"change":       change,
		"reason":       reason,
	}).Info("stock adjusted")

	return l.datasource.GetComponent(ctx, componentID)
}
