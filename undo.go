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
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

// registerCompensation installs the just-committed pack as the engine's one
// reversible operation. A previous pending compensation, expired or not, is
// discarded; only the most recent commit can be undone.
func (l *Kitpack) registerCompensation(orderID string, lineIndex int, items []model.ConsumedComponent, entryIDs []string, completedOrder bool) {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = &model.PendingCompensation{
		OrderID:        orderID,
		LineIndex:      lineIndex,
		Items:          items,
		EntryIDs:       entryIDs,
		CompletedOrder: completedOrder,
		CreatedAt:      now,
		ExpiresAt:      now.Add(l.undoWindow),
	}
}

// PendingUndo returns a copy of the currently reversible pack, or nil when
// there is none or the window has lapsed. Expiry here is a read-side view;
// the slot itself is only cleared by InvokeUndo or the next commit.
func (l *Kitpack) PendingUndo() *model.PendingCompensation {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil || l.pending.Expired(time.Now()) {
		return nil
	}
	snapshot := *l.pending
	return &snapshot
}

// InvokeUndo reverses the most recent commit: stock is restored, the ledger
// entries it wrote are retracted, and an order completion it caused is
// rolled back to pending. Expiry is checked lazily, here, not by a timer.
func (l *Kitpack) InvokeUndo(ctx context.Context) (*model.OrderProgress, error) {
	ctx, span := tracer.Start(ctx, "InvokeUndo")
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pending == nil {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, "No pack is available to undo", nil)
	}
	if l.pending.Expired(time.Now()) {
		l.pending = nil
		return nil, apierror.NewAPIError(apierror.ErrPreconditionFailed, "The undo window has lapsed", nil)
	}

	pending := l.pending
	err := l.datasource.ReversePack(ctx, pending.OrderID, pending.Items, pending.EntryIDs, pending.CompletedOrder)
	if err != nil {
		// A transient failure keeps the compensation live for a retry while
		// the window lasts. Anything else means the world changed underneath
		// us and the compensation is no longer valid.
		if !apierror.Retryable(err) {
			l.pending = nil
		}
		return nil, err
	}

	l.pending = nil

	logrus.WithFields(logrus.Fields{
		"order_id":   pending.OrderID,
		"line_index": pending.LineIndex,
	}).Info("pack reversed")

	go func() {
		err := SendWebhook(NewWebhook{Event: "unit.undone", Payload: map[string]interface{}{
			"order_id":   pending.OrderID,
			"line_index": pending.LineIndex,
		}})
		if err != nil {
			logrus.Error(err)
		}
	}()

	_, progress, _, err := l.loadProgress(ctx, pending.OrderID)
	if err != nil {
		return nil, err
	}
	return progress, nil
}
