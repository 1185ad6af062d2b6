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
	"embed"
	"sync"
	"time"

	"github.com/kitpack/kitpack/config"
	"github.com/kitpack/kitpack/database"
	"github.com/kitpack/kitpack/model"
)

//go:embed sql/*.sql
var SQLFiles embed.FS

// Kitpack is the packing fulfillment engine. It owns the datasource and the
// single in-memory compensation slot; everything durable lives behind the
// datasource.
type Kitpack struct {
	datasource database.IDataSource
	undoWindow time.Duration

	// mu guards pending. The engine holds at most one reversible pack at a
	// time; a newer commit overwrites an older, still-unexpired one.
	mu      sync.Mutex
	pending *model.PendingCompensation
}

func NewKitpack(db database.IDataSource) (*Kitpack, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	return &Kitpack{
		datasource: db,
		undoWindow: configuration.Packing.UndoWindow(),
	}, nil
}
