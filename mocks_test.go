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
	"log"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kitpack/kitpack/config"
	"github.com/kitpack/kitpack/database"
)

// newTestDataSource is the shared fixture for the root package tests: a
// sqlmock-backed datasource plus a mocked configuration.
func newTestDataSource() (database.IDataSource, sqlmock.Sqlmock, error) {
	config.MockConfig(&config.Configuration{})
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Printf("an error '%s' was not expected when opening a stub database Connection", err)
	}
	return database.Datasource{Conn: db}, mock, nil
}
