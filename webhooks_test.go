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
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/kitpack/kitpack/config"
)

func TestSendWebhookDelivers(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	cnf := &config.Configuration{}
	cnf.Notification.Webhook.Url = "http://example.com/hooks"
	config.MockConfig(cnf)

	httpmock.RegisterResponder("POST", "http://example.com/hooks",
		httpmock.NewJsonResponderOrPanic(200, map[string]string{"status": "ok"}))

	err := SendWebhook(NewWebhook{Event: "unit.packed", Payload: map[string]string{"order_id": "ord_1"}})
	assert.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSendWebhookSkipsWhenUnconfigured(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	config.MockConfig(&config.Configuration{})

	err := SendWebhook(NewWebhook{Event: "unit.packed", Payload: map[string]string{"order_id": "ord_1"}})
	assert.NoError(t, err)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}
