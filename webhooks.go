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
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/kitpack/kitpack/config"
	"github.com/kitpack/kitpack/internal/request"
)

// NewWebhook is an event notification dispatched to the configured webhook
// endpoint. Events: unit.packed, unit.undone, order.completed.
type NewWebhook struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"data"`
}

func processHTTP(data NewWebhook) error {
	conf, err := config.Fetch()
	if err != nil {
		logrus.Error("Error fetching config:", err)
		return err
	}

	jsonData, err := request.ToJsonReq(&data)
	if err != nil {
		logrus.Error("Error converting data to JSON:", err)
		return err
	}

	var response map[string]interface{}
	req, err := http.NewRequest("POST", conf.Notification.Webhook.Url, jsonData)
	if err != nil {
		logrus.Error("Error creating request:", err)
		return err
	}

	for key, value := range conf.Notification.Webhook.Headers {
		req.Header.Set(key, value)
	}

	resp, err := request.Call(req, &response)
	if err != nil {
		logrus.Error("Error making request:", err)
		return err
	}

	if resp.StatusCode >= 400 {
		logrus.Error("Webhook request failed with status code: ", resp.StatusCode)
		return fmt.Errorf("webhook failed with status code %d", resp.StatusCode)
	}

	logrus.Infof("Webhook %s sent successfully", data.Event)
	return nil
}

// SendWebhook delivers the event with exponential backoff. Delivery is best
// effort; a webhook that never lands does not affect engine state. No-op
// when no webhook URL is configured.
func SendWebhook(newWebhook NewWebhook) error {
	conf, err := config.Fetch()
	if err != nil {
		return err
	}
	if conf.Notification.Webhook.Url == "" {
		return nil
	}

	operation := func() error {
		return processHTTP(newWebhook)
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(operation, expBackoff)
}
