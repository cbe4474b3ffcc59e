// Package mqttingest is the optional asynchronous ingestion path: it
// subscribes to a request topic carrying the same JSON body the HTTP
// endpoint accepts, runs the packing engine, and publishes the result to a
// per-request result topic (SPEC_FULL.md §4.2).
package mqttingest

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stacktics/underbed/internal/config"
	"github.com/stacktics/underbed/internal/httpapi"
	"github.com/stacktics/underbed/pack"
)

// Ingester subscribes to a request topic and publishes packing results. It
// is optional: the service keeps serving HTTP even if the broker is
// unreachable, matching the teacher's mqttMode || httpMode independence.
type Ingester struct {
	client   mqtt.Client
	cfg      config.MQTT
	defaults pack.Settings
	logger   *logrus.Logger

	mu        sync.RWMutex
	connected bool
}

// requestEnvelope mirrors httpapi.OptimizeRequest with an optional request
// ID so a publisher can correlate its own result without parsing the
// response topic suffix.
type requestEnvelope struct {
	RequestID string               `json:"request_id"`
	Bed       httpapi.ContainerDTO `json:"bed"`
	Boxes     []httpapi.BoxDTO     `json:"boxes"`
	Settings  *httpapi.SettingsDTO `json:"settings"`
}

// New builds an Ingester from a connected or to-be-connected mqtt.Client.
// Passing a mock client (e.g. the teacher's mqtt_mock.go style) makes this
// testable without a broker.
func New(client mqtt.Client, cfg config.MQTT, defaults pack.Settings, logger *logrus.Logger) *Ingester {
	if logger == nil {
		logger = logrus.New()
	}
	return &Ingester{client: client, cfg: cfg, defaults: defaults, logger: logger}
}

// Start connects the client and subscribes to the configured request topic.
// Connection and subscribe failures are logged, not returned fatally: the
// caller is expected to keep running its HTTP server regardless.
func (ing *Ingester) Start() {
	token := ing.client.Connect()
	if token.WaitTimeout(10*time.Second) && token.Error() != nil {
		ing.logger.WithError(token.Error()).Error("mqtt connect failed")
		return
	}
	ing.setConnected(true)

	subToken := ing.client.Subscribe(ing.cfg.RequestTopic, 0, ing.handleMessage)
	if subToken.WaitTimeout(5*time.Second) && subToken.Error() != nil {
		ing.logger.WithError(subToken.Error()).WithField("topic", ing.cfg.RequestTopic).Error("mqtt subscribe failed")
		return
	}
	ing.logger.WithField("topic", ing.cfg.RequestTopic).Info("mqtt ingestion subscribed")
}

// Stop disconnects the client.
func (ing *Ingester) Stop() {
	if ing.client != nil && ing.client.IsConnected() {
		ing.client.Disconnect(250)
		ing.setConnected(false)
	}
}

func (ing *Ingester) IsConnected() bool {
	ing.mu.RLock()
	defer ing.mu.RUnlock()
	return ing.connected
}

func (ing *Ingester) setConnected(connected bool) {
	ing.mu.Lock()
	defer ing.mu.Unlock()
	ing.connected = connected
}

// handleMessage decodes a request envelope, runs the engine, and publishes
// the result. Decode and publish failures are logged and otherwise
// swallowed: a malformed message on the topic must not crash the ingester.
func (ing *Ingester) handleMessage(client mqtt.Client, msg mqtt.Message) {
	var req requestEnvelope
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		ing.logger.WithError(err).Error("failed to decode mqtt packing request")
		return
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	result, err := ing.optimize(req)
	if err != nil {
		ing.logger.WithError(err).WithField("request_id", requestID).Warn("mqtt packing request rejected")
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		ing.logger.WithError(err).Error("failed to encode mqtt packing result")
		return
	}

	resultTopic := fmt.Sprintf("%s/%s", ing.cfg.ResultPrefix, requestID)
	token := ing.client.Publish(resultTopic, 0, false, payload)
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		ing.logger.WithError(token.Error()).WithField("topic", resultTopic).Error("mqtt publish failed")
	}
}

// optimize converts the wire envelope to domain types, validates it, and
// runs the engine, returning the wire-level response.
func (ing *Ingester) optimize(req requestEnvelope) (httpapi.OptimizeResponse, error) {
	wireReq := httpapi.OptimizeRequest{Bed: req.Bed, Boxes: req.Boxes, Settings: req.Settings}
	container, boxes, settings := httpapi.ToDomain(wireReq, ing.defaults)

	if err := pack.Validate(container, boxes, settings); err != nil {
		return httpapi.OptimizeResponse{}, fmt.Errorf("validating mqtt packing request: %w", err)
	}

	result := pack.Optimize(container, boxes, settings)

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return httpapi.FromResult(requestID, result), nil
}
