package publish

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"

	"github.com/geoffholden/sensorlog/data"
)

type fakeToken struct {
	MQTT.Token
	err error
}

func (t fakeToken) Wait() bool   { return true }
func (t fakeToken) Error() error { return t.err }

type fakeClient struct {
	MQTT.Client
	topic   string
	payload []byte
	err     error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) MQTT.Token {
	c.topic = topic
	c.payload = payload.([]byte)
	return fakeToken{err: c.err}
}

func TestStorePublishesJSON(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "")

	batch := data.Batch{
		TimeStamp: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		Readings:  []data.Reading{{Device: "coretemp-isa-0000", Label: "Core 0", Value: 45, Units: "°C"}},
	}
	if err := p.Store(batch); err != nil {
		t.Fatal(err)
	}
	if client.topic != DefaultTopic {
		t.Errorf("topic: got %s, want %s", client.topic, DefaultTopic)
	}

	var decoded data.Batch
	if err := json.Unmarshal(client.payload, &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.TimeStamp.Equal(batch.TimeStamp) || len(decoded.Readings) != 1 || decoded.Readings[0] != batch.Readings[0] {
		t.Errorf("payload decoded to %+v", decoded)
	}
}

func TestStorePublishError(t *testing.T) {
	p := NewPublisher(&fakeClient{err: errors.New("not connected")}, "/custom")
	if err := p.Store(data.Batch{}); err == nil {
		t.Error("publish failure should give an error")
	}
}
