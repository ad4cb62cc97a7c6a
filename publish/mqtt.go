// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

// Package publish forwards poll batches to an MQTT broker as JSON.
package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/geoffholden/sensorlog/data"
)

const DefaultTopic = "/sensorlog/sample"

type Publisher struct {
	client MQTT.Client
	topic  string
}

// Connect dials the broker once. There is no reconnect: a lost broker shows
// up as a failed publish.
func Connect(broker string, topic string) (*Publisher, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	clientid := fmt.Sprintf("sensorlog-%s-%d", hostname, os.Getpid())
	opts := MQTT.NewClientOptions().AddBroker(broker).SetClientID(clientid).SetCleanSession(true)
	opts.AutoReconnect = false

	client := MQTT.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, token.Error())
	}
	jww.INFO.Println("Connected to MQTT broker", broker)

	return NewPublisher(client, topic), nil
}

func NewPublisher(client MQTT.Client, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{client: client, topic: topic}
}

// Store publishes the batch as one JSON message.
func (p *Publisher) Store(batch data.Batch) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(batch); err != nil {
		return err
	}
	if token := p.client.Publish(p.topic, 0, false, buf.Bytes()); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, token.Error())
	}
	jww.TRACE.Printf("Publishing %s -> %s", p.topic, buf.Bytes())
	return nil
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
