package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const taskLogFile = "logs/tasks.log"

// StartTaskConsumer connects to RabbitMQ, declares the durable task.events
// queue and starts consuming messages. Each event is appended to
// logs/tasks.log in a single-line, human-friendly format. The function runs
// a reconnect loop with exponential backoff and keeps running across broker
// restarts; processing errors are logged and the offending message is
// rejected without requeue so the stream keeps moving.
func StartTaskConsumer() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("task-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("task-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
		_ = conn.Close()
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("task-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(taskQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(taskQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("task-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func handleMessage(body []byte) error {
	var ev TaskEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	line := fmt.Sprintf("%s %s task=%d user=%d title=%q status=%s priority=%s\n",
		ev.OccurredAt, ev.Event, ev.TaskID, ev.UserID, ev.Title, ev.Status, ev.Priority)
	return appendLine(taskLogFile, line)
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = f.WriteString(line)
	return err
}
