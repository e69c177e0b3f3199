package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	VMExchange = "vm.exchange"

	VMStartQueue      = "vm.start"
	VMStartRoutingKey = "vm.start"

	VMStopQueue      = "vm.stop"
	VMStopRoutingKey = "vm.stop"
)

// VMLifecycleMessage asks whatever drives the hypervisor to start or stop a VM.
type VMLifecycleMessage struct {
	VMID      string `json:"vm_id"`
	Action    string `json:"action"` // "start" or "stop"
	Timestamp int64  `json:"timestamp"`
}

// Publisher is the part of *amqp.Channel used for publishing.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type VMService struct {
	channel Publisher
}

func InitVMService(channel *amqp.Channel) *VMService {
	err := channel.ExchangeDeclare(
		VMExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare VM exchange: " + err.Error())
	}

	for queue, routingKey := range map[string]string{
		VMStartQueue: VMStartRoutingKey,
		VMStopQueue:  VMStopRoutingKey,
	} {
		_, err = channel.QueueDeclare(
			queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			panic("Failed to declare " + queue + " queue: " + err.Error())
		}

		err = channel.QueueBind(
			queue,
			routingKey,
			VMExchange,
			false,
			nil,
		)
		if err != nil {
			panic("Failed to bind " + queue + " queue: " + err.Error())
		}
	}

	return NewVMService(channel)
}

func NewVMService(channel Publisher) *VMService {
	return &VMService{channel: channel}
}

func (s *VMService) PublishStart(ctx context.Context, vmID string) error {
	return s.publish(ctx, VMStartRoutingKey, VMLifecycleMessage{VMID: vmID, Action: "start"})
}

func (s *VMService) PublishStop(ctx context.Context, vmID string) error {
	return s.publish(ctx, VMStopRoutingKey, VMLifecycleMessage{VMID: vmID, Action: "stop"})
}

func (s *VMService) publish(ctx context.Context, routingKey string, msg VMLifecycleMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		VMExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}
