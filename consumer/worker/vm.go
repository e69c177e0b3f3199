package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tnqbao/gau-vm-service/entity"
	"github.com/tnqbao/gau-vm-service/infra"
	"github.com/tnqbao/gau-vm-service/infra/produce"
	"github.com/tnqbao/gau-vm-service/repository"
)

// Acknowledger is the part of amqp.Delivery used to settle a message.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type VMConsumer struct {
	channel    *amqp.Channel
	infra      *infra.Infra
	repository *repository.Repository
}

func NewVMConsumer(channel *amqp.Channel, infra *infra.Infra, repo *repository.Repository) *VMConsumer {
	return &VMConsumer{
		channel:    channel,
		infra:      infra,
		repository: repo,
	}
}

func (c *VMConsumer) Start(ctx context.Context) error {
	if err := c.startQueueConsumer(ctx, produce.VMStartQueue, "Start", entity.VMStatusRunning); err != nil {
		return fmt.Errorf("failed to start vm start consumer: %w", err)
	}
	if err := c.startQueueConsumer(ctx, produce.VMStopQueue, "Stop", entity.VMStatusStopped); err != nil {
		return fmt.Errorf("failed to start vm stop consumer: %w", err)
	}

	return nil
}

func (c *VMConsumer) startQueueConsumer(ctx context.Context, queue, action string, target entity.VMStatus) error {
	msgs, err := c.channel.Consume(
		queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", queue, err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[VM Consumer] Started listening for %s jobs on queue: %s", action, queue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[VM Consumer - %s] Shutting down...", action)
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[VM Consumer - %s] Channel closed", action)
					return
				}
				c.Handle(ctx, msg.Body, msg, target)
			}
		}
	}()

	return nil
}

// Handle completes a pending lifecycle transition to target. Messages that can
// never succeed are dropped; storage failures are requeued.
func (c *VMConsumer) Handle(ctx context.Context, body []byte, ack Acknowledger, target entity.VMStatus) {
	var payload produce.VMLifecycleMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[VM Consumer] Failed to unmarshal message: %v", err)
		_ = ack.Nack(false, false)
		return
	}

	vmID, err := uuid.Parse(payload.VMID)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[VM Consumer] Invalid VM ID %q: %v", payload.VMID, err)
		_ = ack.Nack(false, false)
		return
	}

	vm, err := c.repository.VMRepo.TransitionStatus(ctx, vmID, target)
	switch {
	case err == nil:
		c.infra.Logger.InfoWithContextf(ctx, "[VM Consumer] VM %s is now %s", vm.ID, vm.Status)
		_ = ack.Ack(false)
	case entity.IsNotFound(err), errors.Is(err, entity.ErrInvalidTransition):
		c.infra.Logger.WarningWithContextf(ctx, "[VM Consumer] Dropping %s request for VM %s: %v", payload.Action, vmID, err)
		_ = ack.Nack(false, false)
	default:
		c.infra.Logger.ErrorWithContextf(ctx, err, "[VM Consumer] Failed to move VM %s to %s, requeueing: %v", vmID, target, err)
		_ = ack.Nack(false, true)
	}
}
