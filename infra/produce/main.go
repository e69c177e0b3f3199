package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	VMService *VMService
}

func InitProduce(channel *amqp.Channel) *Produce {
	vmService := InitVMService(channel)
	if vmService == nil {
		panic("Failed to initialize VM produce service")
	}

	return &Produce{
		VMService: vmService,
	}
}
