package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	Media *MediaCleanupService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	mediaService := InitMediaCleanupService(channel)
	if mediaService == nil {
		panic("Failed to initialize Media Cleanup service")
	}

	produceInstance = &Produce{
		Media: mediaService,
	}

	return produceInstance
}

func GetProduce() *Produce {
	if produceInstance == nil {
		panic("Produce not initialized. Call InitProduce() first.")
	}
	return produceInstance
}
