package messaging

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DriverMemory = "memory"
	DriverNATS   = "nats"
	DriverKafka  = "kafka"
)

var ErrUnknownDriver = errors.New("messaging: unknown driver")

type FactoryOptions struct {
	NATS  NATSConfig
	Kafka KafkaConfig
}

func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
