package entity

type Channel string

const (
	ChannelEmail Channel = "email"
)

func (c Channel) String() string { return string(c) }

// Kind names what a delivery is about.
type Kind string

const (
	KindPasswordForgot Kind = "password_forgot"
)

func (k Kind) String() string { return string(k) }

type DeliveryStatus string

const (
	DeliveryStatusQueued DeliveryStatus = "queued"
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

func (s DeliveryStatus) String() string { return string(s) }
