package events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	TypeCreated = "reservation_created"
	TypeDeleted = "reservation_deleted"
)

type ReservationEvent struct {
	Event          string          `json:"event"`
	ReservationUid string          `json:"reservationUid"`
	HotelID        int64           `json:"hotelId"`
	CustomerID     int64           `json:"customerId"`
	Price          decimal.Decimal `json:"price"`
	At             time.Time       `json:"at"`
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

func NewProducer(producer sarama.SyncProducer, topic string, log *zap.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		log:      log.Named("events"),
	}
}

func (p *Producer) Publish(ev ReservationEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: p.topic, Value: sarama.StringEncoder(data)}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return err
	}
	p.log.Debug("event published", zap.String("event", ev.Event), zap.String("reservationUid", ev.ReservationUid))
	return nil
}
