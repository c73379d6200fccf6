package notify

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Routing key yang dipublish aplikasi
const (
	KeySubmissionCreated  = "submission.created"
	KeySubmissionReviewed = "submission.reviewed"
	KeyPaymentPaid        = "payment.paid"
)

// Publisher: kirim event domain ke broker. Gagal publish tidak boleh menggagalkan request.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close()
}

// NewPublisherFromEnv: AMQP_URL kosong → NopPublisher
func NewPublisherFromEnv() Publisher {
	url := strings.TrimSpace(os.Getenv("AMQP_URL"))
	if url == "" {
		log.Info().Msg("[NOTIFY] AMQP_URL kosong, notifikasi dimatikan")
		return NopPublisher{}
	}
	exchange := strings.TrimSpace(os.Getenv("AMQP_EXCHANGE"))
	if exchange == "" {
		exchange = "sponsorku.events"
	}
	p, err := NewRabbitPublisher(url, exchange)
	if err != nil {
		log.Error().Err(err).Msg("[NOTIFY] RabbitMQ init gagal, fallback ke nop")
		return NopPublisher{}
	}
	return p
}

/* =======================================================================
   RabbitMQ (topic exchange)
======================================================================= */

type RabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	log.Info().Str("exchange", exchange).Msg("[NOTIFY] RabbitMQ initialized")
	return &RabbitPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("[NOTIFY] publish gagal")
		return err
	}
	log.Debug().Str("exchange", p.exchange).Str("routing_key", routingKey).Msg("[NOTIFY] published")
	return nil
}

func (p *RabbitPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	log.Info().Msg("[NOTIFY] RabbitMQ connection closed")
}

/* =======================================================================
   Nop & Recorder
======================================================================= */

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close()                                     {}

type Message struct {
	RoutingKey string
	Payload    any
}

// Recorder menyimpan pesan di memori (dipakai test)
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

func (r *Recorder) Publish(_ context.Context, routingKey string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Messages = append(r.Messages, Message{RoutingKey: routingKey, Payload: payload})
	return nil
}

func (r *Recorder) Close() {}

func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		out = append(out, m.RoutingKey)
	}
	return out
}

// SafePublish: publish dengan timeout pendek, error cukup di-log
func SafePublish(ctx context.Context, p Publisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Warn().Err(err).Str("routing_key", routingKey).Msg("[NOTIFY] notifikasi gagal dikirim")
	}
}
