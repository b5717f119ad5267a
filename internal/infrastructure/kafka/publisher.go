package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	appsales "github.com/jhoicas/Distripos-api/internal/application/sales"
	"github.com/jhoicas/Distripos-api/pkg/logger"
)

// EventSaleCreated tipo de evento publicado por cada línea de venta confirmada.
const EventSaleCreated = "SaleCreated"

// saleCreatedPayload payload serializado del evento SaleCreated.
type saleCreatedPayload struct {
	SaleID     string          `json:"sale_id"`
	ShopID     string          `json:"shop_id"`
	StockID    string          `json:"stock_id"`
	CustomerID string          `json:"customer_id,omitempty"`
	ClientType string          `json:"client_type"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	Date       time.Time       `json:"date"`
}

// Envelope envoltorio común de eventos.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

// SalePublisher implementa sales.EventPublisher sobre Kafka de forma asíncrona
// (best effort: la venta ya está confirmada en la DB, un fallo del broker solo
// se loguea). Un publisher nil deshabilita la publicación.
type SalePublisher struct {
	w   *kafkago.Writer
	log *logger.Logger
}

var _ appsales.EventPublisher = (*SalePublisher)(nil)

// NewSalePublisher construye el publicador para el broker y topic dados.
func NewSalePublisher(broker, topic string, log *logger.Logger) *SalePublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(broker),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		Async:        true,
		Completion: func(messages []kafkago.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int("messages", len(messages)).Msg("publicar eventos de venta")
			}
		},
	}
	return &SalePublisher{w: w, log: log}
}

// PublishSaleCreated publica el evento con la venta como clave de partición.
func (p *SalePublisher) PublishSaleCreated(ctx context.Context, evt appsales.SaleEvent) {
	if p == nil || p.w == nil {
		return
	}
	raw, err := json.Marshal(saleCreatedPayload{
		SaleID:     evt.SaleID,
		ShopID:     evt.ShopID,
		StockID:    evt.StockID,
		CustomerID: evt.CustomerID,
		ClientType: evt.ClientType,
		Quantity:   evt.Quantity,
		UnitPrice:  evt.UnitPrice,
		Total:      evt.Total,
		Date:       evt.Date,
	})
	if err != nil {
		p.log.Error().Err(err).Msg("serializar evento de venta")
		return
	}
	env := Envelope{
		EventID:    uuid.New().String(),
		EventType:  EventSaleCreated,
		OccurredAt: time.Now(),
		Producer:   "distripos-api",
		Payload:    raw,
	}
	msg := kafkago.Message{
		Key:   []byte(evt.SaleID),
		Value: mustMarshal(env),
		Time:  time.Now(),
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		p.log.Error().Err(err).Str("sale_id", evt.SaleID).Msg("encolar evento de venta")
	}
}

// Close cierra el writer drenando lo pendiente.
func (p *SalePublisher) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
