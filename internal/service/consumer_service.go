package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/repository/specification"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/pkg/events"
	pktNats "smartbiz-be/pkg/nats"
	"smartbiz-be/pkg/pdfgen"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService renders invoice PDFs off the request path.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	renderer       pdfgen.Renderer
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	renderer pdfgen.Renderer,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		renderer:       renderer,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishInvoicePdfMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // malformed messages never succeed, drop them
		return
	}

	log.Printf("[INFO] Rendering PDF for invoice %s", payload.InvoiceId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByID{ID: payload.InvoiceId})
	if err != nil {
		log.Printf("[ERROR] Failed to get invoice %s: %v", payload.InvoiceId, err)
		msg.Nack()
		return
	}
	if invoice == nil {
		log.Printf("[ERROR] Invoice not found: %s", payload.InvoiceId)
		msg.Ack() // deleted before rendering, nothing to do
		return
	}

	businessName := "My Business"
	profile, err := uow.BusinessProfileRepository().FindByUserId(ctx, payload.UserId)
	if err == nil && profile != nil {
		businessName = profile.BusinessName
	}

	doc := &pdfgen.InvoiceDocument{
		InvoiceNumber: invoice.InvoiceNumber,
		BusinessName:  businessName,
		CustomerName:  invoice.CustomerName,
		Subtotal:      invoice.Subtotal,
		GstRate:       invoice.GstRate,
		GstAmount:     invoice.GstAmount,
		TotalAmount:   invoice.TotalAmount,
		IssuedOn:      invoice.CreatedAt.Format("2006-01-02"),
	}

	path, err := cs.renderer.RenderInvoice(ctx, doc)
	if err != nil {
		log.Printf("[ERROR] Failed to render invoice %s: %v", invoice.InvoiceNumber, err)
		msg.Nack()
		return
	}

	invoice.PdfPath = &path
	invoice.UpdatedAt = time.Now()
	if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
		log.Printf("[ERROR] Failed to store pdf path for %s: %v", invoice.InvoiceNumber, err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "INVOICE_PDF_READY",
			Data: map[string]interface{}{
				"user_id":        payload.UserId.String(),
				"invoice_id":     invoice.Id.String(),
				"invoice_number": invoice.InvoiceNumber,
				"pdf_path":       path,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish INVOICE_PDF_READY event: %v", err)
		}
	}

	msg.Ack()
}
