package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sms-assistant-be/internal/dto"
	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/specification"
	"sms-assistant-be/internal/repository/unitofwork"
	"sms-assistant-be/pkg/embedding"
	"sms-assistant-be/pkg/events"
	pktNats "sms-assistant-be/pkg/nats"
	"sms-assistant-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
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
	var payload dto.PublishEmbedResourceMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embeddings for ResourceId: %s", payload.ResourceId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	resource, err := uow.ResourceRepository().FindOne(ctx, specification.ByID{ID: payload.ResourceId})
	if err != nil {
		log.Printf("[ERROR] Failed to get resource %s: %v", payload.ResourceId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if resource == nil {
		log.Printf("[ERROR] Resource not found: %s", payload.ResourceId)
		msg.Ack() // Resource deleted? Ack.
		return
	}

	resourceUpdatedAt := "-"
	if resource.UpdatedAt != nil {
		resourceUpdatedAt = resource.UpdatedAt.Format(time.RFC3339)
	}

	content := fmt.Sprintf(`Title: %s
Kind: %s
Tag: %s

%s

Created At: %s
Updated At: %s`,
		resource.Title,
		resource.Kind,
		resource.Tag,
		resource.Body,
		resource.CreatedAt.Format(time.RFC3339),
		resourceUpdatedAt,
	)

	// 1. Resource-level embedding over the head of the content. The coarse
	// signal only needs the gist; chunks carry the detail.
	head := utils.SplitText(content, 2000, 0)[0]
	headRes, err := cs.embeddingProvider.Generate(head, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate resource embedding for %s: %v", payload.ResourceId, err)
		msg.Nack()
		return
	}

	resourceEmbedding := &entity.ResourceEmbedding{
		Id:             uuid.New(),
		ResourceId:     resource.Id,
		Document:       head,
		EmbeddingValue: headRes.Embedding.Values,
		CreatedAt:      time.Now(),
	}

	// 2. Chunk embeddings
	// ChunkSize: 1500 chars (approx 375 tokens), Overlap: 200 chars
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.ChunkEmbedding

	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of resource %s: %v", i, payload.ResourceId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.ChunkEmbedding{
			Id:             uuid.New(),
			ResourceId:     resource.Id,
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ChunkEmbeddingRepository().DeleteByResourceId(ctx, resource.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old chunk embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.ChunkEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to create chunk embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.ResourceEmbeddingRepository().Upsert(ctx, resourceEmbedding); err != nil {
		log.Printf("[ERROR] Failed to upsert resource embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.ResourceEmbedded{
			ResourceID: resource.Id.String(),
			Chunks:     len(newEmbeddings),
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish resource.embedded event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Resource processed: %d chunks for ResourceId: %s", len(newEmbeddings), payload.ResourceId)
	msg.Ack()
}
