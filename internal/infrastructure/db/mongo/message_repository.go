package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seedx/support-backend/internal/core/domain"
)

const messageCollection = "messages"

type MongoMessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{coll: db.Collection(messageCollection)}
}

// mongoMessage stores created_at as Unix nanoseconds. The value is the
// ordering key for conversation history, so it must not lose sub-second
// precision the way whole seconds or BSON datetime milliseconds would:
// messages written in quick succession still need distinct sort keys.
type mongoMessage struct {
	ID        string `bson:"_id"`
	Content   string `bson:"content"`
	IsAI      bool   `bson:"is_ai"`
	TicketID  string `bson:"ticket_id"`
	AuthorID  string `bson:"author_id,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

func newMessageDoc(message *domain.Message) mongoMessage {
	return mongoMessage{
		ID:        message.ID,
		Content:   message.Content,
		IsAI:      message.IsAI,
		TicketID:  message.TicketID,
		AuthorID:  message.AuthorID,
		CreatedAt: message.CreatedAt.UnixNano(),
	}
}

func (mm mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:        mm.ID,
		Content:   mm.Content,
		IsAI:      mm.IsAI,
		TicketID:  mm.TicketID,
		AuthorID:  mm.AuthorID,
		CreatedAt: time.Unix(0, mm.CreatedAt),
	}
}

func (r *MongoMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if _, err := r.coll.InsertOne(ctx, newMessageDoc(message)); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return message, nil
}

// ListByTicket returns the ticket's messages sorted by creation time.
func (r *MongoMessageRepository) ListByTicket(ctx context.Context, ticketID string) ([]*domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"ticket_id": ticketID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var messages []*domain.Message
	for cur.Next(ctx) {
		var mm mongoMessage
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, mm.toDomain())
	}
	return messages, cur.Err()
}
