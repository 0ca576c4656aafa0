package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/seedx/support-backend/internal/core/domain"
)

const ticketCollection = "tickets"

type MongoTicketRepository struct {
	coll *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *MongoTicketRepository {
	return &MongoTicketRepository{coll: db.Collection(ticketCollection)}
}

type mongoTicket struct {
	ID          string `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Status      string `bson:"status"`
	UserID      string `bson:"user_id"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (r *MongoTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	doc := mongoTicket{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      string(ticket.Status),
		UserID:      ticket.UserID,
		CreatedAt:   ticket.CreatedAt.Unix(),
		UpdatedAt:   ticket.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	return ticket, nil
}

func (r *MongoTicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var mt mongoTicket
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTicketRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer cur.Close(ctx)

	var tickets []*domain.Ticket
	for cur.Next(ctx) {
		var mt mongoTicket
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		tickets = append(tickets, mt.toDomain())
	}
	return tickets, cur.Err()
}

func (mt *mongoTicket) toDomain() *domain.Ticket {
	return &domain.Ticket{
		ID:          mt.ID,
		Title:       mt.Title,
		Description: mt.Description,
		Status:      domain.TicketStatus(mt.Status),
		UserID:      mt.UserID,
		CreatedAt:   unixToTime(mt.CreatedAt),
		UpdatedAt:   unixToTime(mt.UpdatedAt),
	}
}
