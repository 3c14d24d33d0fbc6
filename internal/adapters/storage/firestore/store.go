package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/concilio-labs/concilio/internal/domain"
)

// Store implements domain.FactStore and domain.ThreadStore on Firestore.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (CONCILIO_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) factDoc(namespace, key string) *firestore.DocumentRef {
	return s.client.Collection(namespace).Doc(key)
}

func (s *Store) threadDoc(key domain.ThreadKey) *firestore.DocumentRef {
	return s.client.Collection("threads").Doc(string(key))
}

func (s *Store) messagesCol(key domain.ThreadKey) *firestore.CollectionRef {
	return s.threadDoc(key).Collection("messages")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type factDoc struct {
	Content   string    `firestore:"content"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type messageDoc struct {
	MessageID string    `firestore:"message_id"`
	Author    string    `firestore:"author"`
	Text      string    `firestore:"text"`
	CreatedAt time.Time `firestore:"created_at"`
}

// ─────────────────────────────────────────
// FactStore implementation
// ─────────────────────────────────────────

// Put overwrites the document: Set without merge gives last-write-wins,
// which is exactly the story-record contract.
func (s *Store) Put(ctx context.Context, namespace, key string, rec domain.StoryRecord) error {
	doc := factDoc{
		Content:   rec.Content,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.factDoc(namespace, key).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore Put %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, namespace, key string) (domain.StoryRecord, bool, error) {
	snap, err := s.factDoc(namespace, key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.StoryRecord{}, false, nil
		}
		return domain.StoryRecord{}, false, fmt.Errorf("firestore Get %s/%s: %w", namespace, key, err)
	}

	var doc factDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.StoryRecord{}, false, fmt.Errorf("firestore Get decode: %w", err)
	}

	return domain.StoryRecord{Content: doc.Content}, true, nil
}

// ─────────────────────────────────────────
// ThreadStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *domain.ThreadMessage) error {
	id := string(msg.ID)
	if id == "" {
		id = uuid.NewString()
	}

	doc := messageDoc{
		MessageID: id,
		Author:    string(msg.Author),
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}

	_, err := s.messagesCol(msg.ThreadKey).Doc(id).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendMessage %s: %w", msg.ThreadKey, err)
	}
	return nil
}

func (s *Store) History(ctx context.Context, key domain.ThreadKey) ([]*domain.ThreadMessage, error) {
	q := s.messagesCol(key).OrderBy("created_at", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.ThreadMessage
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore History %s: %w", key, err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		out = append(out, &domain.ThreadMessage{
			ID:        domain.MessageID(doc.MessageID),
			ThreadKey: key,
			Author:    domain.Role(doc.Author),
			Text:      doc.Text,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}
