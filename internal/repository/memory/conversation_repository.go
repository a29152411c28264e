package memory

import (
	"time"

	"sms-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps per-sender session state in process memory.
// State is advisory (last query, last tone); losing it on restart is fine.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Save(conv *store.Conversation) {
	r.cache.Set(conv.Sender, conv, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(sender string) (*store.Conversation, bool) {
	if x, found := r.cache.Get(sender); found {
		return x.(*store.Conversation), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(sender string) {
	r.cache.Delete(sender)
}
