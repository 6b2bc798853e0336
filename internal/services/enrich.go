package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Zartof23/mytops-sub000/internal/clients/openai"
	"github.com/Zartof23/mytops-sub000/internal/data/repos/activity"
	repocatalog "github.com/Zartof23/mytops-sub000/internal/data/repos/catalog"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/ctxutil"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

// EnrichResult is one AI-search outcome. Matched means an existing item
// satisfied the query and no AI request was spent.
type EnrichResult struct {
	Item    *types.Item `json:"item"`
	Matched bool        `json:"matched"`
	Created bool        `json:"created"`
}

type EnrichService interface {
	// Search resolves a free-text query within a topic. An existing item with
	// the same name wins without touching the AI quota; otherwise one request
	// is consumed and a new ai_generated item is created.
	Search(ctx context.Context, topicSlug, query string) (*EnrichResult, error)
}

type enrichService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repocatalog.TopicRepo
	itemRepo  repocatalog.ItemRepo
	aiLogRepo activity.AIRequestLogRepo
	aiClient  openai.Client
	rateLimit RateLimitService
}

func NewEnrichService(
	db *gorm.DB,
	log *logger.Logger,
	topicRepo repocatalog.TopicRepo,
	itemRepo repocatalog.ItemRepo,
	aiLogRepo activity.AIRequestLogRepo,
	aiClient openai.Client,
	rateLimit RateLimitService,
) EnrichService {
	return &enrichService{
		db:        db,
		log:       log.With("service", "EnrichService"),
		topicRepo: topicRepo,
		itemRepo:  itemRepo,
		aiLogRepo: aiLogRepo,
		aiClient:  aiClient,
		rateLimit: rateLimit,
	}
}

// itemDetailsSchema constrains the model output to the fields an item row
// can absorb.
var itemDetailsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":        map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"metadata": map[string]any{
			"type":                 "object",
			"additionalProperties": true,
		},
		"confidence": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 1,
		},
	},
	"required":             []string{"name", "description", "confidence"},
	"additionalProperties": false,
}

func (es *enrichService) Search(ctx context.Context, topicSlug, query string) (*EnrichResult, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query required", pkgerrors.ErrInvalidArgument)
	}

	topic, err := es.topicRepo.GetBySlug(ctx, nil, topicSlug)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("%w: topic %q", pkgerrors.ErrNotFound, topicSlug)
	}

	// An exact name match short-circuits without spending quota.
	existing, err := es.itemRepo.GetByTopicAndName(ctx, nil, topic.ID, query)
	if err != nil {
		return nil, fmt.Errorf("match existing item: %w", err)
	}
	if existing != nil {
		return &EnrichResult{Item: existing, Matched: true}, nil
	}

	if err := es.rateLimit.Consume(ctx); err != nil {
		return nil, err
	}

	if es.aiClient == nil {
		return nil, fmt.Errorf("%w: AI search is not configured", pkgerrors.ErrInvalidArgument)
	}

	system := fmt.Sprintf(
		"You identify real-world entries for a catalog of %s. Given a query, return the canonical name, a one-paragraph description, topic-appropriate metadata fields (such as year, creator, genre, release_date as yyyy-mm-dd), and your confidence that the entry is real and correctly identified.",
		topic.Name,
	)
	raw, err := es.aiClient.GenerateJSON(ctx, system, query, "item_details", itemDetailsSchema)
	if err != nil {
		return nil, fmt.Errorf("ai search: %w", err)
	}

	item, err := es.itemFromModelOutput(topic, userID, raw)
	if err != nil {
		return nil, err
	}

	// The model may have normalized the query to a name that already exists.
	dup, err := es.itemRepo.GetByTopicAndName(ctx, nil, topic.ID, item.Name)
	if err != nil {
		return nil, fmt.Errorf("match normalized name: %w", err)
	}

	result := &EnrichResult{}
	txErr := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dup == nil {
			if _, err := es.itemRepo.Create(ctx, tx, []*types.Item{item}); err != nil {
				return fmt.Errorf("create item: %w", err)
			}
			result.Item = item
			result.Created = true
		} else {
			result.Item = dup
			result.Matched = true
		}
		// The log row doubles as the fallback rate-limit counter.
		if _, err := es.aiLogRepo.Create(ctx, tx, &types.AIRequestLog{
			UserID:  userID,
			TopicID: topic.ID,
			Query:   query,
			Day:     utcDay(),
		}); err != nil {
			return fmt.Errorf("log ai request: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

func (es *enrichService) itemFromModelOutput(topic *types.Topic, userID uuid.UUID, raw map[string]any) (*types.Item, error) {
	name, _ := raw["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("ai search returned no name")
	}
	description, _ := raw["description"].(string)

	var confidence *float64
	if c, ok := raw["confidence"].(float64); ok {
		confidence = &c
	}

	var metadata datatypes.JSON
	if meta, ok := raw["metadata"].(map[string]any); ok && len(meta) > 0 {
		encoded, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("encode metadata: %w", err)
		}
		metadata = datatypes.JSON(encoded)
	}

	return &types.Item{
		ID:           uuid.New(),
		TopicID:      topic.ID,
		Name:         name,
		Slug:         Slugify(name),
		Description:  strings.TrimSpace(description),
		Metadata:     metadata,
		Provenance:   types.ProvenanceAIGenerated,
		AIConfidence: confidence,
		CreatedBy:    &userID,
	}, nil
}
