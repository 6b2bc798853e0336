package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/Zartof23/mytops-sub000/internal/app"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/services"
)

type seedItem struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	ImageURL    string         `yaml:"image_url"`
	Metadata    map[string]any `yaml:"metadata"`
}

type seedTopic struct {
	Name          string     `yaml:"name"`
	Slug          string     `yaml:"slug"`
	Description   string     `yaml:"description"`
	Icon          string     `yaml:"icon"`
	CoverImageURL string     `yaml:"cover_image_url"`
	Items         []seedItem `yaml:"items"`
}

type seedFile struct {
	Topics []seedTopic `yaml:"topics"`
}

func main() {
	var file string
	var dryRun bool
	flag.StringVar(&file, "file", "seed/topics.yaml", "seed fixture to load")
	flag.BoolVar(&dryRun, "dry-run", false, "print planned rows without writing")
	flag.Parse()

	raw, err := os.ReadFile(file)
	if err != nil {
		fmt.Printf("read seed file: %v\n", err)
		os.Exit(1)
	}
	var fixture seedFile
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		fmt.Printf("parse seed file: %v\n", err)
		os.Exit(1)
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	log := application.Log.With("cmd", "seed")

	var topicsCreated, itemsCreated int
	for _, st := range fixture.Topics {
		slug := st.Slug
		if slug == "" {
			slug = services.Slugify(st.Name)
		}

		topic, err := application.Repos.Topic.GetBySlug(ctx, nil, slug)
		if err != nil {
			log.Error("lookup topic failed", "slug", slug, "error", err)
			os.Exit(1)
		}
		if topic == nil {
			topic = &types.Topic{
				ID:            uuid.New(),
				Name:          st.Name,
				Slug:          slug,
				Description:   st.Description,
				Icon:          st.Icon,
				CoverImageURL: st.CoverImageURL,
			}
			if dryRun {
				fmt.Printf("would create topic %q (%s)\n", st.Name, slug)
			} else {
				if _, err := application.Repos.Topic.Create(ctx, nil, []*types.Topic{topic}); err != nil {
					log.Error("create topic failed", "slug", slug, "error", err)
					os.Exit(1)
				}
				topicsCreated++
			}
		}

		for _, si := range st.Items {
			existing, err := application.Repos.Item.GetByTopicAndName(ctx, nil, topic.ID, si.Name)
			if err != nil {
				log.Error("lookup item failed", "name", si.Name, "error", err)
				os.Exit(1)
			}
			if existing != nil {
				continue
			}

			var metadata datatypes.JSON
			if len(si.Metadata) > 0 {
				encoded, err := json.Marshal(si.Metadata)
				if err != nil {
					log.Error("encode metadata failed", "name", si.Name, "error", err)
					os.Exit(1)
				}
				metadata = datatypes.JSON(encoded)
			}

			item := &types.Item{
				ID:          uuid.New(),
				TopicID:     topic.ID,
				Name:        si.Name,
				Slug:        services.Slugify(si.Name),
				Description: si.Description,
				ImageURL:    si.ImageURL,
				Metadata:    metadata,
				Provenance:  types.ProvenanceSeed,
			}
			if dryRun {
				fmt.Printf("would create item %q in %q\n", si.Name, st.Name)
				continue
			}
			if _, err := application.Repos.Item.Create(ctx, nil, []*types.Item{item}); err != nil {
				log.Error("create item failed", "name", si.Name, "error", err)
				os.Exit(1)
			}
			itemsCreated++
		}
	}

	log.Info("Seed complete", "topics_created", topicsCreated, "items_created", itemsCreated)
}
