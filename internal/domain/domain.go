package domain

import (
	"github.com/Zartof23/mytops-sub000/internal/domain/activity"
	"github.com/Zartof23/mytops-sub000/internal/domain/auth"
	"github.com/Zartof23/mytops-sub000/internal/domain/catalog"
	"github.com/Zartof23/mytops-sub000/internal/domain/user"
)

const (
	ProvenanceSeed          = catalog.ProvenanceSeed
	ProvenanceAIGenerated   = catalog.ProvenanceAIGenerated
	ProvenanceUserSubmitted = catalog.ProvenanceUserSubmitted
)

type User = user.User
type UserToken = auth.UserToken

type Topic = catalog.Topic
type Item = catalog.Item
type ItemStats = catalog.ItemStats
type ItemWithStats = catalog.ItemWithStats

type Rating = activity.Rating
type WatchLaterEntry = activity.WatchLaterEntry
type AIRequestLog = activity.AIRequestLog
