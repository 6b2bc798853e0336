package app

import (
	"gorm.io/gorm"

	repoactivity "github.com/Zartof23/mytops-sub000/internal/data/repos/activity"
	repocatalog "github.com/Zartof23/mytops-sub000/internal/data/repos/catalog"
	repouser "github.com/Zartof23/mytops-sub000/internal/data/repos/user"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type Repos struct {
	User      repouser.UserRepo
	UserToken repouser.UserTokenRepo

	Topic repocatalog.TopicRepo
	Item  repocatalog.ItemRepo

	Rating       repoactivity.RatingRepo
	WatchLater   repoactivity.WatchLaterRepo
	AIRequestLog repoactivity.AIRequestLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repouser.NewUserRepo(db, log),
		UserToken: repouser.NewUserTokenRepo(db, log),

		Topic: repocatalog.NewTopicRepo(db, log),
		Item:  repocatalog.NewItemRepo(db, log),

		Rating:       repoactivity.NewRatingRepo(db, log),
		WatchLater:   repoactivity.NewWatchLaterRepo(db, log),
		AIRequestLog: repoactivity.NewAIRequestLogRepo(db, log),
	}
}
