package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/data/repos"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

type Repos struct {
	Rebel             repos.RebelRepo
	Item              repos.ItemRepo
	ItemTemplate      repos.ItemTemplateRepo
	TreasonReport     repos.TreasonReportRepo
	NegotiationRecord repos.NegotiationRecordRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Rebel:             repos.NewRebelRepo(db, log),
		Item:              repos.NewItemRepo(db, log),
		ItemTemplate:      repos.NewItemTemplateRepo(db, log),
		TreasonReport:     repos.NewTreasonReportRepo(db, log),
		NegotiationRecord: repos.NewNegotiationRecordRepo(db, log),
	}
}
