package repos

import (
	"github.com/yungbote/forcebook-backend/internal/data/repos/rebels"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type RebelRepo = rebels.RebelRepo
type ItemRepo = rebels.ItemRepo
type ItemTemplateRepo = rebels.ItemTemplateRepo
type TreasonReportRepo = rebels.TreasonReportRepo
type NegotiationRecordRepo = rebels.NegotiationRecordRepo

func NewRebelRepo(db *gorm.DB, baseLog *logger.Logger) RebelRepo {
	return rebels.NewRebelRepo(db, baseLog)
}
func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo { return rebels.NewItemRepo(db, baseLog) }
func NewItemTemplateRepo(db *gorm.DB, baseLog *logger.Logger) ItemTemplateRepo {
	return rebels.NewItemTemplateRepo(db, baseLog)
}
func NewTreasonReportRepo(db *gorm.DB, baseLog *logger.Logger) TreasonReportRepo {
	return rebels.NewTreasonReportRepo(db, baseLog)
}
func NewNegotiationRecordRepo(db *gorm.DB, baseLog *logger.Logger) NegotiationRecordRepo {
	return rebels.NewNegotiationRecordRepo(db, baseLog)
}
