package domain

import "github.com/yungbote/forcebook-backend/internal/domain/rebels"

const TraitorThreshold = rebels.TraitorThreshold

type Gender = rebels.Gender

const (
	GenderUndefined = rebels.GenderUndefined
	GenderMale      = rebels.GenderMale
	GenderFemale    = rebels.GenderFemale
	GenderDroid     = rebels.GenderDroid
	GenderOther     = rebels.GenderOther
)

type Location = rebels.Location
type Rebel = rebels.Rebel
type ItemTemplate = rebels.ItemTemplate
type Item = rebels.Item
type TreasonReport = rebels.TreasonReport
type NegotiationRecord = rebels.NegotiationRecord

var ParseGender = rebels.ParseGender
