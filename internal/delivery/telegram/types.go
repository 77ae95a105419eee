package telegram

import "github.com/yourusername/carpet-retail-bot/internal/domain/entity"

type regStage int

const (
	regStageNeedFirstName regStage = iota
	regStageNeedLastName
	regStageNeedEmail
	regStageNeedPhone
	regStageNeedFromWhom
	regStageNeedConfirm
)

// regSession collects the registration fields step by step. Username is
// taken from the Telegram profile, everything else is typed in.
type regSession struct {
	Stage     regStage
	Username  *string
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	FromWhom  string
}

type addUserStage int

const (
	addStageNeedTelegramID addUserStage = iota
	addStageNeedUsername
	addStageNeedFirstName
	addStageNeedLastName
	addStageNeedEmail
	addStageNeedRole
	addStageNeedConfirm
)

type addUserSession struct {
	Stage      addUserStage
	TelegramID int64
	Username   *string
	FirstName  string
	LastName   *string
	Email      *string
	Role       entity.UserRole
}

type banStage int

const (
	banStageNeedTarget banStage = iota
	banStageNeedQuery
	banStageNeedReason
	banStageNeedConfirm
)

// banSession walks the pick-user, reason, confirm sequence. Query is the
// active search filter of the user list; empty shows everyone.
type banSession struct {
	Stage       banStage
	Query       string
	Page        int
	TargetID    int64
	TargetLabel string
	Reason      *string
}

type broadcastStage int

const (
	broadcastStageNeedText broadcastStage = iota
	broadcastStageNeedConfirm
)

type broadcastSession struct {
	Stage broadcastStage
	Draft string
}

// searchSession is the conversation state of one carpet search: the
// filter selections, which facet menu is open, and the option values the
// open menu was last rendered with (toggle callbacks address options by
// index to stay inside the callback-data size limit).
type searchSession struct {
	Filters   *entity.CarpetFilters
	Facet     entity.Facet
	Options   []string
	MessageID int
}
